package serverconfig

import (
	"fmt"
	"time"

	"GoldenAges/internal/shared/config"
)

type Config struct {
	MatchServer MatchServerConfig `yaml:"matchserver" mapstructure:"matchserver"`
	HTTPServer  HTTPServerConfig  `yaml:"httpserver" mapstructure:"httpserver"`
	GRPCServer  GRPCServerConfig  `yaml:"grpcserver" mapstructure:"grpcserver"`
	Remote      RemoteConfig      `yaml:"remote" mapstructure:"remote"`
	MongoDB     MongoDBConfig     `yaml:"mongodb" mapstructure:"mongodb"`
	MySQL       MySQLConfig       `yaml:"mysql" mapstructure:"mysql"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
	Rules       RulesConfig       `yaml:"rules" mapstructure:"rules"`
	JWTSecret   string            `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

type LogConfig = config.LogConfig

// MatchServerConfig websocket 入口。
type MatchServerConfig struct {
	Host       string `yaml:"host" mapstructure:"host"`
	Port       int    `yaml:"port" mapstructure:"port"`
	Path       string `yaml:"path" mapstructure:"path"`
	NeedSecret bool   `yaml:"need_secret" mapstructure:"need_secret"`
}

func (c MatchServerConfig) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

func (c HTTPServerConfig) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

type GRPCServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

func (c GRPCServerConfig) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// RemoteConfig protoactor remote，Enabled=false 时只跑本地 actor system。
type RemoteConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Host    string `yaml:"host" mapstructure:"host"`
	Port    int    `yaml:"port" mapstructure:"port"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

func (c MySQLConfig) DSN() string {
	charset := c.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.DBName, charset)
}

// RulesConfig 对局相关参数。
type RulesConfig struct {
	Storage          string `yaml:"storage" mapstructure:"storage"` // mongo / memory
	DefaultExpansion bool   `yaml:"default_expansion" mapstructure:"default_expansion"`
	AskTimeoutMs     int    `yaml:"ask_timeout_ms" mapstructure:"ask_timeout_ms"`
	FlushIntervalMs  int    `yaml:"flush_interval_ms" mapstructure:"flush_interval_ms"`
	IdleTimeoutS     int    `yaml:"idle_timeout_s" mapstructure:"idle_timeout_s"`
	NodeID           int64  `yaml:"node_id" mapstructure:"node_id"` // 对局 id 的节点号，多实例部署时各不相同
}

func (c RulesConfig) AskTimeout() time.Duration {
	return time.Duration(c.AskTimeoutMs) * time.Millisecond
}

func (c RulesConfig) FlushInterval() time.Duration {
	return time.Duration(c.FlushIntervalMs) * time.Millisecond
}

func (c RulesConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutS) * time.Second
}

// Normalize 只填空值。
func (c *Config) Normalize() {
	if c.MatchServer.Path == "" {
		c.MatchServer.Path = "/ws"
	}
	if c.Rules.Storage == "" {
		c.Rules.Storage = "memory"
	}
	if c.Rules.AskTimeoutMs <= 0 {
		c.Rules.AskTimeoutMs = 3000
	}
	if c.Rules.FlushIntervalMs <= 0 {
		c.Rules.FlushIntervalMs = 3000
	}
	if c.Rules.IdleTimeoutS <= 0 {
		c.Rules.IdleTimeoutS = 600
	}
	if c.MongoDB.ConnectTimeoutS <= 0 {
		c.MongoDB.ConnectTimeoutS = 10
	}
}
