package config

// LogConfig 控制台始终输出，File 非空时另写滚动 JSON 文件。
type LogConfig struct {
	Level  string       `yaml:"level" mapstructure:"level"` // debug/info/warn/error
	Dev    bool         `yaml:"dev" mapstructure:"dev"`
	File   string       `yaml:"file" mapstructure:"file"`
	Rotate RotateConfig `yaml:"rotate" mapstructure:"rotate"`
}

type RotateConfig struct {
	SizeMB   int  `yaml:"size_mb" mapstructure:"size_mb"`
	Keep     int  `yaml:"keep" mapstructure:"keep"`
	KeepDays int  `yaml:"keep_days" mapstructure:"keep_days"`
	Gzip     bool `yaml:"gzip" mapstructure:"gzip"`
}
