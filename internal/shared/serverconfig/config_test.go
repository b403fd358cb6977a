package serverconfig

import (
	"testing"
	"time"
)

func TestNormalize_只填空值(t *testing.T) {
	c := Config{Rules: RulesConfig{AskTimeoutMs: 500}}
	c.Normalize()

	if c.MatchServer.Path != "/ws" || c.Rules.Storage != "memory" {
		t.Fatalf("默认值未生效: %+v", c)
	}
	if c.Rules.AskTimeout() != 500*time.Millisecond {
		t.Fatalf("已配置的值不应被覆盖，got=%v", c.Rules.AskTimeout())
	}
	if c.Rules.FlushInterval() != 3*time.Second || c.Rules.IdleTimeout() != 10*time.Minute {
		t.Fatalf("默认间隔不符合预期: flush=%v idle=%v", c.Rules.FlushInterval(), c.Rules.IdleTimeout())
	}
}

func TestAddr_与DSN(t *testing.T) {
	if got := (HTTPServerConfig{Host: "0.0.0.0", Port: 8088}).Addr(); got != "0.0.0.0:8088" {
		t.Fatalf("addr=%s", got)
	}
	dsn := MySQLConfig{User: "u", Password: "p", Host: "h", Port: 3306, DBName: "d"}.DSN()
	want := "u:p@tcp(h:3306)/d?charset=utf8mb4&parseTime=True&loc=Local"
	if dsn != want {
		t.Fatalf("dsn=%s", dsn)
	}
}
