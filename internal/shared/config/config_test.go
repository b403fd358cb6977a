package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConf struct {
	Name string    `mapstructure:"name"`
	Log  LogConfig `mapstructure:"log"`
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoad_绝对路径(t *testing.T) {
	p := filepath.Join(t.TempDir(), "conf.yml")
	writeFile(t, p, "name: golden\nlog:\n  level: debug\n  rotate:\n    size_mb: 10\n")

	var c testConf
	Load(p, &c)
	if c.Name != "golden" || c.Log.Level != "debug" || c.Log.Rotate.SizeMB != 10 {
		t.Fatalf("配置解析不符合预期: %+v", c)
	}
}

func TestFindConfigUpward_向上查找(t *testing.T) {
	root := t.TempDir()
	want := filepath.Join(root, DefaultConfigRelPath)
	writeFile(t, want, "name: up\n")
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if got := findConfigUpward(nested); got != want {
		t.Fatalf("期望找到 %s，got=%s", want, got)
	}
}

func TestFindConfigUpward_找不到时panic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("期望找不到配置时 panic")
		}
	}()
	findConfigUpward(t.TempDir())
}

func TestLoad_热更新回调(t *testing.T) {
	p := filepath.Join(t.TempDir(), "conf.yml")
	writeFile(t, p, "name: v1\n")

	var c testConf
	Load(p, &c)

	changed := make(chan struct{}, 1)
	OnChange(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	writeFile(t, p, "name: v2\n")

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatalf("3 秒内未收到热更新回调")
	}
	var name string
	Read(func() { name = c.Name })
	if name != "v2" {
		t.Fatalf("期望热更新后 name=v2，got=%s", name)
	}
}

type normConf struct {
	Name string `mapstructure:"name"`
}

func (c *normConf) Normalize() {
	if c.Name == "" {
		c.Name = "default"
	}
}

func TestLoad_调用Normalize补默认值(t *testing.T) {
	p := filepath.Join(t.TempDir(), "conf.yml")
	writeFile(t, p, "other: 1\n")

	var c normConf
	Load(p, &c)
	if c.Name != "default" {
		t.Fatalf("期望 Normalize 生效，got=%q", c.Name)
	}
}
