package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	mu       sync.RWMutex
	watchers []func()
)

// OnChange 注册配置热更新回调，回调在重新 Unmarshal 之后执行。
func OnChange(fn func()) {
	mu.Lock()
	watchers = append(watchers, fn)
	mu.Unlock()
}

// Normalizer 配置结构实现它时，每次 Unmarshal 之后在写锁内调用，用于补默认值。
type Normalizer interface {
	Normalize()
}

func unmarshal(v *viper.Viper, out any) error {
	if err := v.Unmarshal(out); err != nil {
		return err
	}
	if n, ok := out.(Normalizer); ok {
		n.Normalize()
	}
	return nil
}

// Read 在读锁内访问配置，和热更新互斥。
func Read(fn func()) {
	mu.RLock()
	defer mu.RUnlock()
	fn()
}

func load(configPath string, out any) {
	if !fileExist(configPath) {
		panic(fmt.Sprintf("config file not exist, configPath=%v", configPath))
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()
	v.OnConfigChange(func(e fsnotify.Event) {
		zap.L().Info("config changed", zap.String("file", e.Name), zap.String("op", e.Op.String()))
		mu.Lock()
		err := unmarshal(v, out)
		hooks := append([]func(){}, watchers...)
		mu.Unlock()
		if err != nil {
			zap.L().Error("config reload failed", zap.Error(err))
			return
		}
		for _, fn := range hooks {
			fn()
		}
	})
	v.WatchConfig()

	if err := v.ReadInConfig(); err != nil {
		panic(err)
	}
	mu.Lock()
	defer mu.Unlock()
	if err := unmarshal(v, out); err != nil {
		panic(err)
	}
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
