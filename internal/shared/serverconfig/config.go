package serverconfig

import (
	"os"

	"GoldenAges/internal/shared/config"
)

var Conf Config

// Load 启动时调用一次，之后热更新由 config 包负责，默认值在 Normalize 里补。
func Load() {
	config.Load(config.DefaultConfigRelPath, &Conf)
	if os.Getenv("JWT_SECRET") == "" && Conf.JWTSecret != "" {
		_ = os.Setenv("JWT_SECRET", Conf.JWTSecret)
	}
}
