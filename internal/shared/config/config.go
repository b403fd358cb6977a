package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const DefaultConfigRelPath = "configs/conf.yml"

// Load 解析配置文件到 out（指针）。
// cfgName 为空时从当前目录向上查找 configs/conf.yml；
// 工作目录下的 .env 会先载入环境变量，已存在的变量不会被覆盖。
func Load(cfgName string, out any) {
	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	loadDotEnv(curDir)

	if cfgName != "" {
		if filepath.IsAbs(cfgName) {
			load(cfgName, out)
			return
		}
		if p := filepath.Join(curDir, cfgName); fileExist(p) {
			load(p, out)
			return
		}
	}
	load(findConfigUpward(curDir), out)
}

func loadDotEnv(dir string) {
	p := filepath.Join(dir, ".env")
	if !fileExist(p) {
		return
	}
	if err := godotenv.Load(p); err != nil {
		panic(err)
	}
}

func findConfigUpward(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, DefaultConfigRelPath)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("config file not exist, searched " + DefaultConfigRelPath + " from: " + startDir)
		}
		dir = parent
	}
}
