package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/hybridrec/core"
)

// StoreConfig 选择快照存储后端。
type StoreConfig struct {
	// Backend 可选 memory / redis
	Backend string `yaml:"backend"`

	Redis struct {
		Addr string `yaml:"addr"`
		DB   int    `yaml:"db"`
	} `yaml:"redis"`

	// Seed 仅 memory 后端使用：启动时灌入的 JSONL 数据文件
	Seed struct {
		Products     string `yaml:"products"`
		Interactions string `yaml:"interactions"`
	} `yaml:"seed"`
}

// ServerConfig 是 HTTP facade 的配置。
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// AppConfig 是服务进程的完整配置。
type AppConfig struct {
	Engine core.EngineConfig `yaml:"engine"`
	Store  StoreConfig       `yaml:"store"`
	Server ServerConfig      `yaml:"server"`

	// Rules 是追加的 CEL 过滤规则，命中的候选被剔除
	Rules []string `yaml:"rules"`
}

// Default 返回带默认值的 AppConfig。
func Default() AppConfig {
	cfg := AppConfig{
		Engine: core.DefaultEngineConfig(),
	}
	cfg.Store.Backend = "memory"
	cfg.Server.Addr = ":8000"
	return cfg
}

// Load 从 YAML 文件加载配置；文件里未出现的字段保留默认值。
func Load(path string) (AppConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate 校验配置合法性。
func (c AppConfig) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	switch c.Store.Backend {
	case "memory":
	case "redis":
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("store: redis backend requires redis.addr")
		}
	default:
		return fmt.Errorf("store: unknown backend %q (supported: memory, redis)", c.Store.Backend)
	}
	return nil
}
