package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/cosrec/ext/graph/neo4jdb"
)

// ServerConfig HTTP 服务配置。
type ServerConfig struct {
	Addr string `yaml:"addr"`
	Mode string `yaml:"mode"` // dev/prod，同时决定 gin 与日志模式
}

// RedisConfig 结果缓存配置，Addr 为空时退化为进程内缓存。
type RedisConfig struct {
	Addr       string `yaml:"addr"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// EngineConfig 推荐引擎可调参数，零值表示使用内置默认。
type EngineConfig struct {
	Weights           map[string]float64 `yaml:"weights"`
	WalkLength        int                `yaml:"walk_length"`
	WalkCount         int                `yaml:"walk_count"`
	JaccardThreshold  float64            `yaml:"jaccard_threshold"`
	ContentThreshold  float64            `yaml:"content_threshold"`
	EdgeThreshold     float64            `yaml:"edge_threshold"`
	MaxFeatures       int                `yaml:"max_features"`
	RefreshIntervalSc int                `yaml:"refresh_interval_seconds"`
}

// Config 服务总配置。
type Config struct {
	Server ServerConfig   `yaml:"server"`
	Neo4j  neo4jdb.Config `yaml:"neo4j"`
	Redis  RedisConfig    `yaml:"redis"`
	Engine EngineConfig   `yaml:"engine"`
}

// LoadConfig 读取 YAML 配置并填充默认值。
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "dev"
	}
	if c.Redis.TTLSeconds <= 0 {
		c.Redis.TTLSeconds = 3600
	}
	if c.Engine.RefreshIntervalSc <= 0 {
		c.Engine.RefreshIntervalSc = 600
	}
}
