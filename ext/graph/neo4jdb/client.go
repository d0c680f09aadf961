// Package neo4jdb 是 graph.Store 的 Neo4j 实现。
// 仅在快照构建期被调用；Cypher 与图谱建模（PURCHASED/CONTAINS/HAS_EFFECT/
// PRODUCES/SUITABLE_FOR）保持一致。
package neo4jdb

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/rushteam/cosrec/pkg/logger"
)

// Config 是 Neo4j 连接配置。
type Config struct {
	URI      string `yaml:"uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`

	// MaxPoolSize 连接池上限，<=0 时为 50。
	MaxPoolSize int `yaml:"max_pool_size"`

	// TimeoutSeconds 连接超时（秒），<=0 时为 10。
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Store 实现 graph.Store。
type Store struct {
	driver   neo4j.DriverWithContext
	database string
	log      *logger.Logger
}

// New 创建并验证 Neo4j 连接。
func New(cfg Config, log *logger.Logger) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("neo4jdb: uri is required")
	}
	if log == nil {
		log = logger.Nop()
	}

	maxPool := cfg.MaxPoolSize
	if maxPool <= 0 {
		maxPool = 50
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}

	auth := neo4j.BasicAuth(cfg.Username, cfg.Password, "")
	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth, func(c *neo4j.Config) {
		c.MaxConnectionPoolSize = maxPool
		c.SocketConnectTimeout = time.Duration(timeout) * time.Second
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jdb: init driver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4jdb: verify connectivity: %w", err)
	}

	log.Info("Neo4j 连接成功", "uri", cfg.URI, "database", cfg.Database)
	return &Store{
		driver:   driver,
		database: cfg.Database,
		log:      log.With("client", "neo4jdb"),
	}, nil
}

// Close 关闭底层连接。
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.driver == nil {
		return nil
	}
	return s.driver.Close(ctx)
}

// read 在只读会话中执行 Cypher 并收集全部记录。
func (s *Store) read(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jdb: query failed: %w", err)
	}
	return result.([]*neo4j.Record), nil
}
