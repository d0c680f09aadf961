package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rushteam/cosrec/core"
	"github.com/rushteam/cosrec/engine"
	"github.com/rushteam/cosrec/ext/graph/neo4jdb"
	"github.com/rushteam/cosrec/filter"
	"github.com/rushteam/cosrec/pkg/logger"
	"github.com/rushteam/cosrec/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "配置文件路径")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Server.Mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	graphStore, err := neo4jdb.New(cfg.Neo4j, log)
	if err != nil {
		log.Fatal("连接图数据库失败", "err", err)
	}
	defer graphStore.Close(context.Background())

	cache, ttl := buildCache(cfg, log)
	defer cache.Close()

	opts := []engine.Option{
		engine.WithLogger(log),
		engine.WithCache(cache, ttl),
		engine.WithFilters(&filter.Purchased{}, &filter.Allergen{}),
		engine.WithRand(func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		}),
	}
	opts = append(opts, engineOptions(cfg.Engine)...)

	eng := engine.New(graphStore, opts...)
	if err := eng.RefreshSnapshot(ctx); err != nil {
		log.Fatal("首次快照构建失败", "err", err)
	}
	go refreshLoop(ctx, eng, log, time.Duration(cfg.Engine.RefreshIntervalSc)*time.Second)

	if cfg.Server.Mode == "prod" || cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	srv := &server{eng: eng, log: log}
	srv.routes(router)

	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}
	go func() {
		log.Info("推荐服务启动", "addr", cfg.Server.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP 服务异常退出", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("收到退出信号，开始关闭")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP 服务关闭超时", "err", err)
	}
}

// buildCache 根据配置选择 Redis 或进程内缓存。
func buildCache(cfg *Config, log *logger.Logger) (core.Store, int) {
	if cfg.Redis.Addr != "" {
		rs, err := store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			log.Warn("Redis 连接失败，改用进程内缓存", "addr", cfg.Redis.Addr, "err", err)
		} else {
			return rs, cfg.Redis.TTLSeconds
		}
	}
	return store.NewMemoryStore(), cfg.Redis.TTLSeconds
}

func engineOptions(cfg EngineConfig) []engine.Option {
	var opts []engine.Option
	if len(cfg.Weights) > 0 {
		opts = append(opts, engine.WithStrategyWeights(cfg.Weights))
	}
	if cfg.WalkLength > 0 || cfg.WalkCount > 0 {
		opts = append(opts, engine.WithWalkParams(cfg.WalkLength, cfg.WalkCount))
	}
	if cfg.JaccardThreshold > 0 {
		opts = append(opts, engine.WithJaccardThreshold(cfg.JaccardThreshold))
	}
	if cfg.ContentThreshold > 0 {
		opts = append(opts, engine.WithContentThreshold(cfg.ContentThreshold))
	}
	if cfg.EdgeThreshold > 0 {
		opts = append(opts, engine.WithEdgeThreshold(cfg.EdgeThreshold))
	}
	if cfg.MaxFeatures > 0 {
		opts = append(opts, engine.WithMaxFeatures(cfg.MaxFeatures))
	}
	return opts
}

// refreshLoop 周期性重建快照，失败时保留旧快照等待下一轮。
func refreshLoop(ctx context.Context, eng *engine.Engine, log *logger.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := eng.RefreshSnapshot(ctx); err != nil {
				log.Warn("定时快照刷新失败", "err", err)
			}
		}
	}
}
