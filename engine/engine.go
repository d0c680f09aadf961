// Package engine 组装推荐引擎的公开操作：
// 三路单策略推荐、混合推荐、肤质推荐、相似产品与快照刷新。
package engine

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/rushteam/cosrec/core"
	"github.com/rushteam/cosrec/filter"
	"github.com/rushteam/cosrec/graph"
	"github.com/rushteam/cosrec/pipeline"
	"github.com/rushteam/cosrec/pkg/logger"
	"github.com/rushteam/cosrec/recall"
	"github.com/rushteam/cosrec/rerank"
	"github.com/rushteam/cosrec/snapshot"
)

// DefaultLimit 是未指定 limit 时的返回数量。
const DefaultLimit = 10

// Engine 是推荐引擎门面。
//
// 并发模型：
//   - 快照由 Holder 持有，读路径无锁；刷新构建新快照后原子切换
//   - 打分纯内存、无副作用，天然支持任意并发
//   - 肤质推荐是直接图谱查询，不走快照
type Engine struct {
	graphStore graph.Store
	builder    *snapshot.Builder
	holder     *snapshot.Holder
	log        *logger.Logger

	collaborative *recall.Collaborative
	content       *recall.ContentBased
	graphWalk     *recall.GraphWalk

	filters []filter.Filter
	weights map[string]float64

	cache    core.Store
	cacheTTL int
}

// Option 配置 Engine。
type Option func(*Engine)

// WithLogger 注入日志器。
func WithLogger(log *logger.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithCache 启用结果缓存，ttlSeconds 为缓存有效期（秒）。
func WithCache(cache core.Store, ttlSeconds int) Option {
	return func(e *Engine) {
		e.cache = cache
		e.cacheTTL = ttlSeconds
	}
}

// WithStrategyWeights 覆盖混合推荐的策略权重。
func WithStrategyWeights(weights map[string]float64) Option {
	return func(e *Engine) { e.weights = weights }
}

// WithWalkParams 覆盖随机游走参数。
func WithWalkParams(walkLength, walkCount int) Option {
	return func(e *Engine) {
		e.graphWalk.WalkLength = walkLength
		e.graphWalk.WalkCount = walkCount
	}
}

// WithRand 注入随机源工厂（测试用固定种子）。
func WithRand(newRand func() *rand.Rand) Option {
	return func(e *Engine) { e.graphWalk.NewRand = newRand }
}

// WithJaccardThreshold 覆盖协同过滤的相似用户阈值。
func WithJaccardThreshold(threshold float64) Option {
	return func(e *Engine) { e.collaborative.SimilarityThreshold = threshold }
}

// WithContentThreshold 覆盖内容策略的弃选阈值。
func WithContentThreshold(threshold float64) Option {
	return func(e *Engine) { e.content.ScoreThreshold = threshold }
}

// WithEdgeThreshold 覆盖相似度图的建边阈值。
func WithEdgeThreshold(threshold float64) Option {
	return func(e *Engine) { e.builder.EdgeThreshold = threshold }
}

// WithMaxFeatures 覆盖 TF-IDF 词表上限。
func WithMaxFeatures(maxFeatures int) Option {
	return func(e *Engine) { e.builder.MaxFeatures = maxFeatures }
}

// WithFilters 追加作用于所有推荐出口的过滤器（过敏成分、业务规则等）。
func WithFilters(filters ...filter.Filter) Option {
	return func(e *Engine) { e.filters = append(e.filters, filters...) }
}

// New 创建 Engine。首个快照需要调用方显式 RefreshSnapshot 构建。
func New(graphStore graph.Store, opts ...Option) *Engine {
	e := &Engine{
		graphStore:    graphStore,
		holder:        snapshot.NewHolder(),
		log:           logger.Nop(),
		collaborative: &recall.Collaborative{},
		content:       &recall.ContentBased{},
		graphWalk:     &recall.GraphWalk{},
	}
	e.builder = &snapshot.Builder{Graph: graphStore}
	for _, opt := range opts {
		opt(e)
	}
	e.builder.Log = e.log
	return e
}

// RefreshSnapshot 从图谱当前状态重建快照并原子切换。
// 构建失败时返回错误，旧快照继续服务；重试策略属于调用方。
func (e *Engine) RefreshSnapshot(ctx context.Context) error {
	snap, err := e.builder.Build(ctx)
	if err != nil {
		return fmt.Errorf("refresh snapshot: %w", err)
	}
	old := e.holder.Swap(snap)
	if old != nil {
		e.log.Info("快照已切换", "old_version", old.Version, "new_version", snap.Version)
	}
	return nil
}

// Snapshot 返回当前服务中的快照；尚未构建时为 nil。
func (e *Engine) Snapshot() *core.Snapshot {
	return e.holder.Load()
}

// RecommendCollaborative 协同过滤推荐。
func (e *Engine) RecommendCollaborative(ctx context.Context, userID string, limit int) ([]*core.Candidate, error) {
	return e.recommendBySource(ctx, e.collaborative, recall.StrategyCollaborative, userID, limit)
}

// RecommendContent 基于内容的推荐。
func (e *Engine) RecommendContent(ctx context.Context, userID string, limit int) ([]*core.Candidate, error) {
	return e.recommendBySource(ctx, e.content, recall.StrategyContent, userID, limit)
}

// RecommendGraph 基于图谱随机游走的推荐。
func (e *Engine) RecommendGraph(ctx context.Context, userID string, limit int) ([]*core.Candidate, error) {
	return e.recommendBySource(ctx, e.graphWalk, recall.StrategyGraph, userID, limit)
}

// RecommendHybrid 混合推荐：三策略并发 fan-out 后加权融合。
func (e *Engine) RecommendHybrid(ctx context.Context, userID string, limit int) ([]*core.Candidate, error) {
	rctx, ok := e.newRecommendContext(userID, limit)
	if !ok {
		return []*core.Candidate{}, nil
	}

	if cached, ok := e.cacheGet(ctx, rctx, "hybrid"); ok {
		return cached, nil
	}

	p := &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&recall.Fanout{Sources: []recall.Source{e.collaborative, e.content, e.graphWalk}},
			&filter.FilterNode{Filters: e.filters},
			&rerank.Fusion{Weights: e.weights},
		},
	}
	out, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}
	e.cachePut(ctx, rctx, "hybrid", out)
	return out, nil
}

// recommendBySource 执行单一策略：召回 → 过滤 → 截断。
func (e *Engine) recommendBySource(ctx context.Context, src recall.Source, method, userID string, limit int) ([]*core.Candidate, error) {
	rctx, ok := e.newRecommendContext(userID, limit)
	if !ok {
		return []*core.Candidate{}, nil
	}

	if cached, ok := e.cacheGet(ctx, rctx, method); ok {
		return cached, nil
	}

	cands, err := src.Recall(ctx, rctx)
	if err != nil {
		return nil, err
	}
	if len(e.filters) > 0 {
		node := &filter.FilterNode{Filters: e.filters}
		cands, err = node.Process(ctx, rctx, cands)
		if err != nil {
			return nil, err
		}
	}
	if cands == nil {
		cands = []*core.Candidate{}
	}
	e.cachePut(ctx, rctx, method, cands)
	return cands, nil
}

// newRecommendContext 解析快照与用户画像；快照缺失或用户未知返回 ok=false（空结果语义）。
func (e *Engine) newRecommendContext(userID string, limit int) (*core.RecommendContext, bool) {
	snap := e.holder.Load()
	if snap == nil {
		e.log.Warn("快照尚未构建，返回空结果", "user_id", userID)
		return nil, false
	}
	user := snap.Profile(userID)
	if user == nil {
		return nil, false
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &core.RecommendContext{
		UserID:   userID,
		User:     user,
		Snapshot: snap,
		Limit:    limit,
	}, true
}
