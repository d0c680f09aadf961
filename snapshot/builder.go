package snapshot

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/cosrec/core"
	"github.com/rushteam/cosrec/graph"
	"github.com/rushteam/cosrec/pkg/logger"
	"github.com/rushteam/cosrec/similarity"
	"github.com/rushteam/cosrec/simgraph"
)

// Builder 从知识图谱构建完整快照：
// 用户画像 → 产品特征 → 相似度矩阵 → 相似度图。
//
// 构建是 O(N²) 的批处理，支持 context 取消；
// 图谱查询失败对本次构建是致命的（由调用方保留旧快照）。
type Builder struct {
	Graph graph.Store
	Log   *logger.Logger

	// MaxFeatures 是 TF-IDF 词表上限，<=0 时为 1000。
	MaxFeatures int

	// EdgeThreshold 是建边相似度阈值，<=0 时为 0.3。
	EdgeThreshold float64

	version atomic.Int64
}

// Build 执行一次完整构建，返回新快照。
func (b *Builder) Build(ctx context.Context) (*core.Snapshot, error) {
	if b.Graph == nil {
		return nil, core.NewDomainError(core.ModuleSnapshot, core.ErrorCodeInvalidInput, "snapshot: graph store is required")
	}
	log := b.Log
	if log == nil {
		log = logger.Nop()
	}

	start := time.Now()

	// 用户与产品两路查询相互独立，并行拉取
	var (
		users    []graph.UserRecord
		products []graph.ProductRecord
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		users, err = b.Graph.ListUsers(egCtx)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		products, err = b.Graph.ListProducts(egCtx)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		log.Error("快照构建失败：图谱查询出错", "error", err)
		return nil, err
	}

	profiles := buildProfiles(users)
	features := buildFeatures(products)

	// ProductIDs 固定为字典序，保证同一图谱状态下构建结果可复现
	productIDs := make([]string, 0, len(features))
	for id := range features {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	texts := make([]string, len(productIDs))
	for i, id := range productIDs {
		texts[i] = features[id].FeatureText
	}

	matrix, err := similarity.BuildMatrix(ctx, productIDs, texts, b.MaxFeatures)
	if err != nil {
		log.Error("快照构建失败：相似度计算中断", "error", err)
		return nil, err
	}
	simGraph := simgraph.BuildGraph(matrix, b.EdgeThreshold)

	snap := &core.Snapshot{
		Version:    b.version.Add(1),
		BuiltAt:    time.Now(),
		Profiles:   profiles,
		Features:   features,
		ProductIDs: productIDs,
		Matrix:     matrix,
		Graph:      simGraph,
	}

	log.Info("快照构建完成",
		"version", snap.Version,
		"users", len(profiles),
		"products", len(features),
		"edges", simGraph.EdgeCount(),
		"cost", time.Since(start).String(),
	)
	return snap, nil
}
