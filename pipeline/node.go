package pipeline

import (
	"context"

	"github.com/rushteam/cosrec/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindRecall      Kind = "recall"      // 召回阶段：各策略生成候选集
	KindFilter      Kind = "filter"      // 过滤阶段：剔除不符合约束的候选
	KindFusion      Kind = "fusion"      // 融合阶段：多策略候选加权合并
	KindReRank      Kind = "rerank"      // 重排阶段：截断/多样性等最终调优
	KindPostProcess Kind = "postprocess" // 后处理阶段：补充元信息或最终修饰
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用"输入 candidates -> 输出 candidates"的形态，
// 方便 Recall 生成、Filter 剔除、Fusion 合并、ReRank 截断等操作。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		cands []*core.Candidate,
	) ([]*core.Candidate, error)
}

// NodeBuilder 根据 map 配置构建 Node。
type NodeBuilder func(cfg map[string]any) (Node, error)
