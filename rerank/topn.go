package rerank

import (
	"context"

	"github.com/rushteam/cosrec/core"
	"github.com/rushteam/cosrec/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在排序后截取前 N 个候选。
// 通常放在 fusion 之后，控制最终返回数量。
type TopNNode struct {
	// N 要保留的候选数量；N <= 0 时不截断。
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	cands []*core.Candidate,
) ([]*core.Candidate, error) {
	if n.N <= 0 || len(cands) <= n.N {
		return cands, nil
	}
	return cands[:n.N], nil
}

var _ pipeline.Node = (*TopNNode)(nil)
