package recall

import (
	"context"
	"math/rand"
	"time"

	"github.com/rushteam/cosrec/core"
	"github.com/rushteam/cosrec/simgraph"
)

// ReasonGraph 是图谱游走策略的推荐理由。
const ReasonGraph = "基于知识图谱的产品关联分析"

// GraphWalk 是基于相似度图随机游走的推荐策略。
//
// 核心思想："与已购产品在图上强关联的产品，值得推荐"
//
// 算法流程：
//  1. 以用户每件已购产品为种子，在相似度图上做带权随机游走
//  2. 游走第 step 步到达的节点记 1/step 访问权重，跨种子累加
//  3. 排除已购产品，总分除以已购产品数归一化
//     （否则购买越多的用户分数天然越高）
//
// 冷启动：零购买用户没有种子，返回空列表（也避免了除零）。
type GraphWalk struct {
	// WalkLength / WalkCount <=0 时使用 simgraph 默认值（10 / 50）。
	WalkLength int
	WalkCount  int

	// NewRand 返回本次请求使用的随机源；测试注入固定种子即可复现游走。
	// 为 nil 时使用时间种子。
	NewRand func() *rand.Rand
}

func (r *GraphWalk) Name() string { return "recall.graph" }

func (r *GraphWalk) Recall(_ context.Context, rctx *core.RecommendContext) ([]*core.Candidate, error) {
	if rctx == nil || rctx.User == nil || rctx.Snapshot == nil || rctx.Snapshot.Graph == nil {
		return nil, nil
	}
	user := rctx.User
	if len(user.PurchasedList) == 0 {
		return nil, nil
	}

	rng := r.newRand()
	walker := &simgraph.Walker{
		Graph:      rctx.Snapshot.Graph,
		Rand:       rng,
		WalkLength: r.WalkLength,
		WalkCount:  r.WalkCount,
	}

	// 只有在图中的已购产品才能作为种子，但归一化分母始终是已购产品数
	seeds := make([]string, 0, len(user.PurchasedList))
	for _, productID := range user.PurchasedList {
		if rctx.Snapshot.Graph.HasNode(productID) {
			seeds = append(seeds, productID)
		}
	}
	visitWeights := walker.WalkFromSeeds(seeds)

	seedCount := float64(len(user.PurchasedList))
	out := make([]*core.Candidate, 0, len(visitWeights))
	for productID, weight := range visitWeights {
		if user.HasPurchased(productID) {
			continue
		}
		c := core.NewCandidate(productID)
		c.Score = weight / seedCount
		c.Reason = ReasonGraph
		c.Confidence = c.Score
		if c.Confidence > 1 {
			c.Confidence = 1
		}
		markStrategy(c, StrategyGraph)
		attachMeta(c, rctx.Snapshot.Feature(productID))
		out = append(out, c)
	}
	return sortAndCap(out, rctx.Limit), nil
}

func (r *GraphWalk) newRand() *rand.Rand {
	if r.NewRand != nil {
		return r.NewRand()
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

var _ Source = (*GraphWalk)(nil)
