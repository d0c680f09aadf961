package recall

import (
	"context"
	"sort"

	"github.com/rushteam/cosrec/core"
	"github.com/rushteam/cosrec/pkg/utils"
)

// Source 表示一个可复用的推荐策略（协同过滤/内容/图谱游走）。
// 你可以把它理解为"可并发 fan-out 的策略单元"。
//
// 约定：
//   - 只读 rctx.Snapshot，不做任何 I/O，不修改共享状态
//   - 排除请求用户已购产品
//   - 结果按分数降序（同分按产品 ID 升序），数量不超过 rctx.Limit
//   - 未知用户 / 无候选时返回空列表，不是错误
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Candidate, error)
}

// 策略标识，fusion 按它查加权系数。
const (
	StrategyCollaborative = "collaborative"
	StrategyContent       = "content"
	StrategyGraph         = "graph"
)

// LabelStrategy 是候选上记录产出策略的 Label key。
const LabelStrategy = "strategy"

// markStrategy 给候选打策略来源标签。
func markStrategy(c *core.Candidate, strategy string) {
	c.PutLabel(LabelStrategy, utils.Label{Value: strategy, Source: "recall"})
}

// attachMeta 把产品的展示/过滤元信息带到候选上，供 filter 与 API 层使用。
func attachMeta(c *core.Candidate, f *core.ProductFeatures) {
	if f == nil {
		return
	}
	c.Meta["name"] = f.Name
	c.Meta["category"] = f.Category
	c.Meta["brand"] = f.BrandName
	if f.Price != nil {
		c.Meta["price"] = *f.Price
	}
}

// sortAndCap 按 分数降序、产品 ID 升序 排序并截断到 limit。
// ID 升序的同分裁决保证同样的打分下输出完全确定。
func sortAndCap(cands []*core.Candidate, limit int) []*core.Candidate {
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].Score != cands[j].Score {
			return cands[i].Score > cands[j].Score
		}
		return cands[i].ProductID < cands[j].ProductID
	})
	if limit > 0 && len(cands) > limit {
		cands = cands[:limit]
	}
	return cands
}
