package filter

import (
	"context"

	"github.com/rushteam/cosrec/core"
)

// Purchased 是已购过滤器：剔除请求用户已经购买过的产品。
// 各策略自身已排除已购产品，此过滤器作为链路上可插拔的兜底。
type Purchased struct{}

func (f *Purchased) Name() string {
	return "filter.purchased"
}

func (f *Purchased) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	cand *core.Candidate,
) (bool, error) {
	if cand == nil || rctx == nil || rctx.User == nil {
		return false, nil
	}
	return rctx.User.HasPurchased(cand.ProductID), nil
}

var _ Filter = (*Purchased)(nil)
