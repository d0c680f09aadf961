package filter

import (
	"context"

	"github.com/rushteam/cosrec/core"
	"github.com/rushteam/cosrec/pkg/dsl"
)

// Rule 是 CEL 表达式驱动的业务规则过滤器。
// Expr 对候选求值为 true 时该候选被过滤，例如：
//
//	&filter.Rule{Expr: `item.meta.price > 1000.0`}        // 剔除高价产品
//	&filter.Rule{Expr: `item.meta.category == "fragrance"`} // 剔除香水类
type Rule struct {
	Expr string
}

func (f *Rule) Name() string {
	return "filter.rule"
}

func (f *Rule) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	cand *core.Candidate,
) (bool, error) {
	if f.Expr == "" || cand == nil {
		return false, nil
	}
	return dsl.NewEval(cand, rctx).Evaluate(f.Expr)
}

var _ Filter = (*Rule)(nil)
