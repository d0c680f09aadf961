package filter

import (
	"context"

	"github.com/rushteam/cosrec/core"
)

// Allergen 是过敏成分过滤器：剔除含有用户声明过敏成分的产品。
// 成分名来自快照中的产品特征，精确匹配。
type Allergen struct{}

func (f *Allergen) Name() string {
	return "filter.allergen"
}

func (f *Allergen) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	cand *core.Candidate,
) (bool, error) {
	if cand == nil || rctx == nil || rctx.User == nil || rctx.Snapshot == nil {
		return false, nil
	}
	allergens := rctx.User.AllergicIngredients
	if len(allergens) == 0 {
		return false, nil
	}
	features := rctx.Snapshot.Feature(cand.ProductID)
	if features == nil {
		return false, nil
	}

	allergenSet := make(map[string]struct{}, len(allergens))
	for _, a := range allergens {
		allergenSet[a] = struct{}{}
	}
	for _, ingredient := range features.Ingredients {
		if _, ok := allergenSet[ingredient]; ok {
			return true, nil
		}
	}
	return false, nil
}

var _ Filter = (*Allergen)(nil)
