package snapshot

import (
	"github.com/rushteam/cosrec/core"
	"github.com/rushteam/cosrec/graph"
)

// buildFeatures 从产品记录构建产品特征汇总。
// 缺失字段按空值处理；特征文本按固定顺序拼接，仅供相似度引擎使用。
func buildFeatures(products []graph.ProductRecord) map[string]*core.ProductFeatures {
	features := make(map[string]*core.ProductFeatures, len(products))
	for _, p := range products {
		f := &core.ProductFeatures{
			ProductID:         p.ID,
			Name:              p.Name,
			Description:       p.Description,
			Category:          p.Category,
			BrandName:         p.BrandName,
			Price:             p.Price,
			Rating:            p.Rating,
			Ingredients:       p.Ingredients,
			Effects:           p.Effects,
			SuitableSkinTypes: p.SuitableSkinTypes,
		}
		f.BuildFeatureText()
		features[p.ID] = f
	}
	return features
}
