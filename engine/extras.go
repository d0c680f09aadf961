package engine

import (
	"context"
	"fmt"

	"github.com/rushteam/cosrec/core"
	"github.com/rushteam/cosrec/pkg/utils"
)

// skinTypeConfidence 是肤质推荐的固定置信度：
// 适配关系来自图谱显式标注，可信但不是个性化信号。
const skinTypeConfidence = 0.8

// RecommendBySkinType 按肤质推荐产品：直接查询图谱中 SUITABLE_FOR 关系，
// 评分高、评论多的产品优先；分数为 rating/5 归一化。
func (e *Engine) RecommendBySkinType(ctx context.Context, skinType string, limit int) ([]*core.Candidate, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	products, err := e.graphStore.ProductsBySkinType(ctx, skinType, limit)
	if err != nil {
		return nil, fmt.Errorf("recommend by skin type: %w", err)
	}

	out := make([]*core.Candidate, 0, len(products))
	for _, p := range products {
		c := core.NewCandidate(p.ID)
		if p.Rating != nil {
			c.Score = *p.Rating / 5.0
		}
		c.Reason = fmt.Sprintf("适合%s肌肤", skinType)
		c.Confidence = skinTypeConfidence
		c.PutLabel("strategy", utils.Label{Value: "skin_type", Source: "engine"})
		c.Meta["name"] = p.Name
		c.Meta["category"] = p.Category
		c.Meta["brand"] = p.BrandName
		out = append(out, c)
	}
	return out, nil
}

// SimilarProduct 是相似产品查询的一项结果。
type SimilarProduct struct {
	ProductID string
	Name      string
	Sim       float64
}

// SimilarProducts 返回与指定产品内容最相似的 limit 个产品（来自当前快照的相似度矩阵）。
// 未知产品或快照未构建时返回空列表。
func (e *Engine) SimilarProducts(_ context.Context, productID string, limit int) []SimilarProduct {
	snap := e.holder.Load()
	if snap == nil || snap.Matrix == nil {
		return []SimilarProduct{}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	neighbors := snap.Matrix.Neighbors(productID, limit)
	out := make([]SimilarProduct, 0, len(neighbors))
	for _, nb := range neighbors {
		sp := SimilarProduct{ProductID: nb.ProductID, Sim: nb.Sim}
		if f := snap.Feature(nb.ProductID); f != nil {
			sp.Name = f.Name
		}
		out = append(out, sp)
	}
	return out
}
