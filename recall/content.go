package recall

import (
	"context"

	"github.com/rushteam/cosrec/core"
)

// ReasonContent 是内容策略的推荐理由。
const ReasonContent = "基于用户偏好和产品特征匹配"

// 内容匹配的固定权重：四路信号独立命中、独立加分，总分截断到 [0,1]。
const (
	categoryWeight = 0.3
	brandWeight    = 0.2
	priceWeight    = 0.2
	effectWeight   = 0.3

	// contentScoreThreshold 以下的候选不具备推荐价值，直接丢弃。
	contentScoreThreshold = 0.3
)

// effectConcernMapping 是功效 → 可缓解肌肤问题的固定映射表。
// 产品任一功效命中用户任一声明问题即加分，且只加一次。
var effectConcernMapping = map[string][]string{
	"保湿":  {"干燥", "缺水"},
	"控油":  {"出油", "油腻"},
	"美白":  {"暗沉", "色斑"},
	"抗衰老": {"细纹", "松弛"},
	"祛痘":  {"痘痘", "粉刺"},
}

// ContentBased 是基于内容的推荐策略（Content-Based Recommendation）。
//
// 核心思想："用户偏好某些特征，就推荐具有这些特征的其他产品"
//
// 四路信号：
//  1. 类别命中偏好类别       +0.3
//  2. 品牌命中偏好品牌       +0.2
//  3. 价格落在偏好价格区间   +0.2
//  4. 功效可缓解声明的肌肤问题 +0.3（多个功效命中也只加一次）
//
// 冷启动：零购买用户没有类别/品牌/价格偏好，只剩信号 4 可命中（恰好 0.3），
// 需要调低 ScoreThreshold 才能产出候选。
type ContentBased struct {
	// ScoreThreshold 以下（含）的候选被丢弃，<=0 时为 0.3。
	ScoreThreshold float64
}

func (r *ContentBased) Name() string { return "recall.content" }

func (r *ContentBased) Recall(_ context.Context, rctx *core.RecommendContext) ([]*core.Candidate, error) {
	if rctx == nil || rctx.User == nil || rctx.Snapshot == nil {
		return nil, nil
	}
	user := rctx.User

	threshold := r.ScoreThreshold
	if threshold <= 0 {
		threshold = contentScoreThreshold
	}

	out := make([]*core.Candidate, 0)
	// 按 ProductIDs 的固定顺序遍历，保证构建顺序无关
	for _, productID := range rctx.Snapshot.ProductIDs {
		if user.HasPurchased(productID) {
			continue
		}
		features := rctx.Snapshot.Feature(productID)
		score := contentScore(features, &user.Preferences)
		if score <= threshold {
			continue
		}

		c := core.NewCandidate(productID)
		c.Score = score
		c.Reason = ReasonContent
		c.Confidence = score
		markStrategy(c, StrategyContent)
		attachMeta(c, features)
		out = append(out, c)
	}
	return sortAndCap(out, rctx.Limit), nil
}

// contentScore 计算单个产品与用户偏好的匹配分。
func contentScore(features *core.ProductFeatures, prefs *core.Preferences) float64 {
	if features == nil {
		return 0
	}
	score := 0.0

	// 类别匹配
	if features.Category != "" && contains(prefs.PreferredCategories, features.Category) {
		score += categoryWeight
	}

	// 品牌匹配
	if features.BrandName != "" && contains(prefs.PreferredBrands, features.BrandName) {
		score += brandWeight
	}

	// 价格匹配
	if features.Price != nil && prefs.PriceRange.Contains(*features.Price) {
		score += priceWeight
	}

	// 功效-肌肤问题匹配
	if effectMatchesConcern(features.Effects, prefs.SkinConcerns) {
		score += effectWeight
	}

	if score > 1 {
		score = 1
	}
	return score
}

// effectMatchesConcern 判断产品功效是否可缓解用户声明的任一肌肤问题。
func effectMatchesConcern(effects, concerns []string) bool {
	if len(effects) == 0 || len(concerns) == 0 {
		return false
	}
	concernSet := make(map[string]struct{}, len(concerns))
	for _, c := range concerns {
		concernSet[c] = struct{}{}
	}
	for _, effect := range effects {
		for _, mapped := range effectConcernMapping[effect] {
			if _, ok := concernSet[mapped]; ok {
				return true
			}
		}
	}
	return false
}

func contains(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}

var _ Source = (*ContentBased)(nil)
