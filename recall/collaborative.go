package recall

import (
	"context"
	"sort"

	"github.com/rushteam/cosrec/core"
)

// ReasonCollaborative 是协同过滤策略的推荐理由。
const ReasonCollaborative = "基于相似用户的购买行为"

// Collaborative 是基于用户的协同过滤策略（User-CF）。
//
// 核心思想："购买行为相似的用户，会喜欢相似的产品"
//
// 算法流程：
//  1. 用 Jaccard 相似度（|A∩B| / |A∪B|）度量购买集合的重合程度
//  2. 保留相似度 > 阈值 的用户，取 TopK 个最相似用户
//  3. 这些用户购买过、目标用户未购买的产品，按相似度累加得分
//
// 冷启动：零购买用户与任何人 Jaccard 为 0，直接返回空列表。
type Collaborative struct {
	// SimilarityThreshold 是相似用户的 Jaccard 下限，<=0 时为 0.1。
	SimilarityThreshold float64

	// TopKSimilarUsers 是参与投票的相似用户数，<=0 时为 10。
	TopKSimilarUsers int
}

const (
	defaultSimilarityThreshold = 0.1
	defaultTopKSimilarUsers    = 10
)

func (r *Collaborative) Name() string { return "recall.collaborative" }

func (r *Collaborative) Recall(_ context.Context, rctx *core.RecommendContext) ([]*core.Candidate, error) {
	if rctx == nil || rctx.User == nil || rctx.Snapshot == nil {
		return nil, nil
	}
	user := rctx.User
	if len(user.Purchased) == 0 {
		return nil, nil
	}

	threshold := r.SimilarityThreshold
	if threshold <= 0 {
		threshold = defaultSimilarityThreshold
	}
	topK := r.TopKSimilarUsers
	if topK <= 0 {
		topK = defaultTopKSimilarUsers
	}

	// 1. 找相似用户
	type similarUser struct {
		profile    *core.UserProfile
		similarity float64
	}
	similar := make([]similarUser, 0)
	for otherID, other := range rctx.Snapshot.Profiles {
		if otherID == user.UserID {
			continue
		}
		sim := jaccard(user.Purchased, other.Purchased)
		if sim > threshold {
			similar = append(similar, similarUser{profile: other, similarity: sim})
		}
	}
	// 相似度降序，同分按用户 ID 升序，保证 TopK 选择确定
	sort.Slice(similar, func(i, j int) bool {
		if similar[i].similarity != similar[j].similarity {
			return similar[i].similarity > similar[j].similarity
		}
		return similar[i].profile.UserID < similar[j].profile.UserID
	})
	if len(similar) > topK {
		similar = similar[:topK]
	}

	// 2. 相似用户投票：未购产品按相似度累加
	scores := make(map[string]float64)
	for _, su := range similar {
		for productID := range su.profile.Purchased {
			if user.HasPurchased(productID) {
				continue
			}
			scores[productID] += su.similarity
		}
	}

	// 3. 封装结果
	out := make([]*core.Candidate, 0, len(scores))
	for productID, score := range scores {
		c := core.NewCandidate(productID)
		c.Score = score
		c.Reason = ReasonCollaborative
		c.Confidence = score
		if c.Confidence > 1 {
			c.Confidence = 1
		}
		markStrategy(c, StrategyCollaborative)
		attachMeta(c, rctx.Snapshot.Feature(productID))
		out = append(out, c)
	}
	return sortAndCap(out, rctx.Limit), nil
}

// jaccard 计算两个购买集合的 Jaccard 相似度。
// 两个集合都为空时并集为 0，返回 0。
func jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for id := range a {
		if _, ok := b[id]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

var _ Source = (*Collaborative)(nil)
