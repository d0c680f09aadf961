package rerank

import (
	"context"
	"sort"

	"github.com/rushteam/cosrec/core"
	"github.com/rushteam/cosrec/pipeline"
	"github.com/rushteam/cosrec/recall"
)

// DefaultStrategyWeights 是混合推荐的固定加权系数。
// 这是策略常量而非学习所得，按配置项对待。
var DefaultStrategyWeights = map[string]float64{
	recall.StrategyCollaborative: 0.4,
	recall.StrategyContent:       0.3,
	recall.StrategyGraph:         0.3,
}

// strategyPriority 决定多策略命中同一产品时理由的拼接顺序。
var strategyPriority = []string{
	recall.StrategyCollaborative,
	recall.StrategyContent,
	recall.StrategyGraph,
}

// Fusion 是融合 Node：把多个策略的候选按产品 ID 加权合并成单一排序列表。
//
// 合并规则：
//   - combined_score[p] = Σ 策略权重 × 策略分（未产出该产品的策略贡献 0）
//   - combined_confidence[p] 同样按权重加权求和
//   - 理由按策略优先级（协同 → 内容 → 图谱）以 "; " 拼接
//   - 已购产品最终兜底剔除：即使某个策略漏掉过滤，融合层也不放行
//   - 排序：分数降序，同分按产品 ID 升序，保证输出确定
type Fusion struct {
	// Weights 是 策略 -> 权重；为 nil 时使用 DefaultStrategyWeights。
	Weights map[string]float64
}

func (n *Fusion) Name() string        { return "fusion" }
func (n *Fusion) Kind() pipeline.Kind { return pipeline.KindFusion }

type fusionEntry struct {
	candidate *core.Candidate
	reasons   map[string]string // strategy -> reason
}

func (n *Fusion) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	cands []*core.Candidate,
) ([]*core.Candidate, error) {
	weights := n.Weights
	if weights == nil {
		weights = DefaultStrategyWeights
	}

	entries := make(map[string]*fusionEntry)
	for _, c := range cands {
		if c == nil {
			continue
		}
		strategy := ""
		if lbl, ok := c.Labels[recall.LabelStrategy]; ok {
			strategy = lbl.Value
		}
		weight, ok := weights[strategy]
		if !ok {
			// 未注册权重的来源不参与融合
			continue
		}

		entry, exists := entries[c.ProductID]
		if !exists {
			merged := core.NewCandidate(c.ProductID)
			for k, v := range c.Meta {
				merged.Meta[k] = v
			}
			entry = &fusionEntry{candidate: merged, reasons: make(map[string]string)}
			entries[c.ProductID] = entry
		}
		entry.candidate.Score += weight * c.Score
		entry.candidate.Confidence += weight * c.Confidence
		entry.reasons[strategy] = c.Reason
		for k, v := range c.Labels {
			entry.candidate.PutLabel(k, v)
		}
	}

	out := make([]*core.Candidate, 0, len(entries))
	for _, entry := range entries {
		// 已购产品兜底剔除
		if rctx != nil && rctx.User != nil && rctx.User.HasPurchased(entry.candidate.ProductID) {
			continue
		}
		for _, strategy := range strategyPriority {
			if reason, ok := entry.reasons[strategy]; ok {
				entry.candidate.AppendReason(reason)
			}
		}
		out = append(out, entry.candidate)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ProductID < out[j].ProductID
	})
	if rctx != nil && rctx.Limit > 0 && len(out) > rctx.Limit {
		out = out[:rctx.Limit]
	}
	return out, nil
}

var _ pipeline.Node = (*Fusion)(nil)
