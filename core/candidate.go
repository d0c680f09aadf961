package core

import "github.com/rushteam/cosrec/pkg/utils"

// Candidate 是推荐链路中的统一承载结构：候选产品、分数、推荐理由、置信度。
// Score 用于排序决策；Reason 与 Labels 用于解释与策略驱动。
type Candidate struct {
	ProductID  string
	Score      float64
	Reason     string
	Confidence float64
	Meta       map[string]any
	Labels     map[string]utils.Label
}

func NewCandidate(productID string) *Candidate {
	return &Candidate{
		ProductID: productID,
		Meta:      make(map[string]any),
		Labels:    make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (c *Candidate) PutLabel(key string, lbl utils.Label) {
	if c.Labels == nil {
		c.Labels = make(map[string]utils.Label)
	}
	if old, ok := c.Labels[key]; ok {
		c.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	c.Labels[key] = lbl
}

// AppendReason 追加推荐理由；多个策略命中同一产品时以 "; " 连接。
func (c *Candidate) AppendReason(reason string) {
	if reason == "" {
		return
	}
	if c.Reason == "" {
		c.Reason = reason
		return
	}
	c.Reason = c.Reason + "; " + reason
}
