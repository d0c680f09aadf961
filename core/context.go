package core

import "github.com/rushteam/cosrec/pkg/utils"

// RecommendContext 承载一次推荐请求的全部上下文，贯穿整个 Pipeline 透传。
// Snapshot 在请求入口处解析一次，此后所有策略只读它，保证无撕裂读。
type RecommendContext struct {
	UserID string

	// User 是从 Snapshot 解析出的用户画像；未知用户为 nil，各策略返回空结果。
	User *UserProfile

	// Snapshot 是本次请求所服务的数据快照。
	Snapshot *Snapshot

	// Limit 是最终返回的候选数上限。
	Limit int

	// Labels 是用户级标签，可驱动整个 Pipeline 行为。
	Labels map[string]utils.Label

	// Params 请求级上下文参数（query、device_type、实验参数等）。
	Params map[string]any
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
