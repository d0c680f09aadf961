package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/cosrec/core"
)

// cachedCandidate 是候选在缓存中的序列化形态（不带 Labels/Meta，按需重建）。
type cachedCandidate struct {
	ProductID  string  `json:"product_id"`
	Score      float64 `json:"score"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

// cacheKey 带上快照版本：刷新后旧 key 自然失效，不需要主动清理。
func cacheKey(rctx *core.RecommendContext, method string) string {
	return fmt.Sprintf("cosrec:rec:%d:%s:%s:%d", rctx.Snapshot.Version, method, rctx.UserID, rctx.Limit)
}

func (e *Engine) cacheGet(ctx context.Context, rctx *core.RecommendContext, method string) ([]*core.Candidate, bool) {
	if e.cache == nil {
		return nil, false
	}
	data, err := e.cache.Get(ctx, cacheKey(rctx, method))
	if err != nil {
		return nil, false
	}
	var cached []cachedCandidate
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false
	}
	out := make([]*core.Candidate, 0, len(cached))
	for _, cc := range cached {
		c := core.NewCandidate(cc.ProductID)
		c.Score = cc.Score
		c.Reason = cc.Reason
		c.Confidence = cc.Confidence
		out = append(out, c)
	}
	return out, true
}

func (e *Engine) cachePut(ctx context.Context, rctx *core.RecommendContext, method string, cands []*core.Candidate) {
	if e.cache == nil {
		return
	}
	cached := make([]cachedCandidate, 0, len(cands))
	for _, c := range cands {
		cached = append(cached, cachedCandidate{
			ProductID:  c.ProductID,
			Score:      c.Score,
			Reason:     c.Reason,
			Confidence: c.Confidence,
		})
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return
	}
	if err := e.cache.Set(ctx, cacheKey(rctx, method), data, e.cacheTTL); err != nil {
		e.log.Warn("写入结果缓存失败", "method", method, "error", err)
	}
}
