package recall

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/cosrec/core"
	"github.com/rushteam/cosrec/pipeline"
	"github.com/rushteam/cosrec/pkg/utils"
)

// Fanout 是一个 Recall Node：并发执行多个策略，合并（union）结果。
//
// 混合推荐的入口：三个策略各自产出带 strategy 标签的候选，
// 不在此处去重——同一产品的多路产出交给下游 fusion 加权合并。
// 单个策略出错只丢弃该路结果，不中断其他策略。
type Fanout struct {
	Sources []Source

	// Timeout 是每个策略的超时时间，0 表示不限制。
	Timeout time.Duration
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Candidate,
) ([]*core.Candidate, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	var (
		mu    sync.Mutex
		all   []*core.Candidate
		eg, _ = errgroup.WithContext(ctx)
	)

	for _, src := range n.Sources {
		s := src
		eg.Go(func() error {
			recallCtx := ctx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(ctx, n.Timeout)
				defer cancel()
			}

			cands, err := s.Recall(recallCtx, rctx)
			if err != nil {
				// 超时或错误时返回空结果，不中断其他策略
				return nil
			}

			// 记录召回来源 label，方便 explain / 观测
			for _, c := range cands {
				c.PutLabel("recall_source", utils.Label{Value: s.Name(), Source: "recall"})
			}

			mu.Lock()
			all = append(all, cands...)
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}

var _ pipeline.Node = (*Fanout)(nil)
