// Package builders 注册内置 Node 的配置构建器（import 即生效）。
package builders

import (
	"fmt"
	"time"

	"github.com/rushteam/cosrec/config"
	"github.com/rushteam/cosrec/filter"
	"github.com/rushteam/cosrec/pipeline"
	"github.com/rushteam/cosrec/pkg/conv"
	"github.com/rushteam/cosrec/recall"
	"github.com/rushteam/cosrec/rerank"
)

func init() {
	config.Register("recall.fanout", BuildFanoutNode)
	config.Register("fusion", BuildFusionNode)
	config.Register("filter", BuildFilterNode)
	config.Register("rerank.topn", BuildTopNNode)
}

// BuildFanoutNode 构建策略 fan-out Node。
// 配置示例：
//
//	type: recall.fanout
//	config:
//	  timeout: 2
//	  sources: [collaborative, content, graph]
func BuildFanoutNode(cfg map[string]any) (pipeline.Node, error) {
	names := conv.SliceAnyToString(cfg["sources"])
	if len(names) == 0 {
		return nil, fmt.Errorf("sources not found or invalid")
	}
	sources := make([]recall.Source, 0, len(names))
	for _, name := range names {
		switch name {
		case recall.StrategyCollaborative:
			sources = append(sources, &recall.Collaborative{})
		case recall.StrategyContent:
			sources = append(sources, &recall.ContentBased{})
		case recall.StrategyGraph:
			sources = append(sources, &recall.GraphWalk{})
		default:
			return nil, fmt.Errorf("unknown source type: %s", name)
		}
	}
	fanout := &recall.Fanout{Sources: sources}
	if sec := conv.ConfigGetInt(cfg, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	return fanout, nil
}

// BuildFusionNode 构建融合 Node。
// 配置示例：
//
//	type: fusion
//	config:
//	  weights: {collaborative: 0.4, content: 0.3, graph: 0.3}
func BuildFusionNode(cfg map[string]any) (pipeline.Node, error) {
	node := &rerank.Fusion{}
	if raw, ok := cfg["weights"].(map[string]any); ok {
		weights := make(map[string]float64, len(raw))
		for strategy, v := range raw {
			if w, ok := conv.ToFloat64(v); ok {
				weights[strategy] = w
			}
		}
		if len(weights) > 0 {
			node.Weights = weights
		}
	}
	return node, nil
}

// BuildFilterNode 构建过滤 Node。
// 配置示例：
//
//	type: filter
//	config:
//	  purchased: true
//	  allergen: true
//	  rules:
//	    - 'item.meta.price > 1000.0'
func BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	node := &filter.FilterNode{}
	if conv.ConfigGet(cfg, "purchased", false) {
		node.Filters = append(node.Filters, &filter.Purchased{})
	}
	if conv.ConfigGet(cfg, "allergen", false) {
		node.Filters = append(node.Filters, &filter.Allergen{})
	}
	for _, expr := range conv.SliceAnyToString(cfg["rules"]) {
		node.Filters = append(node.Filters, &filter.Rule{Expr: expr})
	}
	return node, nil
}

// BuildTopNNode 构建 Top-N 截断 Node。
func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.TopNNode{N: conv.ConfigGetInt(cfg, "n", 0)}, nil
}
