// Package simgraph 实现产品相似度图：由相似度矩阵按阈值建边，并提供随机游走打分。
package simgraph

import (
	"sort"

	"github.com/rushteam/cosrec/similarity"
)

// DefaultEdgeThreshold 是建边的相似度阈值：sim > 0.3 才建边。
const DefaultEdgeThreshold = 0.3

// edge 是一条出边（无向图中两侧各存一条）。
type edge struct {
	to     string
	weight float64
}

// Graph 是无向加权相似度图。
//
// 不变式：
//   - 节点为快照内全部产品（包括孤立节点）
//   - 边 (a,b) 存在当且仅当 sim(a,b) > 阈值，无自环
//   - 每条边的 weight 即相似度，恒 > 0
type Graph struct {
	nodes map[string][]edge
}

// NewGraph 创建只含节点的空图。
func NewGraph(productIDs []string) *Graph {
	g := &Graph{nodes: make(map[string][]edge, len(productIDs))}
	for _, id := range productIDs {
		g.nodes[id] = nil
	}
	return g
}

// BuildGraph 从相似度矩阵构建图。threshold <= 0 时使用默认阈值。
func BuildGraph(m *similarity.Matrix, threshold float64) *Graph {
	if threshold <= 0 {
		threshold = DefaultEdgeThreshold
	}
	ids := m.IDs()
	g := NewGraph(ids)
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			sim, ok := m.Sim(a, b)
			if !ok || sim <= threshold {
				continue
			}
			g.addEdge(a, b, sim)
		}
	}
	return g
}

func (g *Graph) addEdge(a, b string, weight float64) {
	g.nodes[a] = append(g.nodes[a], edge{to: b, weight: weight})
	g.nodes[b] = append(g.nodes[b], edge{to: a, weight: weight})
}

// HasNode 判断产品是否在图中。
func (g *Graph) HasNode(id string) bool {
	if g == nil {
		return false
	}
	_, ok := g.nodes[id]
	return ok
}

// HasEdge 判断两个产品之间是否有边。
func (g *Graph) HasEdge(a, b string) bool {
	if g == nil {
		return false
	}
	for _, e := range g.nodes[a] {
		if e.to == b {
			return true
		}
	}
	return false
}

// Degree 返回节点的度；不在图中返回 0。
func (g *Graph) Degree(id string) int {
	if g == nil {
		return 0
	}
	return len(g.nodes[id])
}

// Neighbors 返回节点的邻居 ID（字典序），用于观测与测试。
func (g *Graph) Neighbors(id string) []string {
	if g == nil {
		return nil
	}
	es := g.nodes[id]
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.to)
	}
	sort.Strings(out)
	return out
}

// NodeCount 返回节点数。
func (g *Graph) NodeCount() int {
	if g == nil {
		return 0
	}
	return len(g.nodes)
}

// EdgeCount 返回无向边数。
func (g *Graph) EdgeCount() int {
	if g == nil {
		return 0
	}
	total := 0
	for _, es := range g.nodes {
		total += len(es)
	}
	return total / 2
}
