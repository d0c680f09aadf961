package simgraph

import "math/rand"

// 默认游走参数，来自线上验证过的经验值。
const (
	DefaultWalkLength = 10
	DefaultWalkCount  = 50
)

// Walker 在相似度图上做带权随机游走。
//
// 随机源显式注入而非使用全局 rand：测试可用固定种子断言访问分布，
// 线上各请求独立持有 rand.Rand，互不加锁。
type Walker struct {
	Graph *Graph
	Rand  *rand.Rand

	// WalkLength / WalkCount <=0 时使用默认值。
	WalkLength int
	WalkCount  int
}

// Walk 从单个种子产品出发执行 WalkCount 次独立游走，返回 节点 -> 访问权重。
//
// 每次游走至多 WalkLength 步：按边权比例选择下一节点（总权为零时退化为均匀选择，
// 在正边权不变式下不会发生），无邻居则提前终止。
// 第 step 步（1 起）落到的节点记 1/step 的访问权重。
// 种子不在图中或为孤立节点时返回空 map，不报错。
func (w *Walker) Walk(seed string) map[string]float64 {
	scores := make(map[string]float64)
	if w.Graph == nil || !w.Graph.HasNode(seed) {
		return scores
	}

	walkLength := w.WalkLength
	if walkLength <= 0 {
		walkLength = DefaultWalkLength
	}
	walkCount := w.WalkCount
	if walkCount <= 0 {
		walkCount = DefaultWalkCount
	}

	for i := 0; i < walkCount; i++ {
		current := seed
		for step := 1; step <= walkLength; step++ {
			next, ok := w.step(current)
			if !ok {
				break
			}
			scores[next] += 1.0 / float64(step)
			current = next
		}
	}
	return scores
}

// WalkFromSeeds 对一组种子游走并累加访问权重。
func (w *Walker) WalkFromSeeds(seeds []string) map[string]float64 {
	total := make(map[string]float64)
	for _, seed := range seeds {
		for id, score := range w.Walk(seed) {
			total[id] += score
		}
	}
	return total
}

// step 按边权比例从 current 的邻居中选一个；无邻居时返回 false。
func (w *Walker) step(current string) (string, bool) {
	edges := w.Graph.nodes[current]
	if len(edges) == 0 {
		return "", false
	}

	var totalWeight float64
	for _, e := range edges {
		totalWeight += e.weight
	}
	if totalWeight == 0 {
		// 总权为零时退化为均匀选择
		return edges[w.Rand.Intn(len(edges))].to, true
	}

	r := w.Rand.Float64() * totalWeight
	var cum float64
	for _, e := range edges {
		cum += e.weight
		if r <= cum {
			return e.to, true
		}
	}
	return edges[len(edges)-1].to, true
}
