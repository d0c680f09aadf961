package similarity

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Matrix 是产品两两内容相似度的对称矩阵。
// 对角线未定义且不允许使用；值域 [0,1]；每个快照构建一次。
type Matrix struct {
	ids   []string
	index map[string]int
	data  [][]float64 // 满存储，data[i][j] == data[j][i]
}

// NewMatrix 创建空矩阵（产品集合固定）。
func NewMatrix(ids []string) *Matrix {
	m := &Matrix{
		ids:   ids,
		index: make(map[string]int, len(ids)),
		data:  make([][]float64, len(ids)),
	}
	for i, id := range ids {
		m.index[id] = i
		m.data[i] = make([]float64, len(ids))
	}
	return m
}

// Len 返回矩阵覆盖的产品数。
func (m *Matrix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.ids)
}

// IDs 返回矩阵覆盖的产品 ID（构建顺序）。
func (m *Matrix) IDs() []string {
	if m == nil {
		return nil
	}
	return m.ids
}

// Sim 返回一对产品的相似度；任一产品不在矩阵中或 a==b 时返回 (0, false)。
func (m *Matrix) Sim(a, b string) (float64, bool) {
	if m == nil || a == b {
		return 0, false
	}
	i, ok := m.index[a]
	if !ok {
		return 0, false
	}
	j, ok := m.index[b]
	if !ok {
		return 0, false
	}
	return m.data[i][j], true
}

// set 同时写对称两侧，仅在构建期调用。
func (m *Matrix) set(i, j int, v float64) {
	m.data[i][j] = v
	m.data[j][i] = v
}

// Neighbor 是某个产品的一个相似邻居。
type Neighbor struct {
	ProductID string
	Sim       float64
}

// Neighbors 返回与指定产品最相似的 limit 个产品，按相似度降序（同分按 ID 升序）。
// 未知产品返回空切片。
func (m *Matrix) Neighbors(productID string, limit int) []Neighbor {
	if m == nil {
		return nil
	}
	i, ok := m.index[productID]
	if !ok {
		return nil
	}
	out := make([]Neighbor, 0, len(m.ids)-1)
	for j, id := range m.ids {
		if j == i {
			continue
		}
		out = append(out, Neighbor{ProductID: id, Sim: m.data[i][j]})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Sim != out[b].Sim {
			return out[a].Sim > out[b].Sim
		}
		return out[a].ProductID < out[b].ProductID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// BuildMatrix 从产品特征文本构建相似度矩阵。
//
// 两两计算是 O(N²)，这也是快照按周期（而非按请求）重建的原因；
// 行级计算相互独立，使用 errgroup 并行。
// 产品数 < 2 时返回空矩阵，不报错。
func BuildMatrix(ctx context.Context, ids []string, texts []string, maxFeatures int) (*Matrix, error) {
	if len(ids) < 2 {
		return NewMatrix(nil), nil
	}

	vectorizer := &Vectorizer{MaxFeatures: maxFeatures}
	vectorizer.Fit(texts)

	vectors := make([]Vector, len(ids))
	for i, text := range texts {
		vectors[i] = vectorizer.Transform(text)
	}

	m := NewMatrix(ids)
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := range ids {
		row := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// 只算上三角，set 同步写两侧
			for j := row + 1; j < len(ids); j++ {
				m.set(row, j, Cosine(vectors[row], vectors[j]))
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}
