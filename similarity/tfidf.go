// Package similarity 实现产品内容相似度：TF-IDF 向量化 + 两两余弦相似度矩阵。
package similarity

import (
	"math"
	"sort"
	"strings"
)

// Vectorizer 是 TF-IDF 向量化器。
//
// 算法要点：
//   - 分词：按空白切分并小写化，不做停用词过滤（成分名/功效名本身就是信号）
//   - 词表：按语料总词频降序截取 MaxFeatures 个词，频次相同按字典序
//   - idf：平滑形式 ln((1+N)/(1+df)) + 1
//   - 向量 L2 归一化，余弦相似度即归一化向量点积，值域 [0,1]
type Vectorizer struct {
	// MaxFeatures 是词表上限；<=0 时使用默认值 1000。
	MaxFeatures int

	vocab map[string]int
	idf   []float64
}

const defaultMaxFeatures = 1000

// term 是稀疏向量中的一个分量。
type term struct {
	index  int
	weight float64
}

// Vector 是 L2 归一化后的稀疏 TF-IDF 向量，分量按词表下标升序。
type Vector []term

func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// Fit 在语料上构建词表与 idf。
func (v *Vectorizer) Fit(docs []string) {
	maxFeatures := v.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = defaultMaxFeatures
	}

	// 语料总词频与文档频率
	totalFreq := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range tokenize(doc) {
			totalFreq[tok]++
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				docFreq[tok]++
			}
		}
	}

	// 截取词表：总词频降序，同频按字典序
	words := make([]string, 0, len(totalFreq))
	for w := range totalFreq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if totalFreq[words[i]] != totalFreq[words[j]] {
			return totalFreq[words[i]] > totalFreq[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > maxFeatures {
		words = words[:maxFeatures]
	}
	sort.Strings(words) // 词表内部按字典序编号，保证可复现

	v.vocab = make(map[string]int, len(words))
	v.idf = make([]float64, len(words))
	n := float64(len(docs))
	for i, w := range words {
		v.vocab[w] = i
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[w]))) + 1
	}
}

// Transform 将单个文本转为归一化 TF-IDF 稀疏向量。
// 文本中全部词都不在词表内时返回空向量。
func (v *Vectorizer) Transform(doc string) Vector {
	counts := make(map[int]int)
	for _, tok := range tokenize(doc) {
		if idx, ok := v.vocab[tok]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	vec := make(Vector, 0, len(counts))
	var norm float64
	for idx, cnt := range counts {
		w := float64(cnt) * v.idf[idx]
		vec = append(vec, term{index: idx, weight: w})
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return nil
	}
	for i := range vec {
		vec[i].weight /= norm
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].index < vec[j].index })
	return vec
}

// Cosine 计算两个归一化稀疏向量的余弦相似度（即点积），值域 [0,1]。
func Cosine(a, b Vector) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].index == b[j].index:
			dot += a[i].weight * b[j].weight
			i++
			j++
		case a[i].index < b[j].index:
			i++
		default:
			j++
		}
	}
	if dot > 1 {
		dot = 1 // 浮点误差截断
	}
	return dot
}
