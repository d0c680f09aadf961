package core

import (
	"time"

	"github.com/rushteam/cosrec/similarity"
	"github.com/rushteam/cosrec/simgraph"
)

// Snapshot 是推荐引擎服务所依赖的不可变数据束：
// 用户画像 + 产品特征 + 相似度矩阵 + 相似度图，四者一次性构建、整体原子切换。
//
// 不变式：
//   - 构建完成后只读，任意数量的读者可并发访问
//   - 打分阶段不访问图数据库，所有图查询只发生在构建期
//   - 进行中的请求继续使用其起始时的 Snapshot，不受后续刷新影响
type Snapshot struct {
	Version int64
	BuiltAt time.Time

	Profiles map[string]*UserProfile
	Features map[string]*ProductFeatures

	// ProductIDs 是 Features 的键按字典序排列，用于确定性遍历。
	ProductIDs []string

	Matrix *similarity.Matrix
	Graph  *simgraph.Graph
}

// Profile 返回用户画像；未知用户返回 nil（不是错误）。
func (s *Snapshot) Profile(userID string) *UserProfile {
	if s == nil || s.Profiles == nil {
		return nil
	}
	return s.Profiles[userID]
}

// Feature 返回产品特征；未知产品返回 nil。
func (s *Snapshot) Feature(productID string) *ProductFeatures {
	if s == nil || s.Features == nil {
		return nil
	}
	return s.Features[productID]
}
