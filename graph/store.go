// Package graph 定义知识图谱的查询接口（领域接口，基础设施在 ext/graph 实现）。
//
// 设计原则：
//   - 定义在领域侧，由 Neo4j 等后端实现，遵循依赖倒置
//   - 快照构建是唯一的消费方：打分阶段不允许访问图谱
//   - 实体缺失关系时返回空集合，永远不返回 nil 语义的"缺失"错误
package graph

import "context"

// PurchasedProduct 是购买关系中随产品附带的属性。
type PurchasedProduct struct {
	ProductID string
	Category  string
	Brand     string
	// Price 缺失或非法时为 nil。
	Price *float64
}

// UserRecord 是图谱中的用户节点及其购买关系。
type UserRecord struct {
	ID                  string
	SkinType            string
	SkinConcerns        []string
	AllergicIngredients []string
	Purchases           []PurchasedProduct
}

// ProductRecord 是图谱中的产品节点及其成分/功效/品牌关系。
type ProductRecord struct {
	ID          string
	Name        string
	Description string
	Category    string
	BrandName   string
	Price       *float64
	Rating      *float64
	ReviewCount int

	Ingredients       []string
	Effects           []string
	SuitableSkinTypes []string
}

// Store 是知识图谱查询接口。
type Store interface {
	// ListUsers 返回全部用户及其已购产品（产品的类别/品牌/价格已附带）。
	ListUsers(ctx context.Context) ([]UserRecord, error)

	// ListProducts 返回全部产品及其成分名、功效名、品牌名。
	ListProducts(ctx context.Context) ([]ProductRecord, error)

	// ProductsBySkinType 返回适合指定肤质的产品，按评分、评论数降序。
	ProductsBySkinType(ctx context.Context, skinType string, limit int) ([]ProductRecord, error)
}
