package core

import "strings"

// ProductFeatures 是单个产品的特征汇总，从知识图谱提取，构建后不可变。
// FeatureText 仅作为相似度引擎的输入，不对外展示。
type ProductFeatures struct {
	ProductID   string
	Name        string
	Description string
	Category    string
	BrandName   string

	// Price / Rating 缺失时为 nil（图谱中未登记或原始数据非法）。
	Price  *float64
	Rating *float64

	Ingredients       []string
	Effects           []string
	SuitableSkinTypes []string

	FeatureText string
}

// BuildFeatureText 按固定顺序拼接特征文本：
// 名称 + 描述 + 成分 + 功效 + 品牌，以单个空格连接；缺失字段贡献空串。
func (f *ProductFeatures) BuildFeatureText() {
	parts := []string{
		f.Name,
		f.Description,
		strings.Join(f.Ingredients, " "),
		strings.Join(f.Effects, " "),
		f.BrandName,
	}
	f.FeatureText = strings.Join(parts, " ")
}
