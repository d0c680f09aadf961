package core

import "time"

// PriceRange 是用户的价格偏好区间，由购买历史均价推导（[avg*0.7, avg*1.3]）。
type PriceRange struct {
	Min float64
	Max float64
}

// Contains 判断价格是否落在偏好区间内（闭区间）。
func (r *PriceRange) Contains(price float64) bool {
	if r == nil {
		return false
	}
	return price >= r.Min && price <= r.Max
}

// Preferences 是从购买历史提炼的用户偏好。
//
// 维度          来源
// 偏好类别      购买历史按类别计数，取 Top3
// 偏好品牌      购买历史按品牌计数，取 Top3
// 价格区间      购买均价 ±30%（无带价购买时为 nil）
// 肌肤问题      用户声明属性，与购买历史无关
type Preferences struct {
	PreferredCategories []string
	PreferredBrands     []string
	PriceRange          *PriceRange
	SkinConcerns        []string
}

// UserProfile 是用户画像：购买历史 + 偏好。
// 随快照整体重建，构建完成后只读，不做增量更新。
type UserProfile struct {
	UserID string

	// Purchased 是已购产品 ID 集合；PurchasedList 保留原始顺序，便于确定性遍历。
	Purchased     map[string]struct{}
	PurchasedList []string

	Preferences Preferences

	// AllergicIngredients 是用户声明的过敏成分，供过滤器使用。
	AllergicIngredients []string

	BuiltAt time.Time
}

func NewUserProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:    userID,
		Purchased: make(map[string]struct{}),
		BuiltAt:   time.Now(),
	}
}

// HasPurchased 判断用户是否购买过某产品。
func (p *UserProfile) HasPurchased(productID string) bool {
	if p == nil || p.Purchased == nil {
		return false
	}
	_, ok := p.Purchased[productID]
	return ok
}

// AddPurchase 记录一次购买（重复购买只记一次）。
func (p *UserProfile) AddPurchase(productID string) {
	if p.Purchased == nil {
		p.Purchased = make(map[string]struct{})
	}
	if _, ok := p.Purchased[productID]; ok {
		return
	}
	p.Purchased[productID] = struct{}{}
	p.PurchasedList = append(p.PurchasedList, productID)
}
