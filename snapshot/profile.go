package snapshot

import (
	"sort"

	"github.com/rushteam/cosrec/core"
	"github.com/rushteam/cosrec/graph"
)

// topPreferred 是偏好类别/品牌保留的个数。
const topPreferred = 3

// buildProfiles 从用户记录构建用户画像。
//
// 偏好提取：
//   - 按类别/品牌统计购买次数，频次降序、同频按名称升序，取 Top3
//   - 价格区间 = [均价*0.7, 均价*1.3]，仅当至少一件已购产品带价格
//   - 零购买用户保留空偏好，内容策略仍可凭声明的肌肤问题打分
func buildProfiles(users []graph.UserRecord) map[string]*core.UserProfile {
	profiles := make(map[string]*core.UserProfile, len(users))
	for _, u := range users {
		p := core.NewUserProfile(u.ID)
		p.Preferences.SkinConcerns = u.SkinConcerns
		p.AllergicIngredients = u.AllergicIngredients

		categoryCounts := make(map[string]int)
		brandCounts := make(map[string]int)
		var prices []float64
		for _, purchase := range u.Purchases {
			p.AddPurchase(purchase.ProductID)
			if purchase.Category != "" {
				categoryCounts[purchase.Category]++
			}
			if purchase.Brand != "" {
				brandCounts[purchase.Brand]++
			}
			if purchase.Price != nil {
				prices = append(prices, *purchase.Price)
			}
		}

		p.Preferences.PreferredCategories = topByCount(categoryCounts, topPreferred)
		p.Preferences.PreferredBrands = topByCount(brandCounts, topPreferred)
		if len(prices) > 0 {
			var sum float64
			for _, price := range prices {
				sum += price
			}
			avg := sum / float64(len(prices))
			p.Preferences.PriceRange = &core.PriceRange{Min: avg * 0.7, Max: avg * 1.3}
		}

		profiles[u.ID] = p
	}
	return profiles
}

// topByCount 按计数降序取前 k 个 key，同计数按 key 升序保证确定性。
func topByCount(counts map[string]int, k int) []string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > k {
		keys = keys[:k]
	}
	return keys
}
