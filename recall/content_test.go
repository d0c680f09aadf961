package recall

import (
	"context"
	"math"
	"testing"

	"github.com/rushteam/cosrec/core"
)

func fp(v float64) *float64 { return &v }

func contentSnapshot(features ...*core.ProductFeatures) *core.Snapshot {
	snap := &core.Snapshot{
		Features:   make(map[string]*core.ProductFeatures),
		ProductIDs: make([]string, 0, len(features)),
	}
	for _, f := range features {
		snap.Features[f.ProductID] = f
		snap.ProductIDs = append(snap.ProductIDs, f.ProductID)
	}
	return snap
}

func TestContentScore(t *testing.T) {
	prefs := &core.Preferences{
		PreferredCategories: []string{"面霜"},
		PreferredBrands:     []string{"兰蔻"},
		PriceRange:          &core.PriceRange{Min: 70, Max: 130},
		SkinConcerns:        []string{"干燥"},
	}

	tests := []struct {
		name     string
		features *core.ProductFeatures
		want     float64
	}{
		{
			name: "all four signals hit, clamped to 1",
			features: &core.ProductFeatures{
				ProductID: "p1", Category: "面霜", BrandName: "兰蔻",
				Price: fp(100), Effects: []string{"保湿"},
			},
			want: 1.0,
		},
		{
			name:     "category only",
			features: &core.ProductFeatures{ProductID: "p2", Category: "面霜"},
			want:     0.3,
		},
		{
			name:     "brand and price",
			features: &core.ProductFeatures{ProductID: "p3", BrandName: "兰蔻", Price: fp(80)},
			want:     0.4,
		},
		{
			name:     "effect maps to concern once despite multiple hits",
			features: &core.ProductFeatures{ProductID: "p4", Effects: []string{"保湿", "保湿"}},
			want:     0.3,
		},
		{
			name:     "price outside range",
			features: &core.ProductFeatures{ProductID: "p5", Price: fp(500)},
			want:     0.0,
		},
		{
			name:     "unrelated effect",
			features: &core.ProductFeatures{ProductID: "p6", Effects: []string{"控油"}},
			want:     0.0,
		},
		{
			name:     "nil features",
			features: nil,
			want:     0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := contentScore(tt.features, prefs); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("contentScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContentBased_Recall(t *testing.T) {
	user := core.NewUserProfile("u1")
	user.AddPurchase("owned")
	user.Preferences = core.Preferences{
		PreferredCategories: []string{"面霜"},
		PreferredBrands:     []string{"兰蔻"},
		PriceRange:          &core.PriceRange{Min: 70, Max: 130},
		SkinConcerns:        []string{"干燥"},
	}

	snap := contentSnapshot(
		// 0.3+0.2+0.2 = 0.7，保留
		&core.ProductFeatures{ProductID: "strong", Category: "面霜", BrandName: "兰蔻", Price: fp(100)},
		// 恰好 0.3，阈值剔除
		&core.ProductFeatures{ProductID: "weak", Category: "面霜"},
		// 已购产品不参与
		&core.ProductFeatures{ProductID: "owned", Category: "面霜", BrandName: "兰蔻", Price: fp(100)},
	)
	rctx := &core.RecommendContext{UserID: "u1", User: user, Snapshot: snap, Limit: 10}

	got, err := (&ContentBased{}).Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("candidates = %d, want 1", len(got))
	}
	c := got[0]
	if c.ProductID != "strong" {
		t.Errorf("product = %s, want strong", c.ProductID)
	}
	if math.Abs(c.Score-0.7) > 1e-9 {
		t.Errorf("score = %v, want 0.7", c.Score)
	}
	if math.Abs(c.Confidence-0.7) > 1e-9 {
		t.Errorf("confidence = %v, want 0.7", c.Confidence)
	}
	if c.Reason != ReasonContent {
		t.Errorf("reason = %q", c.Reason)
	}
	if c.Meta["category"] != "面霜" || c.Meta["brand"] != "兰蔻" {
		t.Errorf("meta = %v", c.Meta)
	}
}

func TestContentBased_ColdStartNeedsLowerThreshold(t *testing.T) {
	user := core.NewUserProfile("u1")
	user.Preferences.SkinConcerns = []string{"干燥"}

	snap := contentSnapshot(
		&core.ProductFeatures{ProductID: "p1", Effects: []string{"保湿"}},
	)
	rctx := &core.RecommendContext{UserID: "u1", User: user, Snapshot: snap, Limit: 10}

	// 默认阈值下仅功效命中（0.3）不放行
	got, err := (&ContentBased{}).Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("default threshold should drop 0.3 score, got %v", got)
	}

	// 调低阈值后冷启动用户可产出
	got, err = (&ContentBased{ScoreThreshold: 0.2}).Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(got) != 1 || got[0].ProductID != "p1" {
		t.Errorf("lowered threshold candidates = %v, want [p1]", got)
	}
}

func TestContentBased_OrderingDeterministic(t *testing.T) {
	user := core.NewUserProfile("u1")
	user.Preferences = core.Preferences{
		PreferredCategories: []string{"面霜"},
		PreferredBrands:     []string{"兰蔻"},
	}

	// 两个产品同分 0.5，按 ID 升序决出顺序
	snap := contentSnapshot(
		&core.ProductFeatures{ProductID: "pb", Category: "面霜", BrandName: "兰蔻"},
		&core.ProductFeatures{ProductID: "pa", Category: "面霜", BrandName: "兰蔻"},
	)
	rctx := &core.RecommendContext{UserID: "u1", User: user, Snapshot: snap, Limit: 10}

	got, err := (&ContentBased{}).Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(got) != 2 || got[0].ProductID != "pa" || got[1].ProductID != "pb" {
		t.Errorf("order = %v, want [pa pb]", got)
	}
}
