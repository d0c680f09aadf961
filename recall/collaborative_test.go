package recall

import (
	"context"
	"math"
	"testing"

	"github.com/rushteam/cosrec/core"
)

func profileWithPurchases(userID string, productIDs ...string) *core.UserProfile {
	p := core.NewUserProfile(userID)
	for _, id := range productIDs {
		p.AddPurchase(id)
	}
	return p
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want float64
	}{
		{"identical", []string{"p1", "p2"}, []string{"p1", "p2"}, 1.0},
		{"disjoint", []string{"p1"}, []string{"p2"}, 0.0},
		{"partial overlap", []string{"p1", "p2"}, []string{"p2", "p3"}, 1.0 / 3.0},
		{"both empty", nil, nil, 0.0},
		{"one empty", []string{"p1"}, nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := profileWithPurchases("a", tt.a...)
			b := profileWithPurchases("b", tt.b...)
			if got := jaccard(a.Purchased, b.Purchased); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("jaccard() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCollaborative_Recall(t *testing.T) {
	u1 := profileWithPurchases("u1", "p1", "p2")
	u2 := profileWithPurchases("u2", "p1", "p2", "p3") // jaccard 2/3
	u3 := profileWithPurchases("u3", "p9")             // jaccard 0，不参与

	snap := &core.Snapshot{
		Profiles: map[string]*core.UserProfile{"u1": u1, "u2": u2, "u3": u3},
	}
	rctx := &core.RecommendContext{UserID: "u1", User: u1, Snapshot: snap, Limit: 10}

	r := &Collaborative{}
	got, err := r.Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("candidates = %d, want 1", len(got))
	}
	c := got[0]
	if c.ProductID != "p3" {
		t.Errorf("product = %s, want p3", c.ProductID)
	}
	if math.Abs(c.Score-2.0/3.0) > 1e-9 {
		t.Errorf("score = %v, want 2/3", c.Score)
	}
	if c.Reason != ReasonCollaborative {
		t.Errorf("reason = %q", c.Reason)
	}
	if lbl, ok := c.Labels[LabelStrategy]; !ok || lbl.Value != StrategyCollaborative {
		t.Errorf("strategy label = %v", c.Labels[LabelStrategy])
	}
}

func TestCollaborative_ExcludesPurchased(t *testing.T) {
	u1 := profileWithPurchases("u1", "p1", "p2")
	u2 := profileWithPurchases("u2", "p1", "p2")

	snap := &core.Snapshot{
		Profiles: map[string]*core.UserProfile{"u1": u1, "u2": u2},
	}
	rctx := &core.RecommendContext{UserID: "u1", User: u1, Snapshot: snap, Limit: 10}

	got, err := (&Collaborative{}).Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	// u2 与 u1 购买完全重合，没有可推荐的新产品
	if len(got) != 0 {
		t.Errorf("candidates = %v, want empty", got)
	}
}

func TestCollaborative_SimilarityThreshold(t *testing.T) {
	u1 := profileWithPurchases("u1", "p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8", "p9", "p10")
	// 交集 1 / 并集 11 ≈ 0.09 < 0.1，不视为相似用户
	u2 := profileWithPurchases("u2", "p1", "p99")

	snap := &core.Snapshot{
		Profiles: map[string]*core.UserProfile{"u1": u1, "u2": u2},
	}
	rctx := &core.RecommendContext{UserID: "u1", User: u1, Snapshot: snap, Limit: 10}

	got, err := (&Collaborative{}).Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("candidates = %v, want empty below similarity threshold", got)
	}
}

func TestCollaborative_ColdStart(t *testing.T) {
	u1 := core.NewUserProfile("u1")
	snap := &core.Snapshot{Profiles: map[string]*core.UserProfile{"u1": u1}}
	rctx := &core.RecommendContext{UserID: "u1", User: u1, Snapshot: snap, Limit: 10}

	got, err := (&Collaborative{}).Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("cold-start user should get empty result, got %v", got)
	}
}

func TestCollaborative_ConfidenceClamped(t *testing.T) {
	u1 := profileWithPurchases("u1", "p1", "p2", "p3")
	// 两个相似度 0.75 的用户都买过 p4：票数 0.75+0.75=1.5，置信度截断到 1
	u2 := profileWithPurchases("u2", "p1", "p2", "p3", "p4")
	u3 := profileWithPurchases("u3", "p1", "p2", "p3", "p4")

	snap := &core.Snapshot{
		Profiles: map[string]*core.UserProfile{"u1": u1, "u2": u2, "u3": u3},
	}
	rctx := &core.RecommendContext{UserID: "u1", User: u1, Snapshot: snap, Limit: 10}

	got, err := (&Collaborative{}).Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("candidates = %d, want 1", len(got))
	}
	if got[0].Score <= 1 {
		t.Errorf("score = %v, want > 1 (raw vote sum)", got[0].Score)
	}
	if got[0].Confidence != 1 {
		t.Errorf("confidence = %v, want clamped to 1", got[0].Confidence)
	}
}
