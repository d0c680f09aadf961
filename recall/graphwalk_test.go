package recall

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/rushteam/cosrec/core"
	"github.com/rushteam/cosrec/similarity"
	"github.com/rushteam/cosrec/simgraph"
)

// walkSnapshot 构建带相似度图的快照：p1-p2 成边，p3 孤立。
func walkSnapshot(t *testing.T) *core.Snapshot {
	t.Helper()
	ids := []string{"p1", "p2", "p3"}
	texts := []string{
		"保湿 精华 玻尿酸",
		"保湿 精华 玻尿酸",
		"哑光 口红 持久",
	}
	m, err := similarity.BuildMatrix(context.Background(), ids, texts, 0)
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}
	return &core.Snapshot{
		ProductIDs: ids,
		Features:   map[string]*core.ProductFeatures{},
		Matrix:     m,
		Graph:      simgraph.BuildGraph(m, 0),
	}
}

func fixedRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestGraphWalk_Recall(t *testing.T) {
	user := profileWithPurchases("u1", "p1")
	rctx := &core.RecommendContext{UserID: "u1", User: user, Snapshot: walkSnapshot(t), Limit: 10}

	r := &GraphWalk{WalkLength: 1, WalkCount: 1, NewRand: fixedRand}
	got, err := r.Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}

	// p1 唯一邻居是 p2：一步游走必然访问 p2，权重 1 / 已购数 1
	if len(got) != 1 {
		t.Fatalf("candidates = %d, want 1", len(got))
	}
	if got[0].ProductID != "p2" {
		t.Errorf("product = %s, want p2", got[0].ProductID)
	}
	if math.Abs(got[0].Score-1.0) > 1e-9 {
		t.Errorf("score = %v, want 1.0", got[0].Score)
	}
	if got[0].Reason != ReasonGraph {
		t.Errorf("reason = %q", got[0].Reason)
	}
	if lbl := got[0].Labels[LabelStrategy]; lbl.Value != StrategyGraph {
		t.Errorf("strategy label = %v", lbl)
	}
}

func TestGraphWalk_NormalizesByPurchaseCount(t *testing.T) {
	// p3 孤立，不产出访问，但归一化分母仍是已购产品数 2
	user := profileWithPurchases("u1", "p1", "p3")
	rctx := &core.RecommendContext{UserID: "u1", User: user, Snapshot: walkSnapshot(t), Limit: 10}

	r := &GraphWalk{WalkLength: 1, WalkCount: 1, NewRand: fixedRand}
	got, err := r.Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("candidates = %d, want 1", len(got))
	}
	if math.Abs(got[0].Score-0.5) > 1e-9 {
		t.Errorf("score = %v, want 0.5", got[0].Score)
	}
}

func TestGraphWalk_ColdStart(t *testing.T) {
	user := core.NewUserProfile("u1")
	rctx := &core.RecommendContext{UserID: "u1", User: user, Snapshot: walkSnapshot(t), Limit: 10}

	got, err := (&GraphWalk{NewRand: fixedRand}).Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("cold-start user should get empty result, got %v", got)
	}
}

func TestGraphWalk_ExcludesPurchased(t *testing.T) {
	// 两件已购产品互为唯一邻居：游走只会访问已购产品，全部排除
	user := profileWithPurchases("u1", "p1", "p2")
	rctx := &core.RecommendContext{UserID: "u1", User: user, Snapshot: walkSnapshot(t), Limit: 10}

	got, err := (&GraphWalk{WalkLength: 3, WalkCount: 5, NewRand: fixedRand}).Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("candidates = %v, want empty", got)
	}
}

func TestGraphWalk_Reproducible(t *testing.T) {
	user := profileWithPurchases("u1", "p1")
	snap := walkSnapshot(t)

	run := func() []*core.Candidate {
		rctx := &core.RecommendContext{UserID: "u1", User: user, Snapshot: snap, Limit: 10}
		got, err := (&GraphWalk{NewRand: fixedRand}).Recall(context.Background(), rctx)
		if err != nil {
			t.Fatalf("Recall() error = %v", err)
		}
		return got
	}

	first := run()
	second := run()
	if len(first) != len(second) {
		t.Fatalf("runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ProductID != second[i].ProductID || first[i].Score != second[i].Score {
			t.Errorf("run mismatch at %d: %v vs %v", i, first[i], second[i])
		}
	}
}
