package dsl

import (
	"testing"

	"github.com/rushteam/cosrec/core"
	"github.com/rushteam/cosrec/pkg/utils"
)

func testCandidate() *core.Candidate {
	c := core.NewCandidate("p1")
	c.Score = 0.8
	c.Confidence = 0.6
	c.Meta["price"] = 299.0
	c.Meta["category"] = "skincare"
	c.PutLabel("strategy", utils.Label{Value: "graph", Source: "recall"})
	return c
}

func TestEval_Evaluate(t *testing.T) {
	rctx := &core.RecommendContext{UserID: "u1", Limit: 10}

	tests := []struct {
		name    string
		expr    string
		want    bool
		wantErr bool
	}{
		{"empty expr is true", "", true, false},
		{"score compare", `item.score > 0.7`, true, false},
		{"score compare false", `item.score > 0.9`, false, false},
		{"meta access", `item.meta.category == "skincare"`, true, false},
		{"meta number", `item.meta.price < 300.0`, true, false},
		{"label shortcut", `label.strategy == "graph"`, true, false},
		{"label full form", `item.labels.strategy.value == "graph"`, true, false},
		{"rctx access", `rctx.user_id == "u1"`, true, false},
		{"logic and", `item.score > 0.5 && item.meta.price < 500.0`, true, false},
		{"compile error", `item.score >`, false, true},
		{"non-boolean result", `item.score`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewEval(testCandidate(), rctx).Evaluate(tt.expr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Evaluate(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}
