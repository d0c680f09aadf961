package core

import (
	"testing"

	"github.com/rushteam/cosrec/pkg/utils"
)

func TestCandidate_AppendReason(t *testing.T) {
	c := NewCandidate("p1")

	c.AppendReason("")
	if c.Reason != "" {
		t.Errorf("reason = %q, want empty", c.Reason)
	}

	c.AppendReason("协同过滤")
	if c.Reason != "协同过滤" {
		t.Errorf("reason = %q", c.Reason)
	}

	c.AppendReason("内容匹配")
	if c.Reason != "协同过滤; 内容匹配" {
		t.Errorf("reason = %q, want joined with '; '", c.Reason)
	}
}

func TestCandidate_PutLabelMerges(t *testing.T) {
	c := NewCandidate("p1")
	c.PutLabel("strategy", utils.Label{Value: "collaborative", Source: "recall"})
	c.PutLabel("strategy", utils.Label{Value: "content", Source: "recall"})

	got := c.Labels["strategy"]
	if got.Value != "collaborative|content" {
		t.Errorf("merged value = %q", got.Value)
	}
	if got.Source != "recall,recall" {
		t.Errorf("merged source = %q", got.Source)
	}
}
