package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/cosrec/core"
)

type stubNode struct {
	name string
	kind Kind
	fn   func(cands []*core.Candidate) ([]*core.Candidate, error)
}

func (n *stubNode) Name() string { return n.name }
func (n *stubNode) Kind() Kind   { return n.kind }

func (n *stubNode) Process(_ context.Context, _ *core.RecommendContext, cands []*core.Candidate) ([]*core.Candidate, error) {
	return n.fn(cands)
}

func TestPipeline_Run(t *testing.T) {
	p := &Pipeline{Nodes: []Node{
		&stubNode{name: "gen", kind: KindRecall, fn: func([]*core.Candidate) ([]*core.Candidate, error) {
			return []*core.Candidate{core.NewCandidate("p1"), core.NewCandidate("p2")}, nil
		}},
		&stubNode{name: "cut", kind: KindReRank, fn: func(cands []*core.Candidate) ([]*core.Candidate, error) {
			return cands[:1], nil
		}},
	}}

	got, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(got) != 1 || got[0].ProductID != "p1" {
		t.Errorf("result = %v, want [p1]", got)
	}
}

func TestPipeline_RunStopsOnError(t *testing.T) {
	nodeErr := errors.New("node failed")
	reached := false
	p := &Pipeline{Nodes: []Node{
		&stubNode{name: "bad", kind: KindRecall, fn: func([]*core.Candidate) ([]*core.Candidate, error) {
			return nil, nodeErr
		}},
		&stubNode{name: "after", kind: KindFilter, fn: func(cands []*core.Candidate) ([]*core.Candidate, error) {
			reached = true
			return cands, nil
		}},
	}}

	if _, err := p.Run(context.Background(), &core.RecommendContext{}, nil); !errors.Is(err, nodeErr) {
		t.Errorf("Run() error = %v, want node error", err)
	}
	if reached {
		t.Error("pipeline should stop at failing node")
	}
}

func TestNodeFactory(t *testing.T) {
	f := NewNodeFactory()
	f.Register("stub", func(cfg map[string]any) (Node, error) {
		return &stubNode{name: "stub", kind: KindRecall, fn: func(cands []*core.Candidate) ([]*core.Candidate, error) {
			return cands, nil
		}}, nil
	})

	node, err := f.Build("stub", nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if node.Name() != "stub" {
		t.Errorf("node name = %q", node.Name())
	}

	if _, err := f.Build("unknown", nil); err == nil {
		t.Error("unknown type should fail")
	}
}
