package similarity

import (
	"context"
	"math"
	"testing"
)

func buildTestMatrix(t *testing.T) *Matrix {
	t.Helper()
	ids := []string{"p1", "p2", "p3"}
	texts := []string{
		"保湿 精华 玻尿酸",
		"保湿 精华 玻尿酸",
		"哑光 口红 持久",
	}
	m, err := BuildMatrix(context.Background(), ids, texts, 0)
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}
	return m
}

func TestBuildMatrix_TooFewProducts(t *testing.T) {
	m, err := BuildMatrix(context.Background(), []string{"p1"}, []string{"foo"}, 0)
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("matrix len = %d, want 0", m.Len())
	}
}

func TestBuildMatrix_SymmetryAndRange(t *testing.T) {
	m := buildTestMatrix(t)

	ids := m.IDs()
	for _, a := range ids {
		for _, b := range ids {
			if a == b {
				continue
			}
			ab, ok := m.Sim(a, b)
			if !ok {
				t.Fatalf("Sim(%s, %s) not found", a, b)
			}
			ba, _ := m.Sim(b, a)
			if ab != ba {
				t.Errorf("Sim(%s,%s)=%v != Sim(%s,%s)=%v", a, b, ab, b, a, ba)
			}
			if ab < 0 || ab > 1 {
				t.Errorf("Sim(%s,%s)=%v out of [0,1]", a, b, ab)
			}
		}
	}

	if sim, ok := m.Sim("p1", "p2"); !ok || math.Abs(sim-1.0) > 1e-9 {
		t.Errorf("Sim(p1,p2) = %v, %v; want ~1.0, true", sim, ok)
	}
	if sim, _ := m.Sim("p1", "p3"); sim != 0 {
		t.Errorf("Sim(p1,p3) = %v, want 0", sim)
	}
}

func TestMatrix_SimUndefinedCases(t *testing.T) {
	m := buildTestMatrix(t)

	if _, ok := m.Sim("p1", "p1"); ok {
		t.Error("Sim(p1,p1) should be undefined")
	}
	if _, ok := m.Sim("p1", "unknown"); ok {
		t.Error("Sim with unknown product should be undefined")
	}
}

func TestMatrix_Neighbors(t *testing.T) {
	m := buildTestMatrix(t)

	got := m.Neighbors("p1", 2)
	if len(got) != 2 {
		t.Fatalf("Neighbors() len = %d, want 2", len(got))
	}
	if got[0].ProductID != "p2" {
		t.Errorf("top neighbor = %s, want p2", got[0].ProductID)
	}
	if got[1].ProductID != "p3" {
		t.Errorf("second neighbor = %s, want p3", got[1].ProductID)
	}
	if got[0].Sim < got[1].Sim {
		t.Errorf("neighbors not sorted by sim desc: %v", got)
	}

	if got := m.Neighbors("unknown", 2); len(got) != 0 {
		t.Errorf("Neighbors(unknown) = %v, want empty", got)
	}
	if got := m.Neighbors("p1", 1); len(got) != 1 {
		t.Errorf("limit not applied, len = %d", len(got))
	}
}
