package graph

import (
	"context"
	"testing"
)

func fp(v float64) *float64 { return &v }

func TestMemoryStore_ProductsBySkinType(t *testing.T) {
	ms := NewMemoryStore()
	ms.SetProducts([]ProductRecord{
		{ID: "p1", SuitableSkinTypes: []string{"干性"}, Rating: fp(4.0), ReviewCount: 10},
		{ID: "p2", SuitableSkinTypes: []string{"干性"}, Rating: fp(4.5), ReviewCount: 5},
		{ID: "p3", SuitableSkinTypes: []string{"油性"}, Rating: fp(5.0)},
		{ID: "p4", SuitableSkinTypes: []string{"干性"}, Rating: fp(4.0), ReviewCount: 20},
	})

	got, err := ms.ProductsBySkinType(context.Background(), "干性", 10)
	if err != nil {
		t.Fatalf("ProductsBySkinType() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("products = %d, want 3", len(got))
	}
	// 评分降序，同分按评论数降序：p2(4.5) > p4(4.0/20) > p1(4.0/10)
	if got[0].ID != "p2" || got[1].ID != "p4" || got[2].ID != "p1" {
		t.Errorf("order = [%s %s %s], want [p2 p4 p1]", got[0].ID, got[1].ID, got[2].ID)
	}

	got, err = ms.ProductsBySkinType(context.Background(), "干性", 2)
	if err != nil {
		t.Fatalf("ProductsBySkinType() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("limit not applied, products = %d", len(got))
	}

	got, err = ms.ProductsBySkinType(context.Background(), "中性", 10)
	if err != nil {
		t.Fatalf("ProductsBySkinType() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("unknown skin type products = %v, want empty", got)
	}
}

func TestMemoryStore_ListCopiesData(t *testing.T) {
	ms := NewMemoryStore()
	ms.SetUsers([]UserRecord{{ID: "u1"}})

	users, err := ms.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	users[0].ID = "mutated"

	again, _ := ms.ListUsers(context.Background())
	if again[0].ID != "u1" {
		t.Error("ListUsers should return a copy")
	}
}
