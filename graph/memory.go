package graph

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore 是内存实现的 Store，用于测试/开发/原型。
type MemoryStore struct {
	mu       sync.RWMutex
	users    []UserRecord
	products []ProductRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SetUsers 整体替换用户数据。
func (m *MemoryStore) SetUsers(users []UserRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = users
}

// SetProducts 整体替换产品数据。
func (m *MemoryStore) SetProducts(products []ProductRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = products
}

func (m *MemoryStore) ListUsers(_ context.Context) ([]UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]UserRecord, len(m.users))
	copy(out, m.users)
	return out, nil
}

func (m *MemoryStore) ListProducts(_ context.Context) ([]ProductRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ProductRecord, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *MemoryStore) ProductsBySkinType(_ context.Context, skinType string, limit int) ([]ProductRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ProductRecord, 0)
	for _, p := range m.products {
		for _, st := range p.SuitableSkinTypes {
			if st == skinType {
				out = append(out, p)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := 0.0, 0.0
		if out[i].Rating != nil {
			ri = *out[i].Rating
		}
		if out[j].Rating != nil {
			rj = *out[j].Rating
		}
		if ri != rj {
			return ri > rj
		}
		if out[i].ReviewCount != out[j].ReviewCount {
			return out[i].ReviewCount > out[j].ReviewCount
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
