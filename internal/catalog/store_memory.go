package catalog

import (
	"context"
	"strings"
	"sync"
)

// MemStore keeps products in an insertion-ordered slice. Deleting an
// element closes the gap without reordering the rest.
type MemStore struct {
	mu       sync.RWMutex
	products []Product
}

func NewMemStore() *MemStore {
	return &MemStore{products: make([]Product, 0, 16)}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context, category string) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *MemStore) Get(ctx context.Context, id string) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Product{}, false, nil
	}
	return s.products[i], true, nil
}

func (s *MemStore) SearchName(ctx context.Context, query string) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemStore) CountByCategory(ctx context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int, 8)
	for _, p := range s.products {
		counts[p.Category]++
	}
	return counts, nil
}

func (s *MemStore) Create(ctx context.Context, p Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = append(s.products, p)
	return nil
}

func (s *MemStore) Update(ctx context.Context, id string, patch Patch) (Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Product{}, false, nil
	}

	p := s.products[i]
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.InStock != nil {
		p.InStock = *patch.InStock
	}

	s.products[i] = p
	return p, true, nil
}

func (s *MemStore) Delete(ctx context.Context, id string) (Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Product{}, false, nil
	}

	p := s.products[i]
	s.products = append(s.products[:i], s.products[i+1:]...)
	return p, true, nil
}

// indexOf is called with s.mu held.
func (s *MemStore) indexOf(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}
