package session

import (
	"sync"

	"maktaba/internal/domain"
)

// MaxCompareItems bounds the side-by-side comparison set.
const MaxCompareItems = 4

// Compare holds the products picked for comparison. The cap is enforced
// silently: a rejected add is simply ignored, never an error.
type Compare struct {
	mu    sync.Mutex
	items []domain.Product
}

func (s *Compare) Add(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) >= MaxCompareItems {
		return
	}
	for _, it := range s.items {
		if it.ID == p.ID {
			return
		}
	}
	s.items = append(s.items, p)
}

func (s *Compare) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ID != productID {
			kept = append(kept, it)
		}
	}
	s.items = kept
}

func (s *Compare) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

func (s *Compare) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == productID {
			return true
		}
	}
	return false
}

func (s *Compare) IsFull() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) >= MaxCompareItems
}

func (s *Compare) Items() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, len(s.items))
	copy(out, s.items)
	return out
}
