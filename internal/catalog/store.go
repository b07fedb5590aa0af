// Package catalog holds the product/category catalog: loaded once at
// startup, served to every screen, and mutated only through the admin
// surface with optimistic local writes mirrored to the backend.
package catalog

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"maktaba/internal/domain"
	applog "maktaba/internal/log"
)

// Backend is the durable side of the catalog: the hosted store, the local
// sqlite mirror, or nothing (pure in-memory fallback).
type Backend interface {
	Load(ctx context.Context) ([]domain.Product, []domain.Category, error)
	SaveProduct(ctx context.Context, p domain.Product, isNew bool) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	SaveCategory(ctx context.Context, c domain.Category, isNew bool) (domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// Provisional id prefixes. The admin forms mint ids with these prefixes for
// new items; a save whose id carries the prefix is an insert and adopts the
// backend-assigned id from the write.
const (
	NewProductPrefix  = "prod-"
	NewCategoryPrefix = "cat-"
)

func NewProductID() string {
	return fmt.Sprintf("%s%d-%06d", NewProductPrefix, time.Now().UnixMilli(), rand.Intn(1_000_000))
}

func NewCategoryID() string {
	return fmt.Sprintf("%s%d-%06d", NewCategoryPrefix, time.Now().UnixMilli(), rand.Intn(1_000_000))
}

type Store struct {
	mu         sync.RWMutex
	products   []domain.Product
	categories []domain.Category
	backend    Backend // nil means fallback dataset only
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Load fetches the catalog once. Any backend error substitutes the bundled
// dataset; the store is always usable afterwards.
func (s *Store) Load(ctx context.Context) {
	if s.backend == nil {
		applog.Info(nil, "catalog.load.fallback", map[string]any{"reason": "no backend configured"})
		s.replace(domain.FallbackProducts(), domain.FallbackCategories())
		return
	}
	products, categories, err := s.backend.Load(ctx)
	if err != nil {
		applog.Error(nil, "catalog.load.fail", err, nil)
		s.replace(domain.FallbackProducts(), domain.FallbackCategories())
		return
	}
	applog.Info(nil, "catalog.load", map[string]any{"products": len(products), "categories": len(categories)})
	s.replace(products, categories)
}

func (s *Store) replace(products []domain.Product, categories []domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.categories = categories
}

// Products returns a copy; callers never see later mutations.
func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *Store) ProductByID(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (s *Store) CategoryByID(id string) (domain.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Category{}, false
}

func (s *Store) ProductsByCategory(catID string) []domain.Product {
	return s.ProductsBySubcategory(catID, "")
}

// ProductsBySubcategory narrows a category listing to one subcategory.
// An empty sub returns the whole category.
func (s *Store) ProductsBySubcategory(catID, sub string) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, p := range s.products {
		if p.Category == catID && (sub == "" || p.Subcategory == sub) {
			out = append(out, p)
		}
	}
	return out
}

// Featured returns the newest products; the list is already recency ordered.
func (s *Store) Featured(n int) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n > len(s.products) {
		n = len(s.products)
	}
	out := make([]domain.Product, n)
	copy(out, s.products[:n])
	return out
}

// Related returns other products of the same category, in source order.
func (s *Store) Related(p domain.Product, n int) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, q := range s.products {
		if q.Category == p.Category && q.ID != p.ID {
			out = append(out, q)
			if len(out) == n {
				break
			}
		}
	}
	return out
}

// Suggest is the typeahead match: at least two characters, case-insensitive
// substring over name and author, capped, source-array order.
func (s *Store) Suggest(query string, max int) []domain.Product {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < 2 {
		return nil
	}
	q := strings.ToLower(query)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Author), q) {
			out = append(out, p)
			if len(out) == max {
				break
			}
		}
	}
	return out
}

// Search matches name, author, or description.
func (s *Store) Search(query string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Author), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}

// SaveProduct applies the edit locally first, then mirrors it. A failed
// mirror write is logged and the optimistic state stands; a successful
// insert adopts the backend-assigned id.
func (s *Store) SaveProduct(ctx context.Context, p domain.Product) domain.Product {
	isNew := strings.HasPrefix(p.ID, NewProductPrefix)
	s.applyProduct(p)
	if s.backend == nil {
		return p
	}
	saved, err := s.backend.SaveProduct(ctx, p, isNew)
	if err != nil {
		applog.Error(nil, "catalog.product.save.fail", err, map[string]any{"id": p.ID})
		return p
	}
	if isNew && saved.ID != p.ID {
		s.renameProduct(p.ID, saved)
		return saved
	}
	return p
}

func (s *Store) applyProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = p
			return
		}
	}
	// New items appear first, keeping the recency order.
	s.products = append([]domain.Product{p}, s.products...)
}

func (s *Store) renameProduct(provisionalID string, saved domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == provisionalID {
			s.products[i] = saved
			return
		}
	}
}

func (s *Store) DeleteProduct(ctx context.Context, id string) {
	s.mu.Lock()
	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	s.mu.Unlock()

	if s.backend == nil {
		return
	}
	if err := s.backend.DeleteProduct(ctx, id); err != nil {
		applog.Error(nil, "catalog.product.delete.fail", err, map[string]any{"id": id})
	}
}

func (s *Store) SaveCategory(ctx context.Context, c domain.Category) domain.Category {
	isNew := strings.HasPrefix(c.ID, NewCategoryPrefix)
	s.applyCategory(c)
	if s.backend == nil {
		return c
	}
	saved, err := s.backend.SaveCategory(ctx, c, isNew)
	if err != nil {
		applog.Error(nil, "catalog.category.save.fail", err, map[string]any{"id": c.ID})
		return c
	}
	if isNew && saved.ID != c.ID {
		s.renameCategory(c.ID, saved)
		return saved
	}
	return c
}

func (s *Store) applyCategory(c domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID == c.ID {
			s.categories[i] = c
			return
		}
	}
	s.categories = append(s.categories, c)
}

func (s *Store) renameCategory(provisionalID string, saved domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID == provisionalID {
			s.categories[i] = saved
			return
		}
	}
}

func (s *Store) DeleteCategory(ctx context.Context, id string) {
	s.mu.Lock()
	kept := s.categories[:0]
	for _, c := range s.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.categories = kept
	s.mu.Unlock()

	if s.backend == nil {
		return
	}
	if err := s.backend.DeleteCategory(ctx, id); err != nil {
		applog.Error(nil, "catalog.category.delete.fail", err, map[string]any{"id": id})
	}
}

// Availability derives the stock badge shown on product pages.
type Availability struct {
	Status string `json:"status"`
	Qty    int    `json:"qty,omitempty"`
}

func CheckAvailability(p domain.Product) Availability {
	switch {
	case p.Stock >= 5:
		return Availability{Status: domain.StatusAvailable, Qty: p.Stock}
	case p.Stock > 0:
		return Availability{Status: "كمية محدودة", Qty: p.Stock}
	default:
		return Availability{Status: domain.StatusUnavailable}
	}
}
