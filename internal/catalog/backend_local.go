package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"maktaba/internal/domain"
	"maktaba/internal/repos"
)

// LocalBackend mirrors the catalog into the sqlite store, giving admin
// edits durability without a hosted backend.
type LocalBackend struct {
	Products   *repos.ProductRepo
	Categories *repos.CategoryRepo
}

func (b *LocalBackend) Load(_ context.Context) ([]domain.Product, []domain.Category, error) {
	products, err := b.Products.List()
	if err != nil {
		return nil, nil, err
	}
	categories, err := b.Categories.List()
	if err != nil {
		return nil, nil, err
	}
	return products, categories, nil
}

func (b *LocalBackend) SaveProduct(_ context.Context, p domain.Product, isNew bool) (domain.Product, error) {
	if isNew {
		// Assign the durable id here, the way the hosted store would.
		p.ID = uuid.NewString()
	}
	return p, b.Products.Upsert(p)
}

func (b *LocalBackend) DeleteProduct(_ context.Context, id string) error {
	return b.Products.Delete(id)
}

func (b *LocalBackend) SaveCategory(_ context.Context, c domain.Category, isNew bool) (domain.Category, error) {
	if isNew {
		c.ID = slugOrUUID(c.Name)
	}
	return c, b.Categories.Upsert(c)
}

func (b *LocalBackend) DeleteCategory(_ context.Context, id string) error {
	return b.Categories.Delete(id)
}

func slugOrUUID(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	if ok := slug != "" && len(slug) <= 40; ok {
		for _, r := range slug {
			if r != '-' && !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') {
				ok = false
				break
			}
		}
		if ok {
			return slug
		}
	}
	return uuid.NewString()
}
