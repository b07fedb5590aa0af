package catalog

import (
	"context"

	"maktaba/internal/domain"
	"maktaba/internal/remote"
)

// RemoteBackend serves the catalog from the hosted store's rest collections.
type RemoteBackend struct {
	Client *remote.Client
}

func (b *RemoteBackend) Load(ctx context.Context) ([]domain.Product, []domain.Category, error) {
	products, err := b.Client.Products(ctx)
	if err != nil {
		return nil, nil, err
	}
	categories, err := b.Client.Categories(ctx)
	if err != nil {
		return nil, nil, err
	}
	return products, categories, nil
}

func (b *RemoteBackend) SaveProduct(ctx context.Context, p domain.Product, isNew bool) (domain.Product, error) {
	if isNew {
		return b.Client.InsertProduct(ctx, p)
	}
	return b.Client.UpdateProduct(ctx, p)
}

func (b *RemoteBackend) DeleteProduct(ctx context.Context, id string) error {
	return b.Client.DeleteProduct(ctx, id)
}

func (b *RemoteBackend) SaveCategory(ctx context.Context, c domain.Category, isNew bool) (domain.Category, error) {
	if isNew {
		return b.Client.InsertCategory(ctx, c)
	}
	return b.Client.UpdateCategory(ctx, c)
}

func (b *RemoteBackend) DeleteCategory(ctx context.Context, id string) error {
	return b.Client.DeleteCategory(ctx, id)
}
