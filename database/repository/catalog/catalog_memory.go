package catalogRepo

import (
	"context"
	"fmt"
	"slices"

	"servicehub/models"
)

// MemoryCatalogRepo serves the catalog from compiled-in slices.
type MemoryCatalogRepo struct {
	categories []models.ServiceCategory
	providers  []models.ServiceProvider
}

// NewMemoryCatalogRepo builds a repository over the given records after checking category references.
func NewMemoryCatalogRepo(categories []models.ServiceCategory, providers []models.ServiceProvider) (CatalogRepository, error) {
	if err := validateCatalog(categories, providers); err != nil {
		return nil, err
	}
	return &MemoryCatalogRepo{categories: categories, providers: providers}, nil
}

// NewSeededMemoryCatalogRepo serves the seed catalog.
func NewSeededMemoryCatalogRepo() CatalogRepository {
	repo, err := NewMemoryCatalogRepo(SeedCategories(), SeedProviders())
	if err != nil {
		panic(err)
	}
	return repo
}

func (r *MemoryCatalogRepo) Categories(ctx context.Context) ([]models.ServiceCategory, error) {
	return slices.Clone(r.categories), nil
}

func (r *MemoryCatalogRepo) CategoryByID(ctx context.Context, id string) (*models.ServiceCategory, error) {
	for _, c := range r.categories {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, fmt.Errorf("category %q: %w", id, ErrNotFound)
}

func (r *MemoryCatalogRepo) Providers(ctx context.Context) ([]models.ServiceProvider, error) {
	return slices.Clone(r.providers), nil
}

func (r *MemoryCatalogRepo) ProviderByID(ctx context.Context, id string) (*models.ServiceProvider, error) {
	for _, p := range r.providers {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, fmt.Errorf("provider %q: %w", id, ErrNotFound)
}
