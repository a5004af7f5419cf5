package catalog

import (
	"context"
	"errors"
	"fmt"

	catalogRepo "servicehub/database/repository/catalog"
	"servicehub/models"
)

// CatalogService is read access to categories and providers plus filtering.
type CatalogService interface {
	Categories(ctx context.Context) ([]models.ServiceCategory, error)
	Category(ctx context.Context, id string) (*models.ServiceCategory, error)
	Provider(ctx context.Context, id string) (*models.ServiceProvider, error)
	// Browse resolves categoryID (may be empty) and returns the filtered providers.
	Browse(ctx context.Context, categoryID, query string) (*BrowseResult, error)
}

// BrowseResult is a filtered provider list and the category it was filtered by, if any.
type BrowseResult struct {
	Category  *models.ServiceCategory
	Query     string
	Providers []models.ServiceProvider
}

// DefaultCatalogService filters over whatever the repository holds.
type DefaultCatalogService struct {
	Repo catalogRepo.CatalogRepository
}

func NewCatalogService(repo catalogRepo.CatalogRepository) *DefaultCatalogService {
	return &DefaultCatalogService{Repo: repo}
}

func (s *DefaultCatalogService) Categories(ctx context.Context) ([]models.ServiceCategory, error) {
	return s.Repo.Categories(ctx)
}

func (s *DefaultCatalogService) Category(ctx context.Context, id string) (*models.ServiceCategory, error) {
	c, err := s.Repo.CategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
		}
		return nil, err
	}
	return c, nil
}

func (s *DefaultCatalogService) Provider(ctx context.Context, id string) (*models.ServiceProvider, error) {
	p, err := s.Repo.ProviderByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, id)
		}
		return nil, err
	}
	return p, nil
}

func (s *DefaultCatalogService) Browse(ctx context.Context, categoryID, query string) (*BrowseResult, error) {
	var category *models.ServiceCategory
	if categoryID != "" {
		c, err := s.Category(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		category = c
	}

	providers, err := s.Repo.Providers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}

	return &BrowseResult{
		Category:  category,
		Query:     query,
		Providers: Filter(providers, category, query),
	}, nil
}
