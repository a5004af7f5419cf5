package catalogRepo

import (
	"context"
	"errors"
	"fmt"

	"servicehub/models"
)

// ErrNotFound is returned when a category or provider id is unknown.
var ErrNotFound = errors.New("catalog record not found")

// CatalogRepository defines read access to the service catalog.
// The catalog is reference data; there is no create, update or delete.
type CatalogRepository interface {
	// Categories returns every category in display order.
	Categories(ctx context.Context) ([]models.ServiceCategory, error)
	// CategoryByID retrieves a category by its id.
	CategoryByID(ctx context.Context, id string) (*models.ServiceCategory, error)
	// Providers returns every provider in display order.
	Providers(ctx context.Context) ([]models.ServiceProvider, error)
	// ProviderByID retrieves a provider by its id.
	ProviderByID(ctx context.Context, id string) (*models.ServiceProvider, error)
}

// validateCatalog checks that every provider's category id names a known category.
func validateCatalog(categories []models.ServiceCategory, providers []models.ServiceProvider) error {
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}
	for _, p := range providers {
		if !known[p.Category.ID] {
			return fmt.Errorf("provider %s references unknown category %q", p.ID, p.Category.ID)
		}
	}
	return nil
}
