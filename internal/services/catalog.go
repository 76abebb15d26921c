package services

import (
	"context"
	"slices"
	"sync"

	"github.com/notespath/backend/internal/models"
)

// MaterialFetcher retrieves the full catalog
type MaterialFetcher interface {
	// Method FetchAll retrieves every material, newest first.
	//
	// If the catalog cannot be retrieved, an error matching models.ErrRetrieval is returned.
	FetchAll(ctx context.Context) ([]models.Material, error)
}

// Catalog holds the last successfully fetched list of materials for a long-lived front-end
type Catalog struct {
	fetcher   MaterialFetcher
	mu        sync.RWMutex
	materials []models.Material
}

// NewCatalog creates an empty catalog backed by the fetcher
func NewCatalog(fetcher MaterialFetcher) *Catalog {
	return &Catalog{
		fetcher:   fetcher,
		materials: []models.Material{},
	}
}

// Refresh fetches the catalog again. On failure the held list is left unchanged.
func (c *Catalog) Refresh(ctx context.Context) error {
	materials, err := c.fetcher.FetchAll(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.materials = materials
	c.mu.Unlock()

	return nil
}

// Remove drops a deleted material from the held list
func (c *Catalog) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.materials = slices.DeleteFunc(slices.Clone(c.materials), func(m models.Material) bool {
		return m.ID == id
	})
}

// Materials returns a copy of the held list
func (c *Catalog) Materials() []models.Material {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.materials)
}

// View returns the held materials matching the filter
func (c *Catalog) View(filter models.Filter) []models.Material {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return ApplyFilters(c.materials, filter)
}
