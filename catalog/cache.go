// Package catalog holds the last menu fetched from the backend.
package catalog

import (
	"context"
	"sync"

	"github.com/yeremiapane/kitsu-storefront/models"
	"github.com/yeremiapane/kitsu-storefront/utils"
)

// LoadErrorMessage is shown to the customer when the menu can't be fetched.
const LoadErrorMessage = "Sorry, the menu can't be loaded right now."

// MenuFetcher lists the menu. services.MenuService implements it.
type MenuFetcher interface {
	FetchMenu(ctx context.Context) ([]models.CatalogItem, error)
}

// Cache keeps the catalog between loads. A failed load leaves the previous
// contents in place.
type Cache struct {
	fetcher MenuFetcher

	mu      sync.RWMutex
	items   []models.CatalogItem
	byID    map[models.Identifier]models.CatalogItem
	loaded  bool
	lastErr error
}

func NewCache(fetcher MenuFetcher) *Cache {
	return &Cache{
		fetcher: fetcher,
		byID:    make(map[models.Identifier]models.CatalogItem),
	}
}

// Load fetches the menu and replaces the cached items on success.
func (c *Cache) Load(ctx context.Context) ([]models.CatalogItem, error) {
	items, err := c.fetcher.FetchMenu(ctx)
	if err != nil {
		c.mu.Lock()
		c.lastErr = err
		kept := len(c.items)
		c.mu.Unlock()

		utils.ErrorLogger.WithError(err).WithField("cached_items", kept).Warn("Menu load failed, keeping cached catalog")
		return c.Items(), err
	}

	byID := make(map[models.Identifier]models.CatalogItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	c.mu.Lock()
	c.items = items
	c.byID = byID
	c.loaded = true
	c.lastErr = nil
	c.mu.Unlock()

	utils.InfoLogger.WithField("items", len(items)).Info("Menu loaded")
	return c.Items(), nil
}

// Resolve looks a product up without touching the network.
func (c *Cache) Resolve(id models.Identifier) (models.CatalogItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.byID[id]
	return it, ok
}

// Items returns a copy of the catalog in the order the backend listed it.
func (c *Cache) Items() []models.CatalogItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// LastError is the error of the most recent load, nil after a success.
func (c *Cache) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}
