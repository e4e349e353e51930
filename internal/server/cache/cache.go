// Package cache keeps recently fetched inventory in memory between API
// requests, using patrickmn/go-cache for expiry.
package cache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/stockmatch/stockmatch/pkg/pos"
	"github.com/stockmatch/stockmatch/pkg/sheets"
)

const (
	productionKey = "production"
	posKeyPrefix  = "pos:"
)

// Cache holds the production report and per-store POS inventory.
type Cache struct {
	store *gocache.Cache
}

// New creates a cache whose entries live for ttl.
func New(ttl, cleanupInterval time.Duration) *Cache {
	return &Cache{store: gocache.New(ttl, cleanupInterval)}
}

// Production returns the cached production report.
func (c *Cache) Production() (*sheets.Report, bool) {
	v, ok := c.store.Get(productionKey)
	if !ok {
		return nil, false
	}
	report, ok := v.(*sheets.Report)
	return report, ok
}

// SetProduction caches report.
func (c *Cache) SetProduction(report *sheets.Report) {
	c.store.SetDefault(productionKey, report)
}

func posKey(location string, house bool) string {
	key := posKeyPrefix + strings.ToLower(strings.TrimSpace(location))
	if house {
		key += ":house"
	}
	return key
}

// POS returns the cached inventory of a store.
func (c *Cache) POS(location string, house bool) ([]pos.Product, bool) {
	v, ok := c.store.Get(posKey(location, house))
	if !ok {
		return nil, false
	}
	products, ok := v.([]pos.Product)
	return products, ok
}

// SetPOS caches a store's inventory.
func (c *Cache) SetPOS(location string, house bool, products []pos.Product) {
	c.store.SetDefault(posKey(location, house), products)
}

// Clear removes everything.
func (c *Cache) Clear() {
	c.store.Flush()
}

// ItemCount returns the number of live entries.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}
