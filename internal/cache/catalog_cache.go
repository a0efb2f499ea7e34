package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/GTDGit/store_api/internal/models"
)

const (
	keyFeatured   = "catalog:featured"
	keyCategories = "catalog:categories"
)

// KeyValueStore is the subset of RedisClient used by CatalogCache.
type KeyValueStore interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
}

// CatalogCache caches the featured product list and the category counts.
// Both are derived from the product table and are dropped together whenever
// a product changes.
type CatalogCache struct {
	store KeyValueStore
	ttl   time.Duration
}

// NewCatalogCache creates a new CatalogCache.
func NewCatalogCache(store KeyValueStore, ttl time.Duration) *CatalogCache {
	return &CatalogCache{store: store, ttl: ttl}
}

// GetFeatured returns the cached featured list.
func (c *CatalogCache) GetFeatured(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.get(ctx, keyFeatured, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SetFeatured caches the featured list.
func (c *CatalogCache) SetFeatured(ctx context.Context, products []models.Product) error {
	return c.set(ctx, keyFeatured, products)
}

// GetCategories returns the cached categories with product counts.
func (c *CatalogCache) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.get(ctx, keyCategories, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// SetCategories caches categories with product counts.
func (c *CatalogCache) SetCategories(ctx context.Context, categories []models.Category) error {
	return c.set(ctx, keyCategories, categories)
}

// Invalidate drops every catalog entry.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.store.Delete(ctx, keyFeatured, keyCategories)
}

func (c *CatalogCache) get(ctx context.Context, key string, dst interface{}) error {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return nil
}

func (c *CatalogCache) set(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return c.store.Set(ctx, key, string(data), c.ttl)
}
