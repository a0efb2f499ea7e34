package service

import (
	"context"

	"github.com/GTDGit/store_api/internal/models"
	"github.com/GTDGit/store_api/internal/repository"
)

// ProductStore is the product persistence used by the catalog services.
// *repository.ProductRepository implements it.
type ProductStore interface {
	List(ctx context.Context, filter repository.ProductFilter) ([]models.Product, int, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product, replaceSpecs bool) error
	UpdateImage(ctx context.Context, id int64, image string) error
	Delete(ctx context.Context, id int64) error
	ListFeatured(ctx context.Context, types []models.ProductType, categorySlugs []string, limit int) ([]models.Product, error)
	ListNewestExcluding(ctx context.Context, excludeIDs []int64, limit int) ([]models.Product, error)
}

// CategoryStore is the category persistence used by the catalog services.
type CategoryStore interface {
	ListWithCounts(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
}

// OrderStore persists orders.
type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
}

// CatalogCache caches derived catalog views. Implementations report a miss
// with an error; callers fall back to the store.
type CatalogCache interface {
	GetFeatured(ctx context.Context) ([]models.Product, error)
	SetFeatured(ctx context.Context, products []models.Product) error
	GetCategories(ctx context.Context) ([]models.Category, error)
	SetCategories(ctx context.Context, categories []models.Category) error
	Invalidate(ctx context.Context) error
}

// ImageStorage stores product image files and returns their public location.
type ImageStorage interface {
	UploadProductImage(ctx context.Context, slug, contentType string, data []byte) (string, error)
	DeleteProductImage(ctx context.Context, slug, contentType string) error
}
