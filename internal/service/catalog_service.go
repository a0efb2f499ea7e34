package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/store_api/internal/models"
	"github.com/GTDGit/store_api/internal/repository"
	"github.com/GTDGit/store_api/internal/utils"
)

// FeaturedLimit caps the featured product list.
const FeaturedLimit = 8

var (
	featuredTypes         = []models.ProductType{models.ProductTypeComputer, models.ProductTypeAllInOne}
	featuredCategorySlugs = []string{"computers", "all-in-one", "laptops"}
)

// CatalogService serves the public, read-only side of the catalog.
type CatalogService struct {
	products    ProductStore
	categories  CategoryStore
	cache       CatalogCache
	pageSize    int
	maxPageSize int
}

// NewCatalogService constructs a CatalogService. cache may be nil.
func NewCatalogService(products ProductStore, categories CategoryStore, cache CatalogCache, pageSize, maxPageSize int) *CatalogService {
	return &CatalogService{
		products:    products,
		categories:  categories,
		cache:       cache,
		pageSize:    pageSize,
		maxPageSize: maxPageSize,
	}
}

// ListProductsFilter holds the public listing query.
type ListProductsFilter struct {
	Category    string // category id or slug
	ProductType string
	Brand       string
	Search      string
	Ordering    string
	Page        int
	PageSize    int
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products   []models.Product
	Page       int
	Limit      int
	TotalItems int
}

// ListProducts returns a page of active products.
func (s *CatalogService) ListProducts(ctx context.Context, filter *ListProductsFilter) (*ProductPage, error) {
	ordering := strings.TrimSpace(filter.Ordering)
	if ordering == "" {
		ordering = repository.DefaultOrdering
	}
	if !repository.ValidOrdering(ordering) {
		return nil, utils.ErrInvalidOrdering
	}

	productType := strings.TrimSpace(filter.ProductType)
	if productType != "" && !models.ProductType(productType).Valid() {
		return nil, utils.NewValidationError("Invalid filter", "product_type",
			"Select a valid choice. "+productType+" is not one of the available choices.")
	}

	page := filter.Page
	if page == 0 {
		page = 1
	}
	if page < 0 {
		return nil, utils.ErrPageOutOfRange
	}
	limit := filter.PageSize
	if limit <= 0 {
		limit = s.pageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	repoFilter := repository.ProductFilter{
		ProductType: productType,
		Brand:       strings.TrimSpace(filter.Brand),
		Search:      strings.TrimSpace(filter.Search),
		Ordering:    ordering,
		Page:        page,
		Limit:       limit,
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		if id, err := strconv.ParseInt(category, 10, 64); err == nil {
			repoFilter.CategoryID = &id
		} else {
			repoFilter.CategorySlug = category
		}
	}

	products, total, err := s.products.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	// An empty first page is valid; any page past the last one is not.
	if page > 1 && (page-1)*limit >= total {
		return nil, utils.ErrPageOutOfRange
	}

	return &ProductPage{
		Products:   products,
		Page:       page,
		Limit:      limit,
		TotalItems: total,
	}, nil
}

// GetProduct returns the full product for slug as seen by callerID (nil for
// anonymous callers). Products the caller may not see are reported as
// utils.ErrProductNotFound, exactly like missing ones.
func (s *CatalogService) GetProduct(ctx context.Context, slug string, callerID *int64) (*models.Product, error) {
	p, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if ProductAccess(callerID, p, ActionView) != AccessAllow {
		return nil, utils.ErrProductNotFound
	}
	return p, nil
}

// FeaturedProducts returns up to FeaturedLimit computer-class products from
// the featured categories, newest first, topped up with the newest other
// active products when there are not enough of them.
func (s *CatalogService) FeaturedProducts(ctx context.Context) ([]models.Product, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFeatured(ctx); err == nil {
			return cached, nil
		}
	}

	featured, err := s.products.ListFeatured(ctx, featuredTypes, featuredCategorySlugs, FeaturedLimit)
	if err != nil {
		return nil, err
	}
	featured = appendUnique(nil, featured, FeaturedLimit)

	if len(featured) < FeaturedLimit {
		ids := make([]int64, len(featured))
		for i, p := range featured {
			ids[i] = p.ID
		}
		rest, err := s.products.ListNewestExcluding(ctx, ids, FeaturedLimit-len(featured))
		if err != nil {
			return nil, err
		}
		featured = appendUnique(featured, rest, FeaturedLimit)
	}

	if s.cache != nil {
		if err := s.cache.SetFeatured(ctx, featured); err != nil {
			log.Warn().Err(err).Msg("failed to cache featured products")
		}
	}
	return featured, nil
}

// Categories returns all categories with live counts of active products.
func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetCategories(ctx); err == nil {
			return cached, nil
		}
	}

	categories, err := s.categories.ListWithCounts(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetCategories(ctx, categories); err != nil {
			log.Warn().Err(err).Msg("failed to cache categories")
		}
	}
	return categories, nil
}

// appendUnique appends products from src to dst, skipping ids already in dst,
// until dst holds limit products.
func appendUnique(dst, src []models.Product, limit int) []models.Product {
	seen := make(map[int64]struct{}, len(dst))
	for _, p := range dst {
		seen[p.ID] = struct{}{}
	}
	for _, p := range src {
		if len(dst) >= limit {
			break
		}
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		dst = append(dst, p)
	}
	if dst == nil {
		dst = []models.Product{}
	}
	return dst
}
