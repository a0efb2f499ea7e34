package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/store_api/internal/middleware"
	"github.com/GTDGit/store_api/internal/service"
	"github.com/GTDGit/store_api/internal/utils"
)

// CatalogHandler serves the public catalog endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
	media   MediaConfig
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService, media MediaConfig) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, media: media}
}

// ListCategories handles GET /api/categories/ and GET /api/products/categories/
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Categories retrieved", h.media.categoryCountViews(c, categories))
}

// ListProducts handles GET /api/products/
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	filter := &service.ListProductsFilter{
		Category:    c.Query("category"),
		ProductType: c.Query("product_type"),
		Brand:       c.Query("brand"),
		Search:      c.Query("search"),
		Ordering:    c.Query("ordering"),
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			respondError(c, utils.ErrPageOutOfRange)
			return
		}
		filter.Page = page
	}
	if raw := c.Query("page_size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			filter.PageSize = size
		}
	}

	page, err := h.catalog.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessWithPagination(c, http.StatusOK, "Products retrieved",
		h.media.productListViews(c, page.Products), page.Page, page.Limit, page.TotalItems)
}

// GetProduct handles GET /api/products/:slug/
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("slug"), middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Product retrieved", h.media.productDetailView(c, product))
}

// FeaturedProducts handles GET /api/products/featured/
func (h *CatalogHandler) FeaturedProducts(c *gin.Context) {
	products, err := h.catalog.FeaturedProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Featured products retrieved", h.media.productListViews(c, products))
}
