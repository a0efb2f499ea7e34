package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/GTDGit/store_api/internal/models"
	"github.com/GTDGit/store_api/internal/utils"
)

// slugMintAttempts bounds how often a slug is re-minted after losing a race
// on the products_slug_key constraint.
const slugMintAttempts = 3

var maxPrice = decimal.New(1, 8) // NUMERIC(10,2)

// ProductManagementService handles authenticated product writes.
type ProductManagementService struct {
	products   ProductStore
	categories CategoryStore
	cache      CatalogCache
	images     ImageStorage
}

// NewProductManagementService constructs a ProductManagementService. cache
// and images may be nil.
func NewProductManagementService(products ProductStore, categories CategoryStore, cache CatalogCache, images ImageStorage) *ProductManagementService {
	return &ProductManagementService{
		products:   products,
		categories: categories,
		cache:      cache,
		images:     images,
	}
}

// SpecificationInput is one name/value pair in a write request.
type SpecificationInput struct {
	Name  string `json:"name" binding:"required,max=100"`
	Value string `json:"value" binding:"required,max=500"`
}

// CreateProductRequest represents the request to create a new product.
type CreateProductRequest struct {
	Name           string               `json:"name" binding:"required,max=200"`
	Description    string               `json:"description" binding:"required"`
	Price          *decimal.Decimal     `json:"price" binding:"required"`
	Category       int64                `json:"category" binding:"required"`
	ProductType    string               `json:"product_type" binding:"required,oneof=component computer all-in-one"`
	Brand          string               `json:"brand" binding:"required,max=100"`
	Model          string               `json:"model" binding:"required,max=100"`
	Image          *string              `json:"image" binding:"omitempty,max=255"`
	StockQuantity  *int                 `json:"stock_quantity" binding:"omitempty,min=0"`
	Specifications []SpecificationInput `json:"specifications" binding:"omitempty,dive"`
}

// UpdateProductRequest represents a full (PUT) or partial (PATCH) update.
// Absent fields are left unchanged.
type UpdateProductRequest struct {
	Name           *string              `json:"name" binding:"omitempty,min=1,max=200"`
	Description    *string              `json:"description" binding:"omitempty,min=1"`
	Price          *decimal.Decimal     `json:"price"`
	Category       *int64               `json:"category" binding:"omitempty,min=1"`
	ProductType    *string              `json:"product_type" binding:"omitempty,oneof=component computer all-in-one"`
	Brand          *string              `json:"brand" binding:"omitempty,min=1,max=100"`
	Model          *string              `json:"model" binding:"omitempty,min=1,max=100"`
	Image          *string              `json:"image" binding:"omitempty,max=255"`
	StockQuantity  *int                 `json:"stock_quantity" binding:"omitempty,min=0"`
	IsActive       *bool                `json:"is_active"`
	Specifications []SpecificationInput `json:"specifications" binding:"omitempty,dive"`
}

// MissingRequired lists the create-required fields absent from the request.
// A full replacement (PUT) must carry all of them.
func (r *UpdateProductRequest) MissingRequired() []string {
	var missing []string
	check := func(field string, present bool) {
		if !present {
			missing = append(missing, field)
		}
	}
	check("name", r.Name != nil)
	check("description", r.Description != nil)
	check("price", r.Price != nil)
	check("category", r.Category != nil)
	check("product_type", r.ProductType != nil)
	check("brand", r.Brand != nil)
	check("model", r.Model != nil)
	return missing
}

// CreateProduct creates an active product owned by callerID.
func (s *ProductManagementService) CreateProduct(ctx context.Context, callerID int64, req *CreateProductRequest) (*models.Product, error) {
	details := utils.FieldErrors{}
	if req.Price == nil {
		details.Add("price", "This field is required.")
	} else {
		validatePrice(details, "price", *req.Price)
	}
	if !models.ProductType(req.ProductType).Valid() {
		details.Add("product_type", "Select a valid choice.")
	}
	if strings.TrimSpace(req.Name) == "" {
		details.Add("name", "This field may not be blank.")
	}
	if len(details) > 0 {
		return nil, &utils.ValidationError{Message: "Validation failed", Details: details}
	}

	category, err := s.lookupCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	owner := callerID
	product := &models.Product{
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		Price:          req.Price.Round(2),
		CategoryID:     category.ID,
		ProductType:    models.ProductType(req.ProductType),
		Brand:          req.Brand,
		Model:          req.Model,
		Image:          emptyToNil(req.Image),
		IsActive:       true,
		CreatedBy:      &owner,
		Specifications: toSpecifications(req.Specifications),
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}

	if err := s.mintAndSave(ctx, product, 0, func() error {
		return s.products.Create(ctx, product)
	}); err != nil {
		return nil, err
	}
	product.Category = *category
	s.invalidate(ctx)

	log.Info().
		Int64("product_id", product.ID).
		Str("slug", product.Slug).
		Int64("user_id", callerID).
		Msg("Product created")
	return product, nil
}

// UpdateProduct applies req to the product at slug. full requires every
// create-required field to be present.
func (s *ProductManagementService) UpdateProduct(ctx context.Context, callerID int64, slug string, req *UpdateProductRequest, full bool) (*models.Product, error) {
	product, err := s.loadForModify(ctx, callerID, slug)
	if err != nil {
		return nil, err
	}

	details := utils.FieldErrors{}
	if full {
		for _, field := range req.MissingRequired() {
			details.Add(field, "This field is required.")
		}
	}
	if req.Price != nil {
		validatePrice(details, "price", *req.Price)
	}
	if req.ProductType != nil && !models.ProductType(*req.ProductType).Valid() {
		details.Add("product_type", "Select a valid choice.")
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		details.Add("name", "This field may not be blank.")
	}
	if len(details) > 0 {
		return nil, &utils.ValidationError{Message: "Validation failed", Details: details}
	}

	if req.Category != nil && *req.Category != product.CategoryID {
		category, err := s.lookupCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		product.CategoryID = category.ID
		product.Category = *category
	}

	renamed := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		renamed = name != product.Name
		product.Name = name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = req.Price.Round(2)
	}
	if req.ProductType != nil {
		product.ProductType = models.ProductType(*req.ProductType)
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Model != nil {
		product.Model = *req.Model
	}
	if req.Image != nil {
		product.Image = emptyToNil(req.Image)
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	replaceSpecs := req.Specifications != nil
	if replaceSpecs {
		product.Specifications = toSpecifications(req.Specifications)
	}

	save := func() error {
		return s.products.Update(ctx, product, replaceSpecs)
	}
	if renamed {
		err = s.mintAndSave(ctx, product, product.ID, save)
	} else {
		err = save()
	}
	if err != nil {
		if errors.Is(err, utils.ErrCategoryNotFound) {
			return nil, categoryValidationError()
		}
		return nil, err
	}
	s.invalidate(ctx)

	log.Info().
		Int64("product_id", product.ID).
		Str("slug", product.Slug).
		Bool("renamed", renamed).
		Int64("user_id", callerID).
		Msg("Product updated")
	return product, nil
}

// DeleteProduct removes the product at slug together with its
// specifications. Order lines referring to it by name are unaffected.
func (s *ProductManagementService) DeleteProduct(ctx context.Context, callerID int64, slug string) error {
	product, err := s.loadForModify(ctx, callerID, slug)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, product.ID); err != nil {
		return err
	}
	s.invalidate(ctx)

	log.Info().
		Int64("product_id", product.ID).
		Str("slug", product.Slug).
		Int64("user_id", callerID).
		Msg("Product deleted")
	return nil
}

// UploadImage stores data as the product's image and records its URL.
func (s *ProductManagementService) UploadImage(ctx context.Context, callerID int64, slug, contentType string, data []byte) (*models.Product, error) {
	if s.images == nil {
		return nil, utils.ErrStorageDisabled
	}
	product, err := s.loadForModify(ctx, callerID, slug)
	if err != nil {
		return nil, err
	}

	url, err := s.images.UploadProductImage(ctx, product.Slug, contentType, data)
	if err != nil {
		return nil, err
	}
	if err := s.products.UpdateImage(ctx, product.ID, url); err != nil {
		if delErr := s.images.DeleteProductImage(ctx, product.Slug, contentType); delErr != nil {
			log.Warn().Err(delErr).Str("slug", product.Slug).Msg("Failed to remove orphaned product image")
		}
		return nil, err
	}
	product.Image = &url
	s.invalidate(ctx)

	log.Info().
		Int64("product_id", product.ID).
		Str("slug", product.Slug).
		Str("image", url).
		Msg("Product image uploaded")
	return product, nil
}

func (s *ProductManagementService) loadForModify(ctx context.Context, callerID int64, slug string) (*models.Product, error) {
	product, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	switch ProductAccess(&callerID, product, ActionModify) {
	case AccessAllow:
		return product, nil
	case AccessNotFound:
		return nil, utils.ErrProductNotFound
	default:
		return nil, utils.ErrForbidden
	}
}

func (s *ProductManagementService) lookupCategory(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrCategoryNotFound) {
			return nil, categoryValidationError()
		}
		return nil, err
	}
	return category, nil
}

// mintAndSave assigns a free slug derived from the product name and runs
// save. When save loses a race on the slug constraint the slug is minted
// again, up to slugMintAttempts times.
func (s *ProductManagementService) mintAndSave(ctx context.Context, p *models.Product, excludeID int64, save func() error) error {
	base := Slugify(p.Name)
	taken := func(ctx context.Context, candidate string) (bool, error) {
		return s.products.SlugExists(ctx, candidate, excludeID)
	}

	for attempt := 1; attempt <= slugMintAttempts; attempt++ {
		slug, err := UniqueSlug(ctx, base, taken)
		if err != nil {
			return err
		}
		p.Slug = slug

		err = save()
		if err == nil {
			return nil
		}
		if errors.Is(err, utils.ErrCategoryNotFound) {
			return categoryValidationError()
		}
		if !errors.Is(err, utils.ErrSlugConflict) {
			return err
		}
		log.Warn().Str("slug", slug).Int("attempt", attempt).Msg("Slug taken concurrently, re-minting")
	}
	return utils.ErrSlugConflict
}

func (s *ProductManagementService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate catalog cache")
	}
}

func categoryValidationError() *utils.ValidationError {
	return utils.NewValidationError("Validation failed", "category", "Invalid pk - object does not exist.")
}

// validatePrice checks a money amount against NUMERIC(10,2).
func validatePrice(details utils.FieldErrors, field string, price decimal.Decimal) {
	switch {
	case price.IsNegative():
		details.Add(field, "Ensure this value is greater than or equal to 0.")
	case !price.Equal(price.Round(2)):
		details.Add(field, "Ensure that there are no more than 2 decimal places.")
	case price.GreaterThanOrEqual(maxPrice):
		details.Add(field, "Ensure that there are no more than 8 digits before the decimal point.")
	}
}

func toSpecifications(in []SpecificationInput) []models.Specification {
	specs := make([]models.Specification, 0, len(in))
	for _, s := range in {
		specs = append(specs, models.Specification{Name: s.Name, Value: s.Value})
	}
	return specs
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
