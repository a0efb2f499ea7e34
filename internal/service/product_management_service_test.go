package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/store_api/internal/models"
	"github.com/GTDGit/store_api/internal/utils"
)

const ownerID = int64(42)

type managementFixture struct {
	products *fakeProductStore
	cache    *fakeCache
	images   *fakeImageStorage
	svc      *ProductManagementService
}

func newManagementFixture() *managementFixture {
	f := &managementFixture{
		products: newFakeProductStore(),
		cache:    &fakeCache{},
		images:   &fakeImageStorage{},
	}
	categories := &fakeCategoryStore{categories: []models.Category{cpuCategory, computersCategory}}
	f.svc = NewProductManagementService(f.products, categories, f.cache, f.images)
	return f
}

func validCreateRequest(name string) *CreateProductRequest {
	return &CreateProductRequest{
		Name:        name,
		Description: "Fast",
		Price:       ptr(dec("45000.00")),
		Category:    cpuCategory.ID,
		ProductType: "component",
		Brand:       "Intel",
		Model:       "i9",
		Specifications: []SpecificationInput{
			{Name: "Cores", Value: "24"},
			{Name: "Socket", Value: "LGA 1700"},
		},
	}
}

func TestCreateProductMintsUniqueSlugs(t *testing.T) {
	f := newManagementFixture()
	ctx := context.Background()

	var slugs []string
	for i := 0; i < 3; i++ {
		p, err := f.svc.CreateProduct(ctx, ownerID, validCreateRequest("Intel Core i9"))
		require.NoError(t, err)
		slugs = append(slugs, p.Slug)
	}
	assert.Equal(t, []string{"intel-core-i9", "intel-core-i9-1", "intel-core-i9-2"}, slugs)

	p, err := f.products.GetBySlug(ctx, "intel-core-i9-1")
	require.NoError(t, err)
	assert.True(t, p.IsActive)
	require.NotNil(t, p.CreatedBy)
	assert.Equal(t, ownerID, *p.CreatedBy)
	assert.Equal(t, []string{"Cores", "Socket"}, []string{p.Specifications[0].Name, p.Specifications[1].Name})
	assert.Equal(t, 3, f.cache.invalidated)
}

func TestCreateProductRetriesLostSlugRace(t *testing.T) {
	f := newManagementFixture()
	f.products.raceSlugs = 2

	p, err := f.svc.CreateProduct(context.Background(), ownerID, validCreateRequest("Race"))
	require.NoError(t, err)
	assert.Equal(t, "race", p.Slug)
	assert.Equal(t, 3, f.products.creates)
}

func TestCreateProductGivesUpAfterRepeatedRaces(t *testing.T) {
	f := newManagementFixture()
	f.products.raceSlugs = slugMintAttempts

	_, err := f.svc.CreateProduct(context.Background(), ownerID, validCreateRequest("Race"))
	assert.ErrorIs(t, err, utils.ErrSlugConflict)
	assert.Empty(t, f.products.products)
}

func TestCreateProductValidation(t *testing.T) {
	f := newManagementFixture()

	req := validCreateRequest("Bad")
	req.Price = ptr(dec("-1"))
	_, err := f.svc.CreateProduct(context.Background(), ownerID, req)
	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Details, "price")

	req = validCreateRequest("Bad")
	req.Price = ptr(dec("1.005"))
	_, err = f.svc.CreateProduct(context.Background(), ownerID, req)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Details, "price")

	req = validCreateRequest("Bad")
	req.Category = 999
	_, err = f.svc.CreateProduct(context.Background(), ownerID, req)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Details, "category")

	assert.Empty(t, f.products.products)
}

func TestUpdateRenameRemintsSlug(t *testing.T) {
	f := newManagementFixture()
	ctx := context.Background()
	_, err := f.svc.CreateProduct(ctx, ownerID, validCreateRequest("Gaming PC"))
	require.NoError(t, err)
	other, err := f.svc.CreateProduct(ctx, ownerID, validCreateRequest("Office PC"))
	require.NoError(t, err)

	updated, err := f.svc.UpdateProduct(ctx, ownerID, other.Slug, &UpdateProductRequest{Name: ptr("Gaming PC")}, false)
	require.NoError(t, err)
	assert.Equal(t, "gaming-pc-1", updated.Slug)

	// Renaming to the current name keeps the slug.
	same, err := f.svc.UpdateProduct(ctx, ownerID, "gaming-pc-1", &UpdateProductRequest{Name: ptr("Gaming PC")}, false)
	require.NoError(t, err)
	assert.Equal(t, "gaming-pc-1", same.Slug)
}

func TestUpdateDescriptionKeepsSlug(t *testing.T) {
	f := newManagementFixture()
	ctx := context.Background()
	created, err := f.svc.CreateProduct(ctx, ownerID, validCreateRequest("Gaming PC"))
	require.NoError(t, err)

	updated, err := f.svc.UpdateProduct(ctx, ownerID, created.Slug, &UpdateProductRequest{Description: ptr("New text")}, false)
	require.NoError(t, err)
	assert.Equal(t, "gaming-pc", updated.Slug)
	assert.Equal(t, "New text", updated.Description)

	stored, err := f.products.GetBySlug(ctx, "gaming-pc")
	require.NoError(t, err)
	assert.Len(t, stored.Specifications, 2)
}

func TestUpdateReplacesSpecifications(t *testing.T) {
	f := newManagementFixture()
	ctx := context.Background()
	created, err := f.svc.CreateProduct(ctx, ownerID, validCreateRequest("Gaming PC"))
	require.NoError(t, err)

	_, err = f.svc.UpdateProduct(ctx, ownerID, created.Slug, &UpdateProductRequest{
		Specifications: []SpecificationInput{{Name: "RAM", Value: "64 GB"}},
		IsActive:       ptr(false),
	}, false)
	require.NoError(t, err)

	stored, err := f.products.GetBySlug(ctx, created.Slug)
	require.NoError(t, err)
	require.Len(t, stored.Specifications, 1)
	assert.Equal(t, "RAM", stored.Specifications[0].Name)
	assert.False(t, stored.IsActive)
}

func TestFullUpdateRequiresAllFields(t *testing.T) {
	f := newManagementFixture()
	ctx := context.Background()
	created, err := f.svc.CreateProduct(ctx, ownerID, validCreateRequest("Gaming PC"))
	require.NoError(t, err)

	_, err = f.svc.UpdateProduct(ctx, ownerID, created.Slug, &UpdateProductRequest{Name: ptr("Other")}, true)
	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	for _, field := range []string{"description", "price", "category", "product_type", "brand", "model"} {
		assert.Contains(t, verr.Details, field)
	}
	assert.NotContains(t, verr.Details, "name")
	assert.Equal(t, 0, f.products.updates)
}

func TestNonOwnerCannotModify(t *testing.T) {
	f := newManagementFixture()
	ctx := context.Background()
	created, err := f.svc.CreateProduct(ctx, ownerID, validCreateRequest("Gaming PC"))
	require.NoError(t, err)
	seeded := f.products.add(models.Product{Name: "Seeded", Slug: "seeded", IsActive: true})

	_, err = f.svc.UpdateProduct(ctx, ownerID+1, created.Slug, &UpdateProductRequest{Name: ptr("Hijacked")}, false)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	err = f.svc.DeleteProduct(ctx, ownerID+1, created.Slug)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	err = f.svc.DeleteProduct(ctx, ownerID, seeded.Slug)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	stored, err := f.products.GetBySlug(ctx, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, "Gaming PC", stored.Name)
	assert.Len(t, f.products.products, 2)
}

func TestDeleteProduct(t *testing.T) {
	f := newManagementFixture()
	ctx := context.Background()
	created, err := f.svc.CreateProduct(ctx, ownerID, validCreateRequest("Gaming PC"))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteProduct(ctx, ownerID, created.Slug))
	_, err = f.products.GetBySlug(ctx, created.Slug)
	assert.ErrorIs(t, err, utils.ErrProductNotFound)

	err = f.svc.DeleteProduct(ctx, ownerID, created.Slug)
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestUploadImage(t *testing.T) {
	f := newManagementFixture()
	ctx := context.Background()
	created, err := f.svc.CreateProduct(ctx, ownerID, validCreateRequest("Gaming PC"))
	require.NoError(t, err)

	p, err := f.svc.UploadImage(ctx, ownerID, created.Slug, "image/png", []byte("png"))
	require.NoError(t, err)
	require.NotNil(t, p.Image)
	assert.Equal(t, "https://cdn.example.com/products/gaming-pc.png", *p.Image)
	assert.Contains(t, f.images.uploads, "gaming-pc.png")

	_, err = f.svc.UploadImage(ctx, ownerID+1, created.Slug, "image/png", []byte("png"))
	assert.ErrorIs(t, err, utils.ErrForbidden)
}

func TestUploadImageRemovesObjectWhenRecordFails(t *testing.T) {
	f := newManagementFixture()
	ctx := context.Background()
	created, err := f.svc.CreateProduct(ctx, ownerID, validCreateRequest("Gaming PC"))
	require.NoError(t, err)

	f.products.imageErr = errors.New("value too long for type character varying(255)")
	_, err = f.svc.UploadImage(ctx, ownerID, created.Slug, "image/png", []byte("png"))
	assert.ErrorIs(t, err, f.products.imageErr)
	assert.Empty(t, f.images.uploads)
}

func TestUploadImageWithoutStorage(t *testing.T) {
	svc := NewProductManagementService(newFakeProductStore(), &fakeCategoryStore{}, nil, nil)

	_, err := svc.UploadImage(context.Background(), ownerID, "any", "image/png", nil)
	assert.ErrorIs(t, err, utils.ErrStorageDisabled)
}
