package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GTDGit/store_api/internal/models"
	"github.com/GTDGit/store_api/internal/repository"
	"github.com/GTDGit/store_api/internal/utils"
)

// fakeProductStore keeps products in memory and enforces slug uniqueness the
// way the products_slug_key constraint does.
type fakeProductStore struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]*models.Product
	clock    time.Time

	// raceSlugs makes the next N writes fail with ErrSlugConflict, as if a
	// concurrent writer grabbed the slug between check and insert.
	raceSlugs int
	creates   int
	updates   int

	imageErr   error
	lastFilter repository.ProductFilter
	listResult []models.Product
	listTotal  int
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{
		products: map[int64]*models.Product{},
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeProductStore) add(p models.Product) *models.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	f.clock = f.clock.Add(time.Minute)
	p.CreatedAt = f.clock
	p.UpdatedAt = f.clock
	f.products[p.ID] = &p
	return &p
}

func (f *fakeProductStore) slugTaken(slug string, excludeID int64) bool {
	for _, p := range f.products {
		if p.Slug == slug && p.ID != excludeID {
			return true
		}
	}
	return false
}

func (f *fakeProductStore) sorted(match func(p *models.Product) bool) []models.Product {
	out := []models.Product{}
	for _, p := range f.products {
		if match(p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeProductStore) List(_ context.Context, filter repository.ProductFilter) ([]models.Product, int, error) {
	f.lastFilter = filter
	return f.listResult, f.listTotal, nil
}

func (f *fakeProductStore) GetBySlug(_ context.Context, slug string) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.Slug == slug {
			cp := *p
			cp.Specifications = append([]models.Specification(nil), p.Specifications...)
			return &cp, nil
		}
	}
	return nil, utils.ErrProductNotFound
}

func (f *fakeProductStore) SlugExists(_ context.Context, slug string, excludeID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slugTaken(slug, excludeID), nil
}

func (f *fakeProductStore) Create(_ context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.raceSlugs > 0 {
		f.raceSlugs--
		return utils.ErrSlugConflict
	}
	if f.slugTaken(p.Slug, 0) {
		return utils.ErrSlugConflict
	}
	f.nextID++
	p.ID = f.nextID
	f.clock = f.clock.Add(time.Minute)
	p.CreatedAt = f.clock
	p.UpdatedAt = f.clock
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductStore) Update(_ context.Context, p *models.Product, replaceSpecs bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	stored, ok := f.products[p.ID]
	if !ok {
		return utils.ErrProductNotFound
	}
	if f.raceSlugs > 0 {
		f.raceSlugs--
		return utils.ErrSlugConflict
	}
	if f.slugTaken(p.Slug, p.ID) {
		return utils.ErrSlugConflict
	}
	specs := stored.Specifications
	cp := *p
	if !replaceSpecs {
		cp.Specifications = specs
	}
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductStore) UpdateImage(_ context.Context, id int64, image string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.imageErr != nil {
		return f.imageErr
	}
	p, ok := f.products[id]
	if !ok {
		return utils.ErrProductNotFound
	}
	p.Image = &image
	return nil
}

func (f *fakeProductStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return utils.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductStore) ListFeatured(_ context.Context, types []models.ProductType, categorySlugs []string, limit int) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.sorted(func(p *models.Product) bool {
		return p.IsActive && containsType(types, p.ProductType) && containsString(categorySlugs, p.Category.Slug)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeProductStore) ListNewestExcluding(_ context.Context, excludeIDs []int64, limit int) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	excluded := map[int64]bool{}
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	out := f.sorted(func(p *models.Product) bool { return p.IsActive && !excluded[p.ID] })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeProductStore) ListByTypes(_ context.Context, types []models.ProductType) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.sorted(func(p *models.Product) bool { return containsType(types, p.ProductType) })
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeProductStore) CreateIfSlugAbsent(ctx context.Context, p *models.Product) (bool, error) {
	if exists, _ := f.SlugExists(ctx, p.Slug, 0); exists {
		return false, nil
	}
	return true, f.Create(ctx, p)
}

type fakeCategoryStore struct {
	categories []models.Category
	listCalls  int
}

func (f *fakeCategoryStore) ListWithCounts(context.Context) ([]models.Category, error) {
	f.listCalls++
	return f.categories, nil
}

func (f *fakeCategoryStore) GetByID(_ context.Context, id int64) (*models.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, utils.ErrCategoryNotFound
}

func (f *fakeCategoryStore) GetBySlug(_ context.Context, slug string) (*models.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			cp := c
			return &cp, nil
		}
	}
	return nil, utils.ErrCategoryNotFound
}

func (f *fakeCategoryStore) GetOrCreate(_ context.Context, c *models.Category) (bool, error) {
	for _, existing := range f.categories {
		if existing.Slug == c.Slug {
			*c = existing
			return false, nil
		}
	}
	c.ID = int64(len(f.categories) + 1)
	f.categories = append(f.categories, *c)
	return true, nil
}

type fakeOrderStore struct {
	orders map[int64]*models.Order
	err    error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[int64]*models.Order{}}
}

func (f *fakeOrderStore) Create(_ context.Context, o *models.Order) error {
	if f.err != nil {
		return f.err
	}
	o.ID = int64(len(f.orders) + 1)
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderStore) GetByID(_ context.Context, id int64) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, utils.ErrOrderNotFound
	}
	return o, nil
}

var errCacheMiss = errors.New("miss")

type fakeCache struct {
	featured    []models.Product
	categories  []models.Category
	invalidated int
}

func (f *fakeCache) GetFeatured(context.Context) ([]models.Product, error) {
	if f.featured == nil {
		return nil, errCacheMiss
	}
	return f.featured, nil
}

func (f *fakeCache) SetFeatured(_ context.Context, products []models.Product) error {
	f.featured = products
	return nil
}

func (f *fakeCache) GetCategories(context.Context) ([]models.Category, error) {
	if f.categories == nil {
		return nil, errCacheMiss
	}
	return f.categories, nil
}

func (f *fakeCache) SetCategories(_ context.Context, categories []models.Category) error {
	f.categories = categories
	return nil
}

func (f *fakeCache) Invalidate(context.Context) error {
	f.invalidated++
	f.featured = nil
	f.categories = nil
	return nil
}

type fakeImageStorage struct {
	uploads map[string][]byte
	err     error
}

func (f *fakeImageStorage) UploadProductImage(_ context.Context, slug, contentType string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.uploads == nil {
		f.uploads = map[string][]byte{}
	}
	ext, _ := ImageExtension(contentType)
	f.uploads[slug+ext] = data
	return "https://cdn.example.com/products/" + slug + ext, nil
}

func (f *fakeImageStorage) DeleteProductImage(_ context.Context, slug, contentType string) error {
	ext, _ := ImageExtension(contentType)
	delete(f.uploads, slug+ext)
	return nil
}

func containsType(types []models.ProductType, t models.ProductType) bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func ptr[T any](v T) *T {
	return &v
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
