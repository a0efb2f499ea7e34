package handler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/GTDGit/store_api/internal/models"
	"github.com/GTDGit/store_api/internal/repository"
	"github.com/GTDGit/store_api/internal/utils"
)

// memCatalog is an in-memory product, category and order store.
type memCatalog struct {
	mu         sync.Mutex
	nextID     int64
	clock      time.Time
	categories []models.Category
	products   map[int64]*models.Product
	orders     map[int64]*models.Order
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		categories: []models.Category{
			{ID: 1, Name: "Процессоры", Slug: "processors"},
			{ID: 2, Name: "Компьютеры", Slug: "computers"},
		},
		products: map[int64]*models.Product{},
		orders:   map[int64]*models.Order{},
	}
}

func (m *memCatalog) category(id int64) models.Category {
	for _, c := range m.categories {
		if c.ID == id {
			return c
		}
	}
	return models.Category{}
}

func (m *memCatalog) add(p models.Product) *models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insert(&p)
	return &p
}

func (m *memCatalog) insert(p *models.Product) {
	m.nextID++
	m.clock = m.clock.Add(time.Minute)
	p.ID = m.nextID
	p.CreatedAt = m.clock
	p.UpdatedAt = m.clock
	p.Category = m.category(p.CategoryID)
	cp := *p
	m.products[p.ID] = &cp
}

func (m *memCatalog) slugTaken(slug string, excludeID int64) bool {
	for _, p := range m.products {
		if p.Slug == slug && p.ID != excludeID {
			return true
		}
	}
	return false
}

func (m *memCatalog) newest(match func(p *models.Product) bool) []models.Product {
	out := []models.Product{}
	for _, p := range m.products {
		if match(p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memCatalog) List(_ context.Context, filter repository.ProductFilter) ([]models.Product, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.newest(func(p *models.Product) bool {
		if !p.IsActive {
			return false
		}
		if filter.CategoryID != nil && p.CategoryID != *filter.CategoryID {
			return false
		}
		if filter.CategorySlug != "" && p.Category.Slug != filter.CategorySlug {
			return false
		}
		return filter.ProductType == "" || string(p.ProductType) == filter.ProductType
	})
	start := (filter.Page - 1) * filter.Limit
	if start > len(all) {
		start = len(all)
	}
	end := start + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], len(all), nil
}

func (m *memCatalog) GetBySlug(_ context.Context, slug string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, utils.ErrProductNotFound
}

func (m *memCatalog) SlugExists(_ context.Context, slug string, excludeID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slugTaken(slug, excludeID), nil
}

func (m *memCatalog) Create(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slugTaken(p.Slug, 0) {
		return utils.ErrSlugConflict
	}
	m.insert(p)
	return nil
}

func (m *memCatalog) Update(_ context.Context, p *models.Product, replaceSpecs bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.products[p.ID]
	if !ok {
		return utils.ErrProductNotFound
	}
	if m.slugTaken(p.Slug, p.ID) {
		return utils.ErrSlugConflict
	}
	cp := *p
	cp.Category = m.category(p.CategoryID)
	if !replaceSpecs {
		cp.Specifications = stored.Specifications
	}
	m.products[p.ID] = &cp
	return nil
}

func (m *memCatalog) UpdateImage(_ context.Context, id int64, image string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return utils.ErrProductNotFound
	}
	p.Image = &image
	return nil
}

func (m *memCatalog) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return utils.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *memCatalog) ListFeatured(_ context.Context, types []models.ProductType, categorySlugs []string, limit int) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.newest(func(p *models.Product) bool {
		if !p.IsActive {
			return false
		}
		typeMatch, categoryMatch := false, false
		for _, t := range types {
			typeMatch = typeMatch || p.ProductType == t
		}
		for _, s := range categorySlugs {
			categoryMatch = categoryMatch || p.Category.Slug == s
		}
		return typeMatch && categoryMatch
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memCatalog) ListNewestExcluding(_ context.Context, excludeIDs []int64, limit int) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	excluded := map[int64]bool{}
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	out := m.newest(func(p *models.Product) bool { return p.IsActive && !excluded[p.ID] })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// memCategories exposes the category side of memCatalog.
type memCategories struct{ m *memCatalog }

func (c memCategories) ListWithCounts(context.Context) ([]models.Category, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	out := make([]models.Category, 0, len(c.m.categories))
	for _, cat := range c.m.categories {
		for _, p := range c.m.products {
			if p.IsActive && p.CategoryID == cat.ID {
				cat.ProductCount++
			}
		}
		out = append(out, cat)
	}
	return out, nil
}

func (c memCategories) GetByID(_ context.Context, id int64) (*models.Category, error) {
	for _, cat := range c.m.categories {
		if cat.ID == id {
			cp := cat
			return &cp, nil
		}
	}
	return nil, utils.ErrCategoryNotFound
}

func (c memCategories) GetBySlug(_ context.Context, slug string) (*models.Category, error) {
	for _, cat := range c.m.categories {
		if cat.Slug == slug {
			cp := cat
			return &cp, nil
		}
	}
	return nil, utils.ErrCategoryNotFound
}

// memOrders exposes the order side of memCatalog.
type memOrders struct{ m *memCatalog }

func (o memOrders) Create(_ context.Context, order *models.Order) error {
	o.m.mu.Lock()
	defer o.m.mu.Unlock()
	order.ID = int64(len(o.m.orders) + 1)
	order.CreatedAt = o.m.clock
	order.UpdatedAt = o.m.clock
	cp := *order
	o.m.orders[order.ID] = &cp
	return nil
}

func (o memOrders) GetByID(_ context.Context, id int64) (*models.Order, error) {
	o.m.mu.Lock()
	defer o.m.mu.Unlock()
	order, ok := o.m.orders[id]
	if !ok {
		return nil, utils.ErrOrderNotFound
	}
	return order, nil
}
