package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/GTDGit/store_api/internal/models"
)

// CategorySeeder inserts categories that are not present yet.
type CategorySeeder interface {
	GetOrCreate(ctx context.Context, c *models.Category) (bool, error)
}

// ProductSeeder inserts products whose slug is not taken yet.
type ProductSeeder interface {
	CreateIfSlugAbsent(ctx context.Context, p *models.Product) (bool, error)
}

// SeedReport summarises a seeding run.
type SeedReport struct {
	CategoriesCreated int
	CategoriesExisted int
	ProductsCreated   int
	ProductsExisted   int
}

// SeedService loads the sample catalog. Running it twice changes nothing.
type SeedService struct {
	categories CategorySeeder
	products   ProductSeeder
}

// NewSeedService constructs a SeedService.
func NewSeedService(categories CategorySeeder, products ProductSeeder) *SeedService {
	return &SeedService{categories: categories, products: products}
}

// Seed creates the sample categories and products that do not exist yet.
// Existing rows, matched by slug, are left untouched.
func (s *SeedService) Seed(ctx context.Context) (*SeedReport, error) {
	report := &SeedReport{}
	categoryIDs := make(map[string]int64, len(seedCategories))

	for _, sc := range seedCategories {
		c := &models.Category{Name: sc.Name, Slug: sc.Slug, Description: sc.Description}
		created, err := s.categories.GetOrCreate(ctx, c)
		if err != nil {
			return report, fmt.Errorf("seed category %s: %w", sc.Slug, err)
		}
		if created {
			report.CategoriesCreated++
		} else {
			report.CategoriesExisted++
		}
		categoryIDs[sc.Slug] = c.ID
		log.Debug().Str("slug", sc.Slug).Bool("created", created).Msg("Seed category")
	}

	for _, sp := range seedProducts {
		categoryID, ok := categoryIDs[sp.CategorySlug]
		if !ok {
			return report, fmt.Errorf("seed product %s: unknown category %s", sp.Slug, sp.CategorySlug)
		}
		price, err := decimal.NewFromString(sp.Price)
		if err != nil {
			return report, fmt.Errorf("seed product %s: %w", sp.Slug, err)
		}

		p := &models.Product{
			Name:          sp.Name,
			Slug:          sp.Slug,
			Description:   sp.Description,
			Price:         price,
			CategoryID:    categoryID,
			ProductType:   sp.ProductType,
			Brand:         sp.Brand,
			Model:         sp.Model,
			StockQuantity: sp.StockQuantity,
			IsActive:      true,
		}
		for _, spec := range sp.Specs {
			p.Specifications = append(p.Specifications, models.Specification{Name: spec[0], Value: spec[1]})
		}

		created, err := s.products.CreateIfSlugAbsent(ctx, p)
		if err != nil {
			return report, fmt.Errorf("seed product %s: %w", sp.Slug, err)
		}
		if created {
			report.ProductsCreated++
		} else {
			report.ProductsExisted++
		}
		log.Debug().Str("slug", sp.Slug).Bool("created", created).Msg("Seed product")
	}

	log.Info().
		Int("categories_created", report.CategoriesCreated).
		Int("products_created", report.ProductsCreated).
		Msg("Seeding completed")
	return report, nil
}
