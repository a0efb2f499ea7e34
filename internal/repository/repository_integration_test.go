//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/GTDGit/store_api/internal/database"
	"github.com/GTDGit/store_api/internal/models"
	"github.com/GTDGit/store_api/internal/utils"
)

// setupTestDB starts PostgreSQL in a container and applies the migrations.
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("store"),
		postgres.WithUsername("store"),
		postgres.WithPassword("store"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := database.ConnectDSN(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.MigrateUp(db.DB))
	return db
}

func mustCategory(t *testing.T, repo *CategoryRepository, name, slug string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name, Slug: slug}
	_, err := repo.GetOrCreate(context.Background(), c)
	require.NoError(t, err)
	return c
}

func newProduct(name, slug string, categoryID int64, productType models.ProductType) *models.Product {
	return &models.Product{
		Name:        name,
		Slug:        slug,
		Price:       decimal.RequireFromString("1000.00"),
		CategoryID:  categoryID,
		ProductType: productType,
		Brand:       "Brand",
		Model:       "Model",
		IsActive:    true,
	}
}

func TestProductRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	categories := NewCategoryRepository(db)
	products := NewProductRepository(db)

	computers := mustCategory(t, categories, "Компьютеры", "computers")
	cpus := mustCategory(t, categories, "Процессоры", "processors")

	t.Run("slug uniqueness is enforced by the store", func(t *testing.T) {
		require.NoError(t, products.Create(ctx, newProduct("Dup", "dup", cpus.ID, models.ProductTypeComponent)))
		err := products.Create(ctx, newProduct("Dup", "dup", cpus.ID, models.ProductTypeComponent))
		assert.ErrorIs(t, err, utils.ErrSlugConflict)

		exists, err := products.SlugExists(ctx, "dup", 0)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("specifications keep order and cascade on delete", func(t *testing.T) {
		p := newProduct("Gaming PC", "gaming-pc", computers.ID, models.ProductTypeComputer)
		p.Specifications = []models.Specification{{Name: "GPU", Value: "RTX 4090"}, {Name: "RAM", Value: "64 GB"}}
		require.NoError(t, products.Create(ctx, p))

		stored, err := products.GetBySlug(ctx, "gaming-pc")
		require.NoError(t, err)
		assert.Equal(t, "computers", stored.Category.Slug)
		require.Len(t, stored.Specifications, 2)
		assert.Equal(t, "GPU", stored.Specifications[0].Name)

		require.NoError(t, products.Delete(ctx, p.ID))
		var left int
		require.NoError(t, db.GetContext(ctx, &left, `SELECT COUNT(*) FROM product_specifications WHERE product_id = $1`, p.ID))
		assert.Zero(t, left)

		_, err = products.GetBySlug(ctx, "gaming-pc")
		assert.ErrorIs(t, err, utils.ErrProductNotFound)
	})

	t.Run("featured has no duplicates", func(t *testing.T) {
		for _, slug := range []string{"pc-1", "pc-2"} {
			require.NoError(t, products.Create(ctx, newProduct(slug, slug, computers.ID, models.ProductTypeComputer)))
		}
		featured, err := products.ListFeatured(ctx,
			[]models.ProductType{models.ProductTypeComputer, models.ProductTypeAllInOne},
			[]string{"computers", "all-in-one", "laptops"}, 8)
		require.NoError(t, err)
		require.Len(t, featured, 2)
		assert.Equal(t, "pc-2", featured[0].Slug)

		rest, err := products.ListNewestExcluding(ctx, []int64{featured[0].ID, featured[1].ID}, 8)
		require.NoError(t, err)
		for _, p := range rest {
			assert.NotEqual(t, featured[0].ID, p.ID)
			assert.NotEqual(t, featured[1].ID, p.ID)
		}
	})

	t.Run("listing counts active products per category", func(t *testing.T) {
		hidden := newProduct("Hidden", "hidden", computers.ID, models.ProductTypeComputer)
		hidden.IsActive = false
		require.NoError(t, products.Create(ctx, hidden))

		list, total, err := products.List(ctx, ProductFilter{CategorySlug: "computers", Ordering: DefaultOrdering, Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, list, 2)

		withCounts, err := categories.ListWithCounts(ctx)
		require.NoError(t, err)
		counts := map[string]int{}
		for _, c := range withCounts {
			counts[c.Slug] = c.ProductCount
		}
		assert.Equal(t, 2, counts["computers"])
		assert.Equal(t, 1, counts["processors"])
	})
}

func TestOrderRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	orders := NewOrderRepository(db)

	newOrder := func(quantity int) *models.Order {
		o := &models.Order{
			FirstName: "Ivan", LastName: "Petrov", Email: "ivan@example.com", Phone: "+7999",
			Address: "Lenina 1", City: "Moscow", PostalCode: "101000",
			Country: models.DefaultCountry, Status: models.OrderStatusPending,
			Items: []models.OrderLine{
				models.NewOrderLine("CPU", decimal.RequireFromString("45000.00"), 2),
				models.NewOrderLine("Cooler", decimal.RequireFromString("8000.50"), quantity),
			},
		}
		o.RecalculateTotal()
		return o
	}

	t.Run("order and lines are stored together", func(t *testing.T) {
		o := newOrder(1)
		require.NoError(t, orders.Create(ctx, o))

		stored, err := orders.GetByID(ctx, o.ID)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("98000.50").Equal(stored.TotalAmount))
		require.Len(t, stored.Items, 2)
		assert.Equal(t, "CPU", stored.Items[0].ProductName)
	})

	t.Run("a failing line rolls the order back", func(t *testing.T) {
		before, err := orders.Count(ctx)
		require.NoError(t, err)

		err = orders.Create(ctx, newOrder(0))
		require.Error(t, err)

		after, err := orders.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("missing order", func(t *testing.T) {
		_, err := orders.GetByID(ctx, 999999)
		assert.ErrorIs(t, err, utils.ErrOrderNotFound)
	})
}
