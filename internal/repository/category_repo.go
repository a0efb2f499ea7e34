package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/store_api/internal/models"
	"github.com/GTDGit/store_api/internal/utils"
)

// CategoryRepository handles data access for categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListWithCounts returns all categories ordered by name, each annotated with
// the number of its active products.
func (r *CategoryRepository) ListWithCounts(ctx context.Context) ([]models.Category, error) {
	const q = `
        SELECT c.id, c.name, c.slug, c.description, c.image, c.created_at,
               COUNT(p.id) AS product_count
        FROM categories c
        LEFT JOIN products p ON p.category_id = c.id AND p.is_active = true
        GROUP BY c.id
        ORDER BY c.name`

	categories := []models.Category{}
	if err := r.db.SelectContext(ctx, &categories, q); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID returns a single category by id.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	const q = `SELECT id, name, slug, description, image, created_at FROM categories WHERE id = $1`
	return r.getOne(ctx, q, id)
}

// GetBySlug returns a single category by slug.
func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	const q = `SELECT id, name, slug, description, image, created_at FROM categories WHERE slug = $1`
	return r.getOne(ctx, q, slug)
}

func (r *CategoryRepository) getOne(ctx context.Context, q string, arg interface{}) (*models.Category, error) {
	var c models.Category
	if err := r.db.GetContext(ctx, &c, q, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetOrCreate inserts the category unless one with the same slug exists.
// The stored row is loaded into c; created reports whether it was inserted.
func (r *CategoryRepository) GetOrCreate(ctx context.Context, c *models.Category) (bool, error) {
	const insert = `
        INSERT INTO categories (name, slug, description, image)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (slug) DO NOTHING
        RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, insert, c.Name, c.Slug, c.Description, c.Image).Scan(&c.ID, &c.CreatedAt)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}

	existing, err := r.GetBySlug(ctx, c.Slug)
	if err != nil {
		return false, err
	}
	*c = *existing
	return false, nil
}
