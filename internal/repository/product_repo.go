package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/GTDGit/store_api/internal/database"
	"github.com/GTDGit/store_api/internal/models"
	"github.com/GTDGit/store_api/internal/utils"
)

const productSlugConstraint = "products_slug_key"

const productSelect = `
        SELECT p.id, p.name, p.slug, p.description, p.price, p.category_id,
               p.product_type, p.brand, p.model, p.image, p.stock_quantity,
               p.is_active, p.created_by, p.created_at, p.updated_at,
               c.id AS "category.id", c.name AS "category.name", c.slug AS "category.slug",
               c.description AS "category.description", c.image AS "category.image"
        FROM products p
        JOIN categories c ON c.id = p.category_id`

// orderings maps public ordering keys to SQL. p.id breaks ties so pages are stable.
var orderings = map[string]string{
	"price":       "p.price ASC, p.id ASC",
	"-price":      "p.price DESC, p.id DESC",
	"created_at":  "p.created_at ASC, p.id ASC",
	"-created_at": "p.created_at DESC, p.id DESC",
	"name":        "p.name ASC, p.id ASC",
	"-name":       "p.name DESC, p.id DESC",
}

// DefaultOrdering lists newest products first.
const DefaultOrdering = "-created_at"

// ValidOrdering reports whether key is an accepted ordering.
func ValidOrdering(key string) bool {
	_, ok := orderings[key]
	return ok
}

// ProductFilter holds filters for public product listing. Only active
// products are ever listed.
type ProductFilter struct {
	CategoryID   *int64
	CategorySlug string
	ProductType  string
	Brand        string
	Search       string
	Ordering     string
	Page         int
	Limit        int
}

// ProductRepository handles data access for products and their specifications.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns one page of active products matching filter and the total
// number of matches.
func (r *ProductRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, int, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	orderBy, ok := orderings[filter.Ordering]
	if !ok {
		orderBy = orderings[DefaultOrdering]
	}

	where := ` WHERE p.is_active = true`
	args := []interface{}{}
	argIdx := 1

	if filter.CategoryID != nil {
		where += fmt.Sprintf(" AND p.category_id = $%d", argIdx)
		args = append(args, *filter.CategoryID)
		argIdx++
	}
	if filter.CategorySlug != "" {
		where += fmt.Sprintf(" AND c.slug = $%d", argIdx)
		args = append(args, filter.CategorySlug)
		argIdx++
	}
	if filter.ProductType != "" {
		where += fmt.Sprintf(" AND p.product_type = $%d", argIdx)
		args = append(args, filter.ProductType)
		argIdx++
	}
	if filter.Brand != "" {
		where += fmt.Sprintf(" AND p.brand = $%d", argIdx)
		args = append(args, filter.Brand)
		argIdx++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(` AND (p.name ILIKE $%d OR p.description ILIKE $%d
            OR p.brand ILIKE $%d OR p.model ILIKE $%d)`, argIdx, argIdx, argIdx, argIdx)
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		argIdx++
	}

	countQuery := `SELECT COUNT(1) FROM products p JOIN categories c ON c.id = p.category_id` + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	listQuery := productSelect + where +
		fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", orderBy, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, listQuery, args...); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetBySlug returns a product with its category and specifications,
// regardless of its active flag.
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	if err := r.db.GetContext(ctx, &p, productSelect+` WHERE p.slug = $1`, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	specs, err := r.GetSpecifications(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Specifications = specs
	return &p, nil
}

// GetSpecifications returns the specifications of a product in insertion order.
func (r *ProductRepository) GetSpecifications(ctx context.Context, productID int64) ([]models.Specification, error) {
	const q = `SELECT id, product_id, name, value FROM product_specifications WHERE product_id = $1 ORDER BY id`
	specs := []models.Specification{}
	if err := r.db.SelectContext(ctx, &specs, q, productID); err != nil {
		return nil, err
	}
	return specs, nil
}

// SlugExists reports whether slug is used by a product other than excludeID.
// Pass 0 to check against every product.
func (r *ProductRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM products WHERE slug = $1 AND id <> $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, q, slug, excludeID); err != nil {
		return false, err
	}
	return exists, nil
}

// Create inserts the product and its specifications in one transaction.
// A lost slug race is reported as utils.ErrSlugConflict.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	const q = `
        INSERT INTO products (name, slug, description, price, category_id, product_type,
                              brand, model, image, stock_quantity, is_active, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id, created_at, updated_at`

	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := tx.QueryRowxContext(ctx, q,
			p.Name, p.Slug, p.Description, p.Price, p.CategoryID, p.ProductType,
			p.Brand, p.Model, p.Image, p.StockQuantity, p.IsActive, p.CreatedBy,
		).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return err
		}
		return insertSpecifications(ctx, tx, p.ID, p.Specifications)
	})
	return mapWriteError(err)
}

// Update saves the product's editable columns. When replaceSpecs is set the
// stored specifications are replaced by p.Specifications.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product, replaceSpecs bool) error {
	const q = `
        UPDATE products
        SET name = $1, slug = $2, description = $3, price = $4, category_id = $5,
            product_type = $6, brand = $7, model = $8, image = $9,
            stock_quantity = $10, is_active = $11, updated_at = NOW()
        WHERE id = $12
        RETURNING updated_at`

	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := tx.QueryRowxContext(ctx, q,
			p.Name, p.Slug, p.Description, p.Price, p.CategoryID, p.ProductType,
			p.Brand, p.Model, p.Image, p.StockQuantity, p.IsActive, p.ID,
		).Scan(&p.UpdatedAt); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return utils.ErrProductNotFound
			}
			return err
		}
		if !replaceSpecs {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM product_specifications WHERE product_id = $1`, p.ID); err != nil {
			return err
		}
		return insertSpecifications(ctx, tx, p.ID, p.Specifications)
	})
	return mapWriteError(err)
}

// UpdateImage sets the image path of a product.
func (r *ProductRepository) UpdateImage(ctx context.Context, id int64, image string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET image = $2, updated_at = NOW() WHERE id = $1`, id, image)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return utils.ErrProductNotFound
	}
	return nil
}

// Delete removes a product. Specifications go with it through the cascade.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return utils.ErrProductNotFound
	}
	return nil
}

// ListFeatured returns the newest active products of the given types that
// belong to one of categorySlugs.
func (r *ProductRepository) ListFeatured(ctx context.Context, types []models.ProductType, categorySlugs []string, limit int) ([]models.Product, error) {
	q := productSelect + `
        WHERE p.is_active = true
          AND p.product_type = ANY($1)
          AND c.slug = ANY($2)
        ORDER BY p.created_at DESC, p.id DESC
        LIMIT $3`

	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, q, pq.Array(typeStrings(types)), pq.Array(categorySlugs), limit); err != nil {
		return nil, err
	}
	return products, nil
}

// ListNewestExcluding returns the newest active products whose id is not in excludeIDs.
func (r *ProductRepository) ListNewestExcluding(ctx context.Context, excludeIDs []int64, limit int) ([]models.Product, error) {
	q := productSelect + `
        WHERE p.is_active = true
          AND NOT (p.id = ANY($1))
        ORDER BY p.created_at DESC, p.id DESC
        LIMIT $2`

	if excludeIDs == nil {
		excludeIDs = []int64{}
	}
	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, q, pq.Array(excludeIDs), limit); err != nil {
		return nil, err
	}
	return products, nil
}

// ListByTypes returns all products (active or not) of the given types,
// ordered by category name and product name.
func (r *ProductRepository) ListByTypes(ctx context.Context, types []models.ProductType) ([]models.Product, error) {
	q := productSelect + `
        WHERE p.product_type = ANY($1)
        ORDER BY c.name, p.name`

	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, q, pq.Array(typeStrings(types))); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateIfSlugAbsent inserts p unless a product with the same slug exists.
// It reports whether p was inserted.
func (r *ProductRepository) CreateIfSlugAbsent(ctx context.Context, p *models.Product) (bool, error) {
	const q = `
        INSERT INTO products (name, slug, description, price, category_id, product_type,
                              brand, model, image, stock_quantity, is_active, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        ON CONFLICT (slug) DO NOTHING
        RETURNING id, created_at, updated_at`

	created := false
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, q,
			p.Name, p.Slug, p.Description, p.Price, p.CategoryID, p.ProductType,
			p.Brand, p.Model, p.Image, p.StockQuantity, p.IsActive, p.CreatedBy,
		).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		created = true
		return insertSpecifications(ctx, tx, p.ID, p.Specifications)
	})
	return created, mapWriteError(err)
}

func insertSpecifications(ctx context.Context, tx *sqlx.Tx, productID int64, specs []models.Specification) error {
	const q = `INSERT INTO product_specifications (product_id, name, value) VALUES ($1, $2, $3) RETURNING id`
	for i := range specs {
		specs[i].ProductID = productID
		if err := tx.QueryRowxContext(ctx, q, productID, specs[i].Name, specs[i].Value).Scan(&specs[i].ID); err != nil {
			return fmt.Errorf("insert specification %q: %w", specs[i].Name, err)
		}
	}
	return nil
}

func mapWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err, productSlugConstraint):
		return utils.ErrSlugConflict
	case isForeignKeyViolation(err):
		return utils.ErrCategoryNotFound
	}
	return err
}

func typeStrings(types []models.ProductType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

// escapeLike escapes LIKE wildcards so search terms match literally.
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
