package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductType enumerates the supported product types.
type ProductType string

const (
	ProductTypeComponent ProductType = "component"
	ProductTypeComputer  ProductType = "computer"
	ProductTypeAllInOne  ProductType = "all-in-one"
)

// Valid reports whether t is one of the known product types.
func (t ProductType) Valid() bool {
	switch t {
	case ProductTypeComponent, ProductTypeComputer, ProductTypeAllInOne:
		return true
	}
	return false
}

// Product represents a catalog item. Category is loaded through a join
// using "category.*" column aliases.
type Product struct {
	ID            int64           `db:"id"`
	Name          string          `db:"name"`
	Slug          string          `db:"slug"`
	Description   string          `db:"description"`
	Price         decimal.Decimal `db:"price"`
	CategoryID    int64           `db:"category_id"`
	ProductType   ProductType     `db:"product_type"`
	Brand         string          `db:"brand"`
	Model         string          `db:"model"`
	Image         *string         `db:"image"`
	StockQuantity int             `db:"stock_quantity"`
	IsActive      bool            `db:"is_active"`
	CreatedBy     *int64          `db:"created_by"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`

	Category       Category        `db:"category"`
	Specifications []Specification `db:"-"`
}

// IsInStock reports whether at least one unit is available.
func (p *Product) IsInStock() bool {
	return p.StockQuantity > 0
}

// IsOwnedBy reports whether userID is the recorded creator of the product.
// Products without a creator are owned by nobody.
func (p *Product) IsOwnedBy(userID int64) bool {
	return p.CreatedBy != nil && *p.CreatedBy == userID
}

// Specification is a free-form attribute of a product. Duplicated names are
// allowed; order follows insertion.
type Specification struct {
	ID        int64  `db:"id" json:"-"`
	ProductID int64  `db:"product_id" json:"-"`
	Name      string `db:"name" json:"name"`
	Value     string `db:"value" json:"value"`
}
