package models

import "time"

// Category groups products for browsing. Categories are managed by seed and
// admin tooling; the public API only reads them.
type Category struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Description string    `db:"description" json:"description"`
	Image       *string   `db:"image" json:"image"`
	CreatedAt   time.Time `db:"created_at" json:"-"`

	// Live count of active products, populated by listing queries only.
	ProductCount int `db:"product_count" json:"product_count"`
}
