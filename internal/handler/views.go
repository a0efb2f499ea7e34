package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/store_api/internal/models"
)

// MediaConfig turns stored image paths into absolute URLs.
type MediaConfig struct {
	// BaseURL, when set, replaces the request's scheme and host.
	BaseURL string
	Path    string
}

// URL returns the absolute URL of image, or nil when there is no image.
// Images stored as absolute URLs (for example S3 objects) are returned as is.
func (m MediaConfig) URL(c *gin.Context, image *string) *string {
	if image == nil || strings.TrimSpace(*image) == "" {
		return nil
	}
	raw := strings.TrimSpace(*image)
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return &raw
	}

	base := m.BaseURL
	if base == "" {
		base = requestScheme(c) + "://" + c.Request.Host
	}
	mediaPath := "/" + strings.Trim(m.Path, "/")
	if mediaPath == "/" {
		mediaPath = ""
	}
	path := strings.TrimPrefix(raw, "/")
	if mediaPath != "" && strings.HasPrefix("/"+path, mediaPath+"/") {
		path = strings.TrimPrefix("/"+path, mediaPath+"/")
	}
	url := strings.TrimSuffix(base, "/") + mediaPath + "/" + path
	return &url
}

func requestScheme(c *gin.Context) string {
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if c.Request.TLS != nil {
		return "https"
	}
	return "http"
}

// CategoryView is the public representation of a category.
type CategoryView struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
}

// CategoryCountView adds the number of active products to a category.
type CategoryCountView struct {
	CategoryView
	ProductCount int `json:"product_count"`
}

// ProductListView is the reduced projection used in listings.
type ProductListView struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	Slug          string       `json:"slug"`
	Price         string       `json:"price"`
	Category      CategoryView `json:"category"`
	ProductType   string       `json:"product_type"`
	Brand         string       `json:"brand"`
	Model         string       `json:"model"`
	Image         *string      `json:"image"`
	ImageURL      *string      `json:"image_url"`
	StockQuantity int          `json:"stock_quantity"`
	IsInStock     bool         `json:"is_in_stock"`
	CreatedAt     time.Time    `json:"created_at"`
}

// SpecificationView is a product specification.
type SpecificationView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductDetailView is the full product projection.
type ProductDetailView struct {
	ID             int64               `json:"id"`
	Name           string              `json:"name"`
	Slug           string              `json:"slug"`
	Description    string              `json:"description"`
	Price          string              `json:"price"`
	Category       CategoryView        `json:"category"`
	ProductType    string              `json:"product_type"`
	Brand          string              `json:"brand"`
	Model          string              `json:"model"`
	Image          *string             `json:"image"`
	ImageURL       *string             `json:"image_url"`
	StockQuantity  int                 `json:"stock_quantity"`
	IsActive       bool                `json:"is_active"`
	IsInStock      bool                `json:"is_in_stock"`
	Specifications []SpecificationView `json:"specifications"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// OrderItemView is one order line.
type OrderItemView struct {
	ProductName  string `json:"product_name"`
	ProductPrice string `json:"product_price"`
	Quantity     int    `json:"quantity"`
	TotalPrice   string `json:"total_price"`
}

// OrderView is the public representation of an order.
type OrderView struct {
	ID          int64           `json:"id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	City        string          `json:"city"`
	PostalCode  string          `json:"postal_code"`
	Country     string          `json:"country"`
	Status      string          `json:"status"`
	TotalAmount string          `json:"total_amount"`
	Items       []OrderItemView `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (m MediaConfig) categoryView(c *gin.Context, cat *models.Category) CategoryView {
	return CategoryView{
		ID:          cat.ID,
		Name:        cat.Name,
		Slug:        cat.Slug,
		Description: cat.Description,
		Image:       m.URL(c, cat.Image),
	}
}

func (m MediaConfig) categoryCountViews(c *gin.Context, categories []models.Category) []CategoryCountView {
	out := make([]CategoryCountView, 0, len(categories))
	for i := range categories {
		out = append(out, CategoryCountView{
			CategoryView: m.categoryView(c, &categories[i]),
			ProductCount: categories[i].ProductCount,
		})
	}
	return out
}

func (m MediaConfig) productListViews(c *gin.Context, products []models.Product) []ProductListView {
	out := make([]ProductListView, 0, len(products))
	for i := range products {
		p := &products[i]
		out = append(out, ProductListView{
			ID:            p.ID,
			Name:          p.Name,
			Slug:          p.Slug,
			Price:         p.Price.StringFixed(2),
			Category:      m.categoryView(c, &p.Category),
			ProductType:   string(p.ProductType),
			Brand:         p.Brand,
			Model:         p.Model,
			Image:         p.Image,
			ImageURL:      m.URL(c, p.Image),
			StockQuantity: p.StockQuantity,
			IsInStock:     p.IsInStock(),
			CreatedAt:     p.CreatedAt,
		})
	}
	return out
}

func (m MediaConfig) productDetailView(c *gin.Context, p *models.Product) ProductDetailView {
	specs := make([]SpecificationView, 0, len(p.Specifications))
	for _, s := range p.Specifications {
		specs = append(specs, SpecificationView{Name: s.Name, Value: s.Value})
	}
	return ProductDetailView{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		Price:          p.Price.StringFixed(2),
		Category:       m.categoryView(c, &p.Category),
		ProductType:    string(p.ProductType),
		Brand:          p.Brand,
		Model:          p.Model,
		Image:          p.Image,
		ImageURL:       m.URL(c, p.Image),
		StockQuantity:  p.StockQuantity,
		IsActive:       p.IsActive,
		IsInStock:      p.IsInStock(),
		Specifications: specs,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func orderView(o *models.Order) OrderView {
	items := make([]OrderItemView, 0, len(o.Items))
	for _, line := range o.Items {
		items = append(items, OrderItemView{
			ProductName:  line.ProductName,
			ProductPrice: line.ProductPrice.StringFixed(2),
			Quantity:     line.Quantity,
			TotalPrice:   line.TotalPrice.StringFixed(2),
		})
	}
	return OrderView{
		ID:          o.ID,
		FirstName:   o.FirstName,
		LastName:    o.LastName,
		Email:       o.Email,
		Phone:       o.Phone,
		Address:     o.Address,
		City:        o.City,
		PostalCode:  o.PostalCode,
		Country:     o.Country,
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount.StringFixed(2),
		Items:       items,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
