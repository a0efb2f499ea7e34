package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/GTDGit/store_api/internal/models"
	"github.com/GTDGit/store_api/internal/utils"
)

// Order validation messages, in the priority they are reported.
const (
	MsgInvalidItems   = "Invalid order items. Please check product prices and quantities."
	MsgInvalidContact = "Please fill in all required contact information correctly."
	MsgInvalidAddress = "Please provide a complete delivery address."
	MsgValidation     = "Validation failed"
)

// maxQuantity and maxOrderAmount are the largest values the order_items
// quantity (INTEGER) and total columns (NUMERIC(12,2)) hold.
const maxQuantity = math.MaxInt32

var maxOrderAmount = decimal.New(1, 10)

var (
	contactFields = map[string]bool{"first_name": true, "last_name": true, "email": true, "phone": true}
	addressFields = map[string]bool{"address": true, "city": true, "postal_code": true}
)

// ProductLookup resolves catalog products by slug.
type ProductLookup interface {
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
}

// OrderService handles order intake.
type OrderService struct {
	orders   OrderStore
	products ProductLookup
}

// NewOrderService constructs an OrderService.
func NewOrderService(orders OrderStore, products ProductLookup) *OrderService {
	return &OrderService{orders: orders, products: products}
}

// OrderItemRequest is one requested order line. When ProductSlug is set the
// line is priced from the catalog and the supplied name and price may be
// omitted; otherwise CreateOrder requires both.
type OrderItemRequest struct {
	ProductName  string           `json:"product_name" binding:"max=200"`
	ProductPrice *decimal.Decimal `json:"product_price"`
	Quantity     int              `json:"quantity" binding:"min=1,max=2147483647"`
	ProductSlug  string           `json:"product_slug" binding:"omitempty,max=220"`
}

// CreateOrderRequest represents a customer checkout.
type CreateOrderRequest struct {
	FirstName  string             `json:"first_name" binding:"required,max=50"`
	LastName   string             `json:"last_name" binding:"required,max=50"`
	Email      string             `json:"email" binding:"required,email,max=254"`
	Phone      string             `json:"phone" binding:"required,max=20"`
	Address    string             `json:"address" binding:"required"`
	City       string             `json:"city" binding:"required,max=100"`
	PostalCode string             `json:"postal_code" binding:"required,max=20"`
	Country    string             `json:"country" binding:"omitempty,max=100"`
	Items      []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderValidationMessage picks the summary message for a failed order from
// the fields that failed: item problems first, then contact, then address.
func OrderValidationMessage(details utils.FieldErrors) string {
	switch {
	case details.Has(func(f string) bool { return strings.HasPrefix(f, "items") }):
		return MsgInvalidItems
	case details.Has(func(f string) bool { return contactFields[f] }):
		return MsgInvalidContact
	case details.Has(func(f string) bool { return addressFields[f] }):
		return MsgInvalidAddress
	}
	return MsgValidation
}

// CreateOrder validates req, prices its lines and stores the order with all
// of its lines atomically. Nothing is stored when validation fails.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	details := utils.FieldErrors{}
	required := map[string]string{
		"first_name":  req.FirstName,
		"last_name":   req.LastName,
		"email":       req.Email,
		"phone":       req.Phone,
		"address":     req.Address,
		"city":        req.City,
		"postal_code": req.PostalCode,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			details.Add(field, "This field is required.")
		}
	}
	if len(req.Items) == 0 {
		details.Add("items", "Order must contain at least one item.")
	}

	lines, err := s.priceLines(ctx, details, req.Items)
	if err != nil {
		return nil, err
	}

	if len(details) > 0 {
		return nil, &utils.ValidationError{Message: OrderValidationMessage(details), Details: details}
	}

	country := strings.TrimSpace(req.Country)
	if country == "" {
		country = models.DefaultCountry
	}
	order := &models.Order{
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		Address:    strings.TrimSpace(req.Address),
		City:       strings.TrimSpace(req.City),
		PostalCode: strings.TrimSpace(req.PostalCode),
		Country:    country,
		Status:     models.OrderStatusPending,
		Items:      lines,
	}
	order.RecalculateTotal()

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}

	log.Info().
		Int64("order_id", order.ID).
		Int("items", len(order.Items)).
		Str("total", order.TotalAmount.StringFixed(2)).
		Msg("Order created")
	return order, nil
}

// GetOrder returns the order with its lines.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// ItemErrors runs only the item checks of CreateOrder against req. It lets a
// caller that rejected the request earlier still report item problems, which
// take priority over contact and address problems.
func (s *OrderService) ItemErrors(ctx context.Context, req *CreateOrderRequest) (utils.FieldErrors, error) {
	details := utils.FieldErrors{}
	if _, err := s.priceLines(ctx, details, req.Items); err != nil {
		return nil, err
	}
	return details, nil
}

// priceLines prices every item and checks the order total fits the orders
// table. Lines with problems are left out of the result.
func (s *OrderService) priceLines(ctx context.Context, details utils.FieldErrors, items []OrderItemRequest) ([]models.OrderLine, error) {
	lines := make([]models.OrderLine, 0, len(items))
	total := decimal.Zero
	for i, item := range items {
		line, ok, err := s.priceLine(ctx, details, i, item)
		if err != nil {
			return nil, err
		}
		if ok {
			lines = append(lines, line)
			total = total.Add(line.TotalPrice)
		}
	}
	if total.GreaterThanOrEqual(maxOrderAmount) {
		details.Add("items", "Order total exceeds the maximum order amount.")
	}
	return lines, nil
}

// priceLine validates one requested item and builds its snapshot line. ok is
// false when the item has validation problems recorded in details.
func (s *OrderService) priceLine(ctx context.Context, details utils.FieldErrors, i int, item OrderItemRequest) (models.OrderLine, bool, error) {
	field := func(name string) string { return fmt.Sprintf("items[%d].%s", i, name) }
	ok := true

	switch {
	case item.Quantity < 1:
		details.Add(field("quantity"), "Ensure this value is greater than or equal to 1.")
		ok = false
	case item.Quantity > maxQuantity:
		details.Add(field("quantity"), fmt.Sprintf("Ensure this value is less than or equal to %d.", maxQuantity))
		ok = false
	}

	if slug := strings.TrimSpace(item.ProductSlug); slug != "" {
		product, err := s.products.GetBySlug(ctx, slug)
		switch {
		case errors.Is(err, utils.ErrProductNotFound) || (err == nil && !product.IsActive):
			details.Add(field("product_slug"), "Product is not available.")
			return models.OrderLine{}, false, nil
		case err != nil:
			return models.OrderLine{}, false, err
		}
		if !ok {
			return models.OrderLine{}, false, nil
		}
		return checkLineTotal(details, field("quantity"), models.NewOrderLine(product.Name, product.Price, item.Quantity))
	}

	if strings.TrimSpace(item.ProductName) == "" {
		details.Add(field("product_name"), "This field is required.")
		ok = false
	}
	if item.ProductPrice == nil {
		details.Add(field("product_price"), "This field is required.")
		ok = false
	} else {
		before := len(details[field("product_price")])
		validatePrice(details, field("product_price"), *item.ProductPrice)
		if len(details[field("product_price")]) > before {
			ok = false
		}
	}
	if !ok {
		return models.OrderLine{}, false, nil
	}
	return checkLineTotal(details, field("quantity"), models.NewOrderLine(strings.TrimSpace(item.ProductName), item.ProductPrice.Round(2), item.Quantity))
}

func checkLineTotal(details utils.FieldErrors, field string, line models.OrderLine) (models.OrderLine, bool, error) {
	if line.TotalPrice.GreaterThanOrEqual(maxOrderAmount) {
		details.Add(field, "Line total exceeds the maximum order amount.")
		return models.OrderLine{}, false, nil
	}
	return line, true, nil
}
