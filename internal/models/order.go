package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order. Transitions are made by
// back-office tooling; the API only assigns the initial state.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// DefaultCountry is used when an order does not name a shipping country.
const DefaultCountry = "Russia"

// Order is a customer order with its snapshot line items.
type Order struct {
	ID          int64           `db:"id" json:"id"`
	FirstName   string          `db:"first_name" json:"first_name"`
	LastName    string          `db:"last_name" json:"last_name"`
	Email       string          `db:"email" json:"email"`
	Phone       string          `db:"phone" json:"phone"`
	Address     string          `db:"address" json:"address"`
	City        string          `db:"city" json:"city"`
	PostalCode  string          `db:"postal_code" json:"postal_code"`
	Country     string          `db:"country" json:"country"`
	Status      OrderStatus     `db:"status" json:"status"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`
	Items       []OrderLine     `db:"-" json:"items"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// FullName returns "First Last".
func (o *Order) FullName() string {
	return o.FirstName + " " + o.LastName
}

// RecalculateTotal sets TotalAmount to the sum of line totals.
func (o *Order) RecalculateTotal() {
	total := decimal.Zero
	for _, line := range o.Items {
		total = total.Add(line.TotalPrice)
	}
	o.TotalAmount = total
}

// OrderLine is a point-in-time copy of a product's name and price. It never
// references the live catalog row, so later catalog edits or deletions do
// not change historical orders.
type OrderLine struct {
	ID           int64           `db:"id" json:"-"`
	OrderID      int64           `db:"order_id" json:"-"`
	ProductName  string          `db:"product_name" json:"product_name"`
	ProductPrice decimal.Decimal `db:"product_price" json:"product_price"`
	Quantity     int             `db:"quantity" json:"quantity"`
	TotalPrice   decimal.Decimal `db:"total_price" json:"total_price"`
}

// NewOrderLine builds a line with its total derived from price and quantity.
func NewOrderLine(name string, price decimal.Decimal, quantity int) OrderLine {
	return OrderLine{
		ProductName:  name,
		ProductPrice: price,
		Quantity:     quantity,
		TotalPrice:   price.Mul(decimal.NewFromInt(int64(quantity))),
	}
}
