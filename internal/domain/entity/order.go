package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a customer purchase of a single product. TotalPrice and
// OrderDate are immutable snapshots taken at placement time; Done is
// the only field mutated afterwards (fulfillment toggle).
type Order struct {
	ID              int64
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	Quantity        int
	TotalPrice      decimal.Decimal
	OrderDate       time.Time
	Done            bool
	ProductID       int64

	// Denormalized for listings; not persisted on the orders row.
	ProductName string
}
