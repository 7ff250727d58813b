package entity

import (
	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item. Stock is a finite counter and
// must never go negative; the only mutators are the order placement
// transaction and explicit admin edits.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	MainImage   string
	Stock       int
	IsFeatured  bool
	CategoryID  int64
	Images      []ProductImage
}

// ProductImage is an additional gallery image attached to a product.
type ProductImage struct {
	ID        int64
	ProductID int64
	ImageURL  string
	IsPrimary bool
}
