package entity

// Category groups products for browsing.
type Category struct {
	ID       int64
	Name     string
	ImageURL string
	Products []Product
}
