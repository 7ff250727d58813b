package repository

import (
	"context"

	"github.com/danuarts/woodshop/internal/domain/entity"
)

// CatalogRepository defines persistence for products, categories and
// product images.
type CatalogRepository interface {
	// Products
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)
	ListProducts(ctx context.Context) ([]entity.Product, error)
	ListFeaturedProducts(ctx context.Context, limit int) ([]entity.Product, error)
	CreateProduct(ctx context.Context, p *entity.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	SetProductFeatured(ctx context.Context, id int64, featured bool) error
	AddProductImage(ctx context.Context, img *entity.ProductImage) error

	// Categories
	GetCategory(ctx context.Context, id int64) (*entity.Category, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
	ListProductsByCategory(ctx context.Context, categoryID int64) ([]entity.Product, error)
	CountProductsByCategory(ctx context.Context, categoryID int64) (int, error)
	CreateCategory(ctx context.Context, c *entity.Category) error
	DeleteCategory(ctx context.Context, id int64) error
}
