package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danuarts/woodshop/internal/domain/entity"
	"github.com/danuarts/woodshop/internal/domain/repository"
)

// foreign key violation
const pgFKViolation = "23503"

type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

const productColumns = `id, name, description, price, main_image, stock, is_featured, category_id`

func scanProduct(row pgx.Row, p *entity.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.MainImage,
		&p.Stock, &p.IsFeatured, &p.CategoryID)
}

func (r *CatalogRepository) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	p := &entity.Product{}
	row := r.pool.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id)
	if err := scanProduct(row, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, image_url, is_primary
		FROM product_images
		WHERE product_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var img entity.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.ImageURL, &img.IsPrimary); err != nil {
			return nil, err
		}
		p.Images = append(p.Images, img)
	}
	return p, rows.Err()
}

func (r *CatalogRepository) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return r.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY id
	`)
}

func (r *CatalogRepository) ListFeaturedProducts(ctx context.Context, limit int) ([]entity.Product, error) {
	return r.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE is_featured
		ORDER BY id
		LIMIT $1
	`, limit)
}

func (r *CatalogRepository) ListProductsByCategory(ctx context.Context, categoryID int64) ([]entity.Product, error) {
	return r.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE category_id = $1
		ORDER BY id
	`, categoryID)
}

func (r *CatalogRepository) queryProducts(ctx context.Context, sql string, args ...any) ([]entity.Product, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *CatalogRepository) CreateProduct(ctx context.Context, p *entity.Product) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (name, description, price, main_image, stock, is_featured, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, p.Name, p.Description, p.Price, p.MainImage, p.Stock, p.IsFeatured, p.CategoryID)
	return row.Scan(&p.ID)
}

// DeleteProduct removes the product row. Products referenced by orders
// are protected by a RESTRICT constraint; the violation surfaces as
// ErrConflict instead of silently skipping the delete.
func (r *CatalogRepository) DeleteProduct(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgFKViolation {
			return repository.ErrConflict
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CatalogRepository) SetProductFeatured(ctx context.Context, id int64, featured bool) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE products SET is_featured = $1 WHERE id = $2
	`, featured, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CatalogRepository) AddProductImage(ctx context.Context, img *entity.ProductImage) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO product_images (product_id, image_url, is_primary)
		VALUES ($1, $2, $3)
		RETURNING id
	`, img.ProductID, img.ImageURL, img.IsPrimary)
	return row.Scan(&img.ID)
}

func (r *CatalogRepository) GetCategory(ctx context.Context, id int64) (*entity.Category, error) {
	c := &entity.Category{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, image_url
		FROM categories
		WHERE id = $1
	`, id)
	if err := row.Scan(&c.ID, &c.Name, &c.ImageURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]entity.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, image_url
		FROM categories
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ImageURL); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CatalogRepository) CountProductsByCategory(ctx context.Context, categoryID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM products WHERE category_id = $1
	`, categoryID).Scan(&count)
	return count, err
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, c *entity.Category) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name, image_url)
		VALUES ($1, $2)
		RETURNING id
	`, c.Name, c.ImageURL)
	return row.Scan(&c.ID)
}

// DeleteCategory removes the category row. Categories that still have
// products fail with ErrConflict (restrict policy).
func (r *CatalogRepository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgFKViolation {
			return repository.ErrConflict
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CatalogRepository = (*CatalogRepository)(nil)
