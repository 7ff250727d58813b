package application

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danuarts/woodshop/internal/domain/entity"
	repo "github.com/danuarts/woodshop/internal/domain/repository"
)

type fakeCatalogRepo struct {
	products     map[int64]*entity.Product
	categories   map[int64]*entity.Category
	orderedIDs   map[int64]bool // product ids referenced by orders
	nextProduct  int64
	nextCategory int64
	images       []entity.ProductImage
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		products:   map[int64]*entity.Product{},
		categories: map[int64]*entity.Category{},
		orderedIDs: map[int64]bool{},
	}
}

func (f *fakeCatalogRepo) addCategory(name string) int64 {
	f.nextCategory++
	f.categories[f.nextCategory] = &entity.Category{ID: f.nextCategory, Name: name}
	return f.nextCategory
}

func (f *fakeCatalogRepo) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeCatalogRepo) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeCatalogRepo) ListFeaturedProducts(ctx context.Context, limit int) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range f.products {
		if p.IsFeatured && len(out) < limit {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) CreateProduct(ctx context.Context, p *entity.Product) error {
	f.nextProduct++
	p.ID = f.nextProduct
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeCatalogRepo) DeleteProduct(ctx context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return repo.ErrNotFound
	}
	if f.orderedIDs[id] {
		return repo.ErrConflict
	}
	delete(f.products, id)
	return nil
}

func (f *fakeCatalogRepo) SetProductFeatured(ctx context.Context, id int64, featured bool) error {
	p, ok := f.products[id]
	if !ok {
		return repo.ErrNotFound
	}
	p.IsFeatured = featured
	return nil
}

func (f *fakeCatalogRepo) AddProductImage(ctx context.Context, img *entity.ProductImage) error {
	img.ID = int64(len(f.images) + 1)
	f.images = append(f.images, *img)
	return nil
}

func (f *fakeCatalogRepo) GetCategory(ctx context.Context, id int64) (*entity.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCatalogRepo) ListCategories(ctx context.Context) ([]entity.Category, error) {
	var out []entity.Category
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCatalogRepo) ListProductsByCategory(ctx context.Context, categoryID int64) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range f.products {
		if p.CategoryID == categoryID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) CountProductsByCategory(ctx context.Context, categoryID int64) (int, error) {
	n := 0
	for _, p := range f.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (f *fakeCatalogRepo) CreateCategory(ctx context.Context, c *entity.Category) error {
	f.nextCategory++
	c.ID = f.nextCategory
	cp := *c
	f.categories[c.ID] = &cp
	return nil
}

func (f *fakeCatalogRepo) DeleteCategory(ctx context.Context, id int64) error {
	if _, ok := f.categories[id]; !ok {
		return repo.ErrNotFound
	}
	for _, p := range f.products {
		if p.CategoryID == id {
			return repo.ErrConflict
		}
	}
	delete(f.categories, id)
	return nil
}

// fakeImageStore records saved files and hands out deterministic paths.
type fakeImageStore struct {
	saved []string
}

func (f *fakeImageStore) Save(ctx context.Context, r io.Reader, originalName, contentType string) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	path := fmt.Sprintf("/uploads/file-%d%s", len(f.saved), strings.ToLower(originalName[strings.LastIndex(originalName, "."):]))
	f.saved = append(f.saved, path)
	return path, nil
}

func newCatalogFixture() (*CatalogService, *fakeCatalogRepo, *fakeImageStore) {
	fakeRepo := newFakeCatalogRepo()
	store := &fakeImageStore{}
	svc := NewCatalogService(fakeRepo, store, nil, 0, nil, nil, "")
	return svc, fakeRepo, store
}

func TestCreateProductWithImages(t *testing.T) {
	svc, fakeRepo, store := newCatalogFixture()
	catID := fakeRepo.addCategory("Tables")

	in := CreateProductInput{
		Name:       "Oak dining table",
		Price:      decimal.RequireFromString("499.00"),
		Stock:      5,
		IsFeatured: true,
		CategoryID: catID,
	}
	main := &ImageUpload{Reader: bytes.NewReader([]byte("img")), Filename: "table.JPG", ContentType: "image/jpeg"}
	extra := []ImageUpload{
		{Reader: bytes.NewReader([]byte("a")), Filename: "side.png", ContentType: "image/png"},
		{Reader: bytes.NewReader([]byte("b")), Filename: "top.png", ContentType: "image/png"},
	}

	p, err := svc.CreateProduct(context.Background(), in, main, extra)
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "/uploads/file-0.jpg", p.MainImage)
	assert.Len(t, p.Images, 2)
	assert.Len(t, store.saved, 3)
	assert.Len(t, fakeRepo.images, 2)
}

func TestCreateProductValidation(t *testing.T) {
	svc, fakeRepo, _ := newCatalogFixture()
	catID := fakeRepo.addCategory("Tables")

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name: "x", Price: decimal.RequireFromString("-1"), CategoryID: catID,
	}, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = svc.CreateProduct(context.Background(), CreateProductInput{
		Name: "x", Price: decimal.Zero, Stock: -1, CategoryID: catID,
	}, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidStock)

	_, err = svc.CreateProduct(context.Background(), CreateProductInput{
		Name: "x", Price: decimal.Zero, CategoryID: 999,
	}, nil, nil)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestToggleFeatured(t *testing.T) {
	svc, fakeRepo, _ := newCatalogFixture()
	catID := fakeRepo.addCategory("Tables")
	p, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name: "Bench", Price: decimal.RequireFromString("120.00"), CategoryID: catID,
	}, nil, nil)
	require.NoError(t, err)

	featured, err := svc.ToggleFeatured(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, featured)

	featured, err = svc.ToggleFeatured(context.Background(), p.ID)
	require.NoError(t, err)
	assert.False(t, featured)

	_, err = svc.ToggleFeatured(context.Background(), 999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProductRestrictedWhenOrdered(t *testing.T) {
	svc, fakeRepo, _ := newCatalogFixture()
	catID := fakeRepo.addCategory("Tables")
	p, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name: "Bench", Price: decimal.RequireFromString("120.00"), CategoryID: catID,
	}, nil, nil)
	require.NoError(t, err)

	fakeRepo.orderedIDs[p.ID] = true
	err = svc.DeleteProduct(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrProductReferenced)
	_, ok := fakeRepo.products[p.ID]
	assert.True(t, ok, "restricted delete must leave the product in place")

	fakeRepo.orderedIDs[p.ID] = false
	require.NoError(t, svc.DeleteProduct(context.Background(), p.ID))
	_, ok = fakeRepo.products[p.ID]
	assert.False(t, ok)
}

func TestDeleteCategoryRestrictedWhenNotEmpty(t *testing.T) {
	svc, fakeRepo, _ := newCatalogFixture()
	catID := fakeRepo.addCategory("Tables")
	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name: "Bench", Price: decimal.RequireFromString("120.00"), CategoryID: catID,
	}, nil, nil)
	require.NoError(t, err)

	err = svc.DeleteCategory(context.Background(), catID)
	assert.ErrorIs(t, err, ErrCategoryNotEmpty)

	count, err := svc.CategoryProductCount(context.Background(), catID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = svc.CategoryProductCount(context.Background(), 999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
