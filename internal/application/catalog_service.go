package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/danuarts/woodshop/internal/domain/entity"
	repo "github.com/danuarts/woodshop/internal/domain/repository"
	"github.com/danuarts/woodshop/internal/infrastructure/files"
	"github.com/danuarts/woodshop/pkg/helpers"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrProductReferenced = errors.New("product is referenced by existing orders")
	ErrCategoryNotEmpty  = errors.New("category still has products")
	ErrInvalidPrice      = errors.New("price must be zero or positive")
	ErrInvalidStock      = errors.New("stock must be zero or positive")
)

const keyHome = "catalog:home"

func keyProduct(id int64) string {
	return "catalog:product:" + strconv.FormatInt(id, 10)
}

type CatalogService struct {
	Repo     repo.CatalogRepository
	Images   files.ImageStore
	Redis    *redis.Client
	CacheTTL time.Duration
	Logger   *logrus.Logger
	ES       *elasticsearch.Client
	ESIndex  string
}

func NewCatalogService(repository repo.CatalogRepository, images files.ImageStore, rdb *redis.Client, cacheTTL time.Duration, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *CatalogService {
	return &CatalogService{
		Repo:     repository,
		Images:   images,
		Redis:    rdb,
		CacheTTL: cacheTTL,
		Logger:   logger,
		ES:       es,
		ESIndex:  esIndex,
	}
}

// HomeView is the landing page payload: all categories plus up to
// eight featured products.
type HomeView struct {
	Categories []entity.Category `json:"categories"`
	Featured   []entity.Product  `json:"featured"`
}

func (s *CatalogService) Home(ctx context.Context) (*HomeView, error) {
	if s.Redis != nil {
		var cached HomeView
		if ok, _ := helpers.RedisGetJSON(ctx, s.Redis, keyHome, &cached); ok {
			return &cached, nil
		}
	}

	categories, err := s.Repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	featured, err := s.Repo.ListFeaturedProducts(ctx, 8)
	if err != nil {
		return nil, err
	}
	view := &HomeView{Categories: categories, Featured: featured}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, keyHome, view, s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("home cache write failed")
		}
	}
	return view, nil
}

// CategoryDetail returns the category with its products.
func (s *CatalogService) CategoryDetail(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	products, err := s.Repo.ListProductsByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Products = products
	return c, nil
}

func (s *CatalogService) ProductDetail(ctx context.Context, id int64) (*entity.Product, error) {
	if s.Redis != nil {
		var cached entity.Product
		if ok, _ := helpers.RedisGetJSON(ctx, s.Redis, keyProduct(id), &cached); ok {
			return &cached, nil
		}
	}

	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, keyProduct(id), p, s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("product cache write failed")
		}
	}
	return p, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.Repo.ListCategories(ctx)
}

// ImageUpload carries one uploaded file into the storage boundary.
type ImageUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	IsFeatured  bool
	CategoryID  int64
}

// CreateProduct stores the images, persists the product and its
// gallery rows, and indexes it for search.
func (s *CatalogService) CreateProduct(ctx context.Context, in CreateProductInput, main *ImageUpload, additional []ImageUpload) (*entity.Product, error) {
	if in.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}
	if in.Stock < 0 {
		return nil, ErrInvalidStock
	}
	if _, err := s.Repo.GetCategory(ctx, in.CategoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	p := &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		IsFeatured:  in.IsFeatured,
		CategoryID:  in.CategoryID,
	}

	if main != nil {
		path, err := s.Images.Save(ctx, main.Reader, main.Filename, main.ContentType)
		if err != nil {
			return nil, err
		}
		p.MainImage = path
	}

	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	for _, up := range additional {
		path, err := s.Images.Save(ctx, up.Reader, up.Filename, up.ContentType)
		if err != nil {
			return nil, err
		}
		img := entity.ProductImage{ProductID: p.ID, ImageURL: path}
		if err := s.Repo.AddProductImage(ctx, &img); err != nil {
			return nil, err
		}
		p.Images = append(p.Images, img)
	}

	s.invalidate(ctx, p.ID)
	s.indexProduct(ctx, p)
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return ErrProductNotFound
		case errors.Is(err, repo.ErrConflict):
			return ErrProductReferenced
		}
		return err
	}
	s.invalidate(ctx, id)
	s.deleteProductIndex(ctx, id)
	return nil
}

// ToggleFeatured flips the featured flag and returns the new value.
func (s *CatalogService) ToggleFeatured(ctx context.Context, id int64) (bool, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrProductNotFound
		}
		return false, err
	}
	featured := !p.IsFeatured
	if err := s.Repo.SetProductFeatured(ctx, id, featured); err != nil {
		return false, err
	}
	s.invalidate(ctx, id)
	return featured, nil
}

type CreateCategoryInput struct {
	Name string
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CreateCategoryInput, image *ImageUpload) (*entity.Category, error) {
	c := &entity.Category{Name: in.Name}
	if image != nil {
		path, err := s.Images.Save(ctx, image.Reader, image.Filename, image.ContentType)
		if err != nil {
			return nil, err
		}
		c.ImageURL = path
	}
	if err := s.Repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	s.invalidate(ctx, 0)
	return c, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return ErrCategoryNotFound
		case errors.Is(err, repo.ErrConflict):
			return ErrCategoryNotEmpty
		}
		return err
	}
	s.invalidate(ctx, 0)
	return nil
}

// CategoryProductCount reports how many products a category holds,
// used by the admin UI to warn before deletion.
func (s *CatalogService) CategoryProductCount(ctx context.Context, id int64) (int, error) {
	if _, err := s.Repo.GetCategory(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, ErrCategoryNotFound
		}
		return 0, err
	}
	return s.Repo.CountProductsByCategory(ctx, id)
}

func (s *CatalogService) invalidate(ctx context.Context, productID int64) {
	if s.Redis == nil {
		return
	}
	keys := []string{keyHome}
	if productID > 0 {
		keys = append(keys, keyProduct(productID))
	}
	if err := helpers.RedisDel(ctx, s.Redis, keys...); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("catalog cache invalidation failed")
	}
}

func (s *CatalogService) indexProduct(ctx context.Context, p *entity.Product) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.String(),
		"is_featured": p.IsFeatured,
		"category_id": p.CategoryID,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESIndex,
		DocumentID: strconv.FormatInt(p.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID).Warn("es index response error")
	}
}

func (s *CatalogService) deleteProductIndex(ctx context.Context, id int64) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// SearchProducts performs a simple multi_match search on name and description.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
