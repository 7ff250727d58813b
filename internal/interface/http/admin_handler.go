package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/danuarts/woodshop/internal/application"
	"github.com/danuarts/woodshop/pkg/response"
)

// AdminHandler serves the gated catalog management surface.
type AdminHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewAdminHandler(svc *application.CatalogService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Logger: logger}
}

func (h *AdminHandler) ListProducts(c *gin.Context) {
	products, err := h.Svc.ListProducts(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list products failed")
		resp := response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, productViews(products), "products", map[string]any{"count": len(products)})
	c.JSON(resp.Status, resp)
}

// openUpload converts one multipart file header into a service upload.
// The returned closer must be closed by the caller.
func openUpload(fh *multipart.FileHeader) (*application.ImageUpload, multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &application.ImageUpload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}, f, nil
}

// AddProduct accepts a multipart form: name, description, price, stock,
// is_featured, category_id, plus main_image and additional_images files.
func (h *AdminHandler) AddProduct(c *gin.Context) {
	price, perr := decimal.NewFromString(c.PostForm("price"))
	stock, serr := strconv.Atoi(c.DefaultPostForm("stock", "0"))
	categoryID, cerr := strconv.ParseInt(c.PostForm("category_id"), 10, 64)
	name := c.PostForm("name")
	if perr != nil || serr != nil || cerr != nil || name == "" {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", nil)
		c.JSON(resp.Status, resp)
		return
	}
	isFeatured, _ := strconv.ParseBool(c.DefaultPostForm("is_featured", "false"))

	in := application.CreateProductInput{
		Name:        name,
		Description: c.PostForm("description"),
		Price:       price,
		Stock:       stock,
		IsFeatured:  isFeatured,
		CategoryID:  categoryID,
	}

	var main *application.ImageUpload
	if fh, err := c.FormFile("main_image"); err == nil {
		up, f, err := openUpload(fh)
		if err != nil {
			resp := response.Error[any](c, http.StatusBadRequest, "could not read main image", nil)
			c.JSON(resp.Status, resp)
			return
		}
		defer func() { _ = f.Close() }()
		main = up
	}

	var additional []application.ImageUpload
	if form, err := c.MultipartForm(); err == nil {
		for _, fh := range form.File["additional_images"] {
			up, f, err := openUpload(fh)
			if err != nil {
				resp := response.Error[any](c, http.StatusBadRequest, "could not read image", nil)
				c.JSON(resp.Status, resp)
				return
			}
			defer func() { _ = f.Close() }()
			additional = append(additional, *up)
		}
	}

	p, err := h.Svc.CreateProduct(c.Request.Context(), in, main, additional)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrCategoryNotFound):
			resp := response.Error[any](c, http.StatusBadRequest, "category not found", nil)
			c.JSON(resp.Status, resp)
		case errors.Is(err, application.ErrInvalidPrice), errors.Is(err, application.ErrInvalidStock):
			resp := response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
			c.JSON(resp.Status, resp)
		default:
			h.Logger.WithError(err).Error("add product failed")
			resp := response.Error[any](c, http.StatusInternalServerError, "could not add product", nil)
			c.JSON(resp.Status, resp)
		}
		return
	}

	resp := response.Success(c, http.StatusCreated, productView(p), "product added", nil)
	c.JSON(resp.Status, resp)
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteProduct(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, application.ErrProductNotFound):
			resp := response.Error[any](c, http.StatusNotFound, "product not found", nil)
			c.JSON(resp.Status, resp)
		case errors.Is(err, application.ErrProductReferenced):
			resp := response.Error[any](c, http.StatusConflict, "product has orders and cannot be deleted", nil)
			c.JSON(resp.Status, resp)
		default:
			h.Logger.WithError(err).Error("delete product failed")
			resp := response.Error[any](c, http.StatusInternalServerError, "could not delete product", nil)
			c.JSON(resp.Status, resp)
		}
		return
	}
	resp := response.Success[any](c, http.StatusOK, gin.H{"id": id}, "product deleted", nil)
	c.JSON(resp.Status, resp)
}

func (h *AdminHandler) ToggleFeatured(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	featured, err := h.Svc.ToggleFeatured(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			resp := response.Error[any](c, http.StatusNotFound, "product not found", nil)
			c.JSON(resp.Status, resp)
			return
		}
		h.Logger.WithError(err).Error("toggle featured failed")
		resp := response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{"id": id, "is_featured": featured}, "product updated", nil)
	c.JSON(resp.Status, resp)
}

func (h *AdminHandler) ListCategories(c *gin.Context) {
	categories, err := h.Svc.ListCategories(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list categories failed")
		resp := response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, categoryViews(categories), "categories", map[string]any{"count": len(categories)})
	c.JSON(resp.Status, resp)
}

// AddCategory accepts a multipart form: name plus an optional
// category_image file.
func (h *AdminHandler) AddCategory(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"name": "is required"})
		c.JSON(resp.Status, resp)
		return
	}

	var image *application.ImageUpload
	if fh, err := c.FormFile("category_image"); err == nil {
		up, f, err := openUpload(fh)
		if err != nil {
			resp := response.Error[any](c, http.StatusBadRequest, "could not read image", nil)
			c.JSON(resp.Status, resp)
			return
		}
		defer func() { _ = f.Close() }()
		image = up
	}

	cat, err := h.Svc.CreateCategory(c.Request.Context(), application.CreateCategoryInput{Name: name}, image)
	if err != nil {
		h.Logger.WithError(err).Error("add category failed")
		resp := response.Error[any](c, http.StatusInternalServerError, "could not add category", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusCreated, categoryView(cat), "category added", nil)
	c.JSON(resp.Status, resp)
}

func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteCategory(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, application.ErrCategoryNotFound):
			resp := response.Error[any](c, http.StatusNotFound, "category not found", nil)
			c.JSON(resp.Status, resp)
		case errors.Is(err, application.ErrCategoryNotEmpty):
			resp := response.Error[any](c, http.StatusConflict, "category still has products", nil)
			c.JSON(resp.Status, resp)
		default:
			h.Logger.WithError(err).Error("delete category failed")
			resp := response.Error[any](c, http.StatusInternalServerError, "could not delete category", nil)
			c.JSON(resp.Status, resp)
		}
		return
	}
	resp := response.Success[any](c, http.StatusOK, gin.H{"id": id}, "category deleted", nil)
	c.JSON(resp.Status, resp)
}

// CategoryProductCount reports how many products reference a category.
func (h *AdminHandler) CategoryProductCount(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	count, err := h.Svc.CategoryProductCount(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrCategoryNotFound) {
			resp := response.Error[any](c, http.StatusNotFound, "category not found", nil)
			c.JSON(resp.Status, resp)
			return
		}
		h.Logger.WithError(err).Error("category product count failed")
		resp := response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{"count": count}, "product count", nil)
	c.JSON(resp.Status, resp)
}
