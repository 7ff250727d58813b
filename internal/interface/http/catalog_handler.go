package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/danuarts/woodshop/internal/application"
	"github.com/danuarts/woodshop/pkg/response"
)

// CatalogHandler serves the public storefront reads.
type CatalogHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewCatalogHandler(svc *application.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid id", nil)
		c.JSON(resp.Status, resp)
		return 0, false
	}
	return id, true
}

func (h *CatalogHandler) Home(c *gin.Context) {
	view, err := h.Svc.Home(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("home view failed")
		resp := response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{
		"categories": categoryViews(view.Categories),
		"featured":   productViews(view.Featured),
	}, "home", nil)
	c.JSON(resp.Status, resp)
}

func (h *CatalogHandler) CategoryDetail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cat, err := h.Svc.CategoryDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrCategoryNotFound) {
			resp := response.Error[any](c, http.StatusNotFound, "category not found", nil)
			c.JSON(resp.Status, resp)
			return
		}
		h.Logger.WithError(err).Error("category detail failed")
		resp := response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		c.JSON(resp.Status, resp)
		return
	}
	view := categoryView(cat)
	view["products"] = productViews(cat.Products)
	resp := response.Success(c, http.StatusOK, view, "category", nil)
	c.JSON(resp.Status, resp)
}

func (h *CatalogHandler) ProductDetail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.Svc.ProductDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			resp := response.Error[any](c, http.StatusNotFound, "product not found", nil)
			c.JSON(resp.Status, resp)
			return
		}
		h.Logger.WithError(err).Error("product detail failed")
		resp := response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, productView(p), "product", nil)
	c.JSON(resp.Status, resp)
}

func (h *CatalogHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		resp := response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		c.JSON(resp.Status, resp)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchProducts(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("product search failed")
		resp := response.Error[any](c, http.StatusInternalServerError, "search unavailable", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
	c.JSON(resp.Status, resp)
}
