package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/danuarts/woodshop/internal/interface/http"
)

// CatalogModule wires the public storefront routes.
// Public: GET /api/home, GET /api/categories/:id, GET /api/products/:id,
// GET /api/search
type CatalogModule struct {
	Handler *handlers.CatalogHandler
}

func NewCatalogModule(h *handlers.CatalogHandler) *CatalogModule {
	return &CatalogModule{Handler: h}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	rg.GET("/home", m.Handler.Home)
	rg.GET("/categories/:id", m.Handler.CategoryDetail)
	rg.GET("/products/:id", m.Handler.ProductDetail)
	rg.GET("/search", m.Handler.Search)
}
