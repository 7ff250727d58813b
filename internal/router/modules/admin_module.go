package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/danuarts/woodshop/internal/container"
	handlers "github.com/danuarts/woodshop/internal/interface/http"
	"github.com/danuarts/woodshop/internal/interface/middleware"
	"github.com/danuarts/woodshop/pkg/helpers"
)

// AdminModule wires login plus the gated management surface.
// Public: POST /api/admin/login (rate limited per IP)
// Gated: everything else under /api/admin
type AdminModule struct {
	Auth   *handlers.AuthHandler
	Admin  *handlers.AdminHandler
	Orders *handlers.OrderHandler
	JWT    *helpers.JWTManager
}

func NewAdminModule(auth *handlers.AuthHandler, admin *handlers.AdminHandler, orders *handlers.OrderHandler, jwt *helpers.JWTManager) *AdminModule {
	return &AdminModule{Auth: auth, Admin: admin, Orders: orders, JWT: jwt}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.POST("/admin/login", loginLimiter, m.Auth.Login)

	// Every route below passes through the token gate.
	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(m.JWT))
	{
		admin.GET("/logout", m.Auth.Logout)
		admin.GET("/dashboard", m.Orders.Dashboard)
		admin.POST("/orders/:id/done", m.Orders.ToggleDone)

		admin.GET("/products", m.Admin.ListProducts)
		admin.POST("/products", m.Admin.AddProduct)
		admin.DELETE("/products/:id", m.Admin.DeleteProduct)
		admin.POST("/products/:id/feature", m.Admin.ToggleFeatured)

		admin.GET("/categories", m.Admin.ListCategories)
		admin.POST("/categories", m.Admin.AddCategory)
		admin.DELETE("/categories/:id", m.Admin.DeleteCategory)
		admin.GET("/categories/:id/product-count", m.Admin.CategoryProductCount)
	}
}
