package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/danuarts/woodshop/internal/container"
	handlers "github.com/danuarts/woodshop/internal/interface/http"
	"github.com/danuarts/woodshop/internal/interface/middleware"
)

// OrderModule wires the public order submission route.
// Public: POST /api/orders (rate limited per IP)
type OrderModule struct {
	Handler *handlers.OrderHandler
}

func NewOrderModule(h *handlers.OrderHandler) *OrderModule {
	return &OrderModule{Handler: h}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	orderLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIP(), nil)
	rg.POST("/orders", orderLimiter, m.Handler.PlaceOrder)
}
