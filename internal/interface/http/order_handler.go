package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/danuarts/woodshop/internal/application"
	"github.com/danuarts/woodshop/pkg/response"
	"github.com/danuarts/woodshop/pkg/validation"
)

type OrderHandler struct {
	Svc    *application.OrderService
	Logger *logrus.Logger
}

func NewOrderHandler(svc *application.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{Svc: svc, Logger: logger}
}

type placeOrderRequest struct {
	ProductID       int64  `json:"product_id" binding:"required"`
	Quantity        int    `json:"quantity" binding:"required,qty"`
	CustomerName    string `json:"customer_name" binding:"required"`
	CustomerEmail   string `json:"customer_email" binding:"required,email"`
	CustomerPhone   string `json:"customer_phone" binding:"required"`
	ShippingAddress string `json:"shipping_address" binding:"required"`
}

// PlaceOrder is the public order submission endpoint.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	o, err := h.Svc.PlaceOrder(c.Request.Context(), application.PlaceOrderInput{
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidQuantity):
			resp := response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
			c.JSON(resp.Status, resp)
		case errors.Is(err, application.ErrProductNotFound):
			resp := response.Error[any](c, http.StatusNotFound, "product not found", nil)
			c.JSON(resp.Status, resp)
		case errors.Is(err, application.ErrInsufficientStock):
			resp := response.Error[any](c, http.StatusConflict, "insufficient stock", nil)
			c.JSON(resp.Status, resp)
		default:
			h.Logger.WithError(err).Error("place order failed")
			resp := response.Error[any](c, http.StatusInternalServerError, "could not place order", nil)
			c.JSON(resp.Status, resp)
		}
		return
	}

	resp := response.Success(c, http.StatusCreated, orderView(o), "order placed", nil)
	c.JSON(resp.Status, resp)
}

// Dashboard lists all orders newest first (admin).
func (h *OrderHandler) Dashboard(c *gin.Context) {
	orders, err := h.Svc.ListOrders(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("dashboard failed")
		resp := response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, orderViews(orders), "orders", map[string]any{"count": len(orders)})
	c.JSON(resp.Status, resp)
}

// ToggleDone flips the fulfillment flag on an order (admin).
func (h *OrderHandler) ToggleDone(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	done, err := h.Svc.ToggleDone(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrOrderNotFound) {
			resp := response.Error[any](c, http.StatusNotFound, "order not found", nil)
			c.JSON(resp.Status, resp)
			return
		}
		h.Logger.WithError(err).Error("toggle done failed")
		resp := response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{"id": id, "done": done}, "order updated", nil)
	c.JSON(resp.Status, resp)
}
