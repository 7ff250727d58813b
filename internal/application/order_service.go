package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/danuarts/woodshop/internal/domain/entity"
	repo "github.com/danuarts/woodshop/internal/domain/repository"
	"github.com/danuarts/woodshop/pkg/helpers"
	"github.com/danuarts/woodshop/pkg/mailer"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrOrderNotFound     = errors.New("order not found")
)

type OrderService struct {
	Orders repo.OrderRepository
	Pub    *helpers.RabbitPublisher
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewOrderService(orders repo.OrderRepository, pub *helpers.RabbitPublisher, rdb *redis.Client, logger *logrus.Logger) *OrderService {
	return &OrderService{Orders: orders, Pub: pub, Redis: rdb, Logger: logger}
}

type PlaceOrderInput struct {
	ProductID       int64
	Quantity        int
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
}

// PlaceOrder validates the request and commits the order together with
// the stock decrement in one transaction. TotalPrice and OrderDate are
// assigned at commit time inside that transaction.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*entity.Order, error) {
	if in.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	o := &entity.Order{
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		ShippingAddress: in.ShippingAddress,
		Quantity:        in.Quantity,
		ProductID:       in.ProductID,
	}

	if err := s.Orders.Place(ctx, o); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrProductNotFound
		case errors.Is(err, repo.ErrInsufficientStock):
			return nil, ErrInsufficientStock
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", in.ProductID).Error("order transaction failed")
		}
		return nil, err
	}

	// The order is committed; confirmation email and cache eviction are
	// best-effort side effects.
	s.publishConfirmation(ctx, o)
	s.invalidateProduct(ctx, o.ProductID)

	return o, nil
}

func (s *OrderService) publishConfirmation(ctx context.Context, o *entity.Order) {
	if s.Pub == nil || o.CustomerEmail == "" {
		return
	}
	job := mailer.OrderConfirmationJob{
		To:           o.CustomerEmail,
		CustomerName: o.CustomerName,
		OrderID:      o.ID,
		ProductName:  o.ProductName,
		Quantity:     o.Quantity,
		TotalPrice:   o.TotalPrice.StringFixed(2),
		OrderDate:    o.OrderDate.UTC().Format(time.RFC3339),
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("order_id", o.ID).Warn("publish order confirmation failed")
	}
}

func (s *OrderService) invalidateProduct(ctx context.Context, productID int64) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, keyProduct(productID), keyHome); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("catalog cache invalidation failed")
	}
}

// ListOrders returns all orders newest first for the dashboard.
func (s *OrderService) ListOrders(ctx context.Context) ([]entity.Order, error) {
	return s.Orders.ListAll(ctx)
}

// ToggleDone flips the fulfillment flag and returns the new value.
func (s *OrderService) ToggleDone(ctx context.Context, id int64) (bool, error) {
	done, err := s.Orders.ToggleDone(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrOrderNotFound
		}
		return false, err
	}
	return done, nil
}
