package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danuarts/woodshop/internal/domain/entity"
	repo "github.com/danuarts/woodshop/internal/domain/repository"
)

// fakeOrderRepo mirrors the transactional semantics of the postgres
// implementation: the stock check and decrement happen under one lock,
// and a failed placement mutates nothing.
type fakeOrderRepo struct {
	mu       sync.Mutex
	stock    map[int64]int
	price    map[int64]decimal.Decimal
	names    map[int64]string
	orders   []entity.Order
	nextID   int64
	placeErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		stock: map[int64]int{},
		price: map[int64]decimal.Decimal{},
		names: map[int64]string{},
	}
}

func (f *fakeOrderRepo) addProduct(id int64, name string, price string, stock int) {
	f.price[id] = decimal.RequireFromString(price)
	f.names[id] = name
	f.stock[id] = stock
}

func (f *fakeOrderRepo) Place(ctx context.Context, o *entity.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.placeErr != nil {
		return f.placeErr
	}
	stock, ok := f.stock[o.ProductID]
	if !ok {
		return repo.ErrNotFound
	}
	if o.Quantity > stock {
		return repo.ErrInsufficientStock
	}
	f.stock[o.ProductID] = stock - o.Quantity
	f.nextID++
	o.ID = f.nextID
	o.OrderDate = time.Now()
	o.TotalPrice = f.price[o.ProductID].Mul(decimal.NewFromInt(int64(o.Quantity)))
	o.ProductName = f.names[o.ProductID]
	f.orders = append(f.orders, *o)
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.orders {
		if f.orders[i].ID == id {
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeOrderRepo) ListAll(ctx context.Context) ([]entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Order, len(f.orders))
	copy(out, f.orders)
	return out, nil
}

func (f *fakeOrderRepo) SetDone(ctx context.Context, id int64, done bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Done = done
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeOrderRepo) ToggleDone(ctx context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Done = !f.orders[i].Done
			return f.orders[i].Done, nil
		}
	}
	return false, repo.ErrNotFound
}

func orderInput(productID int64, qty int) PlaceOrderInput {
	return PlaceOrderInput{
		ProductID:       productID,
		Quantity:        qty,
		CustomerName:    "Jo Carpenter",
		CustomerEmail:   "jo@example.com",
		CustomerPhone:   "+15550100",
		ShippingAddress: "1 Sawmill Road",
	}
}

func TestPlaceOrderSuccess(t *testing.T) {
	fake := newFakeOrderRepo()
	fake.addProduct(7, "Oak table", "10.00", 3)
	svc := NewOrderService(fake, nil, nil, nil)

	o, err := svc.PlaceOrder(context.Background(), orderInput(7, 2))
	require.NoError(t, err)

	assert.Equal(t, int64(7), o.ProductID)
	assert.Equal(t, 2, o.Quantity)
	assert.True(t, o.TotalPrice.Equal(decimal.RequireFromString("20.00")), "total %s", o.TotalPrice)
	assert.False(t, o.OrderDate.IsZero())
	assert.False(t, o.Done)
	assert.Equal(t, 1, fake.stock[7])
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	fake := newFakeOrderRepo()
	fake.addProduct(7, "Oak table", "10.00", 3)
	svc := NewOrderService(fake, nil, nil, nil)

	// drain most of the stock first
	_, err := svc.PlaceOrder(context.Background(), orderInput(7, 2))
	require.NoError(t, err)

	_, err = svc.PlaceOrder(context.Background(), orderInput(7, 5))
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 1, fake.stock[7], "failed order must not touch stock")
	assert.Len(t, fake.orders, 1, "failed order must not be recorded")
}

func TestPlaceOrderProductNotFound(t *testing.T) {
	fake := newFakeOrderRepo()
	svc := NewOrderService(fake, nil, nil, nil)

	_, err := svc.PlaceOrder(context.Background(), orderInput(99, 1))
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Empty(t, fake.orders)
}

func TestPlaceOrderRejectsNonPositiveQuantity(t *testing.T) {
	fake := newFakeOrderRepo()
	fake.addProduct(7, "Oak table", "10.00", 3)
	svc := NewOrderService(fake, nil, nil, nil)

	for _, qty := range []int{0, -1, -100} {
		_, err := svc.PlaceOrder(context.Background(), orderInput(7, qty))
		assert.ErrorIs(t, err, ErrInvalidQuantity, "qty=%d", qty)
	}
	assert.Equal(t, 3, fake.stock[7])
	assert.Empty(t, fake.orders)
}

func TestPlaceOrderPropagatesStorageError(t *testing.T) {
	fake := newFakeOrderRepo()
	fake.addProduct(7, "Oak table", "10.00", 3)
	fake.placeErr = errors.New("connection reset")
	svc := NewOrderService(fake, nil, nil, nil)

	_, err := svc.PlaceOrder(context.Background(), orderInput(7, 1))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 3, fake.stock[7])
	assert.Empty(t, fake.orders)
}

func TestConcurrentOrdersLastUnit(t *testing.T) {
	fake := newFakeOrderRepo()
	fake.addProduct(7, "Oak table", "10.00", 1)
	svc := NewOrderService(fake, nil, nil, nil)

	const n = 20
	results := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.PlaceOrder(context.Background(), orderInput(7, 1))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, insufficient int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes, "exactly one order may win the last unit")
	assert.Equal(t, n-1, insufficient)
	assert.Equal(t, 0, fake.stock[7])
	assert.Len(t, fake.orders, 1)
}

func TestToggleDone(t *testing.T) {
	fake := newFakeOrderRepo()
	fake.addProduct(7, "Oak table", "10.00", 3)
	svc := NewOrderService(fake, nil, nil, nil)

	o, err := svc.PlaceOrder(context.Background(), orderInput(7, 1))
	require.NoError(t, err)

	done, err := svc.ToggleDone(context.Background(), o.ID)
	require.NoError(t, err)
	assert.True(t, done)

	done, err = svc.ToggleDone(context.Background(), o.ID)
	require.NoError(t, err)
	assert.False(t, done)

	_, err = svc.ToggleDone(context.Background(), 999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
