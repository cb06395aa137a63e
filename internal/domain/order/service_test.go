package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitzone/internal/database/dbtest"
	"fitzone/internal/domain/cart"
	"fitzone/internal/domain/pricing"
	"fitzone/internal/domain/product"
	"fitzone/internal/pkg/cache"
	"fitzone/internal/pkg/events"
	"fitzone/internal/pkg/pagination"
)

type recorder struct {
	got []events.Event
}

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.got = append(r.got, e)
	return nil
}

func (r *recorder) types() []string {
	out := make([]string, 0, len(r.got))
	for _, e := range r.got {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	svc      *Service
	repo     *Repository
	cart     *cart.Service
	products *product.Repository
	events   *recorder
	mat      *product.Product
	bottle   *product.Product
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t, &product.Product{}, &cart.CartItem{}, &Order{}, &OrderItem{})

	productRepo := product.NewRepository(db)
	catalog := product.NewService(productRepo, cache.NewMemory(), time.Minute, nil)
	ctx := context.Background()
	mat, err := catalog.Create(ctx, product.CreateProductRequest{Name: "Yoga Mat", Category: "gear", Price: 800, Stock: 3})
	require.NoError(t, err)
	bottle, err := catalog.Create(ctx, product.CreateProductRequest{Name: "Bottle", Category: "gear", Price: 150, Stock: 10})
	require.NoError(t, err)

	repo := NewRepository(db)
	rec := &recorder{}
	return &fixture{
		svc:      NewService(repo, catalog, rec, nil),
		repo:     repo,
		cart:     cart.NewService(cart.NewRepository(db), productRepo, nil),
		products: productRepo,
		events:   rec,
		mat:      mat,
		bottle:   bottle,
	}
}

func (f *fixture) fill(t *testing.T, userID int64, p *product.Product, qty int) {
	t.Helper()
	_, err := f.cart.AddItem(context.Background(), userID, cart.AddItemRequest{ProductID: p.ID, Quantity: qty})
	require.NoError(t, err)
}

func (f *fixture) stock(t *testing.T, id int64) int {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func address() ShippingAddress {
	return ShippingAddress{
		Name: "Asha", Phone: "9876543210", Line1: "12 MG Road",
		City: "Pune", State: "MH", Pincode: "411001",
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusConfirmed))
	assert.True(t, CanTransition(StatusConfirmed, StatusShipped))
	assert.True(t, CanTransition(StatusConfirmed, StatusCancelled))
	assert.False(t, CanTransition(StatusProcessing, StatusCancelled))
	assert.False(t, CanTransition(StatusShipped, StatusConfirmed))
	assert.False(t, CanTransition(StatusDelivered, StatusDelivered))
	assert.False(t, CanTransition(StatusCancelled, StatusConfirmed))
}

func TestCheckout_COD(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.fill(t, 1, f.mat, 1)
	f.fill(t, 1, f.bottle, 2)

	o, err := f.svc.Checkout(ctx, 1, CheckoutRequest{ShippingAddress: address(), PaymentMethod: PaymentCOD, PromoCode: "new10"})
	require.NoError(t, err)

	assert.Regexp(t, `^FZ-\d{8}-[0-9A-F]{8}$`, o.OrderNumber)
	assert.Equal(t, StatusConfirmed, o.Status)
	assert.Equal(t, PaymentPending, o.PaymentStatus)
	assert.Equal(t, 1100.0, o.Subtotal)
	assert.Equal(t, 0.0, o.Shipping)
	assert.Equal(t, 110.0, o.Discount)
	assert.Equal(t, 990.0, o.Total)
	assert.Equal(t, "NEW10", o.PromoCode)
	assert.Len(t, o.Items, 2)

	assert.Equal(t, 2, f.stock(t, f.mat.ID))
	assert.Equal(t, 8, f.stock(t, f.bottle.ID))

	c, err := f.cart.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	got, err := f.svc.Get(ctx, Actor{UserID: 1}, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pune", got.ShippingAddress.Data().City)

	assert.Equal(t, []string{events.OrderCreated}, f.events.types())
}

func TestCheckout_Online_PendingWithShipping(t *testing.T) {
	f := setup(t)
	f.fill(t, 1, f.bottle, 2)

	o, err := f.svc.Checkout(context.Background(), 1, CheckoutRequest{ShippingAddress: address(), PaymentMethod: PaymentOnline})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, pricing.ShippingFee, o.Shipping)
	assert.Equal(t, 349.0, o.Total)
}

func TestCheckout_PromoRejectedKeepsCart(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.fill(t, 1, f.bottle, 1)

	_, err := f.svc.Checkout(ctx, 1, CheckoutRequest{ShippingAddress: address(), PaymentMethod: PaymentCOD, PromoCode: "FLAT100"})
	var pe *pricing.PromoError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "Minimum order of ₹500 required for FLAT100", pe.Message)

	assert.Equal(t, 10, f.stock(t, f.bottle.ID))
	c, err := f.cart.Get(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)
}

func TestCheckout_NEW10OnlyFirstOrder(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.fill(t, 1, f.bottle, 1)
	_, err := f.svc.Checkout(ctx, 1, CheckoutRequest{ShippingAddress: address(), PaymentMethod: PaymentCOD})
	require.NoError(t, err)

	first, err := f.svc.IsFirstOrder(ctx, 1)
	require.NoError(t, err)
	assert.False(t, first)

	f.fill(t, 1, f.bottle, 1)
	_, err = f.svc.Checkout(ctx, 1, CheckoutRequest{ShippingAddress: address(), PaymentMethod: PaymentCOD, PromoCode: "NEW10"})
	assert.EqualError(t, err, "NEW10 is valid only on your first order")
}

func TestCheckout_EmptyAndStock(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Checkout(ctx, 1, CheckoutRequest{ShippingAddress: address(), PaymentMethod: PaymentCOD})
	assert.ErrorIs(t, err, ErrEmptyCart)

	f.fill(t, 1, f.mat, 3)
	f.fill(t, 2, f.mat, 2)
	_, err = f.svc.Checkout(ctx, 1, CheckoutRequest{ShippingAddress: address(), PaymentMethod: PaymentCOD})
	require.NoError(t, err)

	_, err = f.svc.Checkout(ctx, 2, CheckoutRequest{ShippingAddress: address(), PaymentMethod: PaymentCOD})
	var se *StockError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, f.mat.ID, se.ProductID)
	assert.Equal(t, 0, f.stock(t, f.mat.ID))
}

func TestCancel_RestoresStock(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.fill(t, 1, f.mat, 2)

	o, err := f.svc.Checkout(ctx, 1, CheckoutRequest{ShippingAddress: address(), PaymentMethod: PaymentCOD})
	require.NoError(t, err)
	assert.Equal(t, 1, f.stock(t, f.mat.ID))

	_, err = f.svc.Cancel(ctx, Actor{UserID: 2}, o.ID, "")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := f.svc.Cancel(ctx, Actor{UserID: 1}, o.ID, "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
	assert.NotNil(t, got.CancelledAt)
	assert.Equal(t, 3, f.stock(t, f.mat.ID))

	_, err = f.svc.Cancel(ctx, Actor{UserID: 1}, o.ID, "")
	assert.ErrorIs(t, err, ErrNotCancellable)

	first, err := f.svc.IsFirstOrder(ctx, 1)
	require.NoError(t, err)
	assert.True(t, first)
}

func TestUpdateStatus_Lifecycle(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.fill(t, 1, f.bottle, 1)

	o, err := f.svc.Checkout(ctx, 1, CheckoutRequest{ShippingAddress: address(), PaymentMethod: PaymentCOD})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, o.ID, UpdateStatusRequest{Status: "lost"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	got, err := f.svc.UpdateStatus(ctx, o.ID, UpdateStatusRequest{Status: StatusProcessing})
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, got.Status)

	_, err = f.svc.UpdateStatus(ctx, o.ID, UpdateStatusRequest{Status: StatusCancelled})
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	_, err = f.svc.UpdateStatus(ctx, o.ID, UpdateStatusRequest{Status: StatusConfirmed})
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	_, err = f.svc.UpdateStatus(ctx, o.ID, UpdateStatusRequest{Status: StatusDelivered})
	require.NoError(t, err)

	items, total, err := f.svc.AdminList(ctx, StatusDelivered, pagination.New(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items[0].Items, 1)
}

func TestPaymentFlow(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.fill(t, 1, f.mat, 1)

	o, err := f.svc.Checkout(ctx, 1, CheckoutRequest{ShippingAddress: address(), PaymentMethod: PaymentOnline})
	require.NoError(t, err)
	assert.True(t, o.AwaitsOnlinePayment())

	_, err = f.svc.AttachGatewayOrder(ctx, 2, o.ID, "order_X")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.AttachGatewayOrder(ctx, 1, o.ID, "order_X")
	require.NoError(t, err)

	failed, err := f.svc.MarkPaymentFailed(ctx, "order_X")
	require.NoError(t, err)
	assert.Equal(t, PaymentFailed, failed.PaymentStatus)

	paid, changed, err := f.svc.MarkPaid(ctx, "order_X", "pay_1")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, PaymentPaid, paid.PaymentStatus)
	assert.Equal(t, StatusConfirmed, paid.Status)
	assert.NotNil(t, paid.PaidAt)

	_, changed, err = f.svc.MarkPaid(ctx, "order_X", "pay_1")
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = f.svc.AttachGatewayOrder(ctx, 1, o.ID, "order_Y")
	assert.ErrorIs(t, err, ErrPaymentNotExpected)

	cancelled, err := f.svc.UpdateStatus(ctx, o.ID, UpdateStatusRequest{Status: StatusCancelled})
	require.NoError(t, err)
	assert.Equal(t, PaymentRefunded, cancelled.PaymentStatus)

	_, _, err = f.svc.MarkPaid(ctx, "order_missing", "pay_2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelStale(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.fill(t, 1, f.mat, 1)
	stale, err := f.svc.Checkout(ctx, 1, CheckoutRequest{ShippingAddress: address(), PaymentMethod: PaymentOnline})
	require.NoError(t, err)
	f.fill(t, 2, f.bottle, 1)
	_, err = f.svc.Checkout(ctx, 2, CheckoutRequest{ShippingAddress: address(), PaymentMethod: PaymentCOD})
	require.NoError(t, err)

	f.svc.now = func() time.Time { return time.Now().Add(72 * time.Hour) }
	n, err := f.svc.CancelStale(ctx, 48*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.repo.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
	assert.Equal(t, 3, f.stock(t, f.mat.ID))
}

func TestStats(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.fill(t, 1, f.mat, 1)
	o, err := f.svc.Checkout(ctx, 1, CheckoutRequest{ShippingAddress: address(), PaymentMethod: PaymentOnline})
	require.NoError(t, err)
	_, err = f.svc.AttachGatewayOrder(ctx, 1, o.ID, "order_S")
	require.NoError(t, err)
	_, _, err = f.svc.MarkPaid(ctx, "order_S", "pay_S")
	require.NoError(t, err)

	f.fill(t, 2, f.bottle, 1)
	_, err = f.svc.Checkout(ctx, 2, CheckoutRequest{ShippingAddress: address(), PaymentMethod: PaymentOnline})
	require.NoError(t, err)

	st, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.ByStatus[StatusConfirmed])
	assert.Equal(t, int64(1), st.ByStatus[StatusPending])
	assert.Equal(t, 849.0, st.Revenue)
}
