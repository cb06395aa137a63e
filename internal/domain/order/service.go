package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"fitzone/internal/domain/cart"
	"fitzone/internal/domain/pricing"
	"fitzone/internal/pkg/events"
	"fitzone/internal/pkg/logger"
	"fitzone/internal/pkg/metrics"
	"fitzone/internal/pkg/pagination"
)

type Service struct {
	orders  RepositoryInterface
	catalog CatalogCache
	events  events.Publisher
	log     logrus.FieldLogger
	now     func() time.Time
}

func NewService(orders RepositoryInterface, catalog CatalogCache, pub events.Publisher, log logrus.FieldLogger) *Service {
	if catalog == nil {
		catalog = noCatalog{}
	}
	return &Service{
		orders:  orders,
		catalog: catalog,
		events:  events.OrNoop(pub),
		log:     logger.OrDiscard(log),
		now:     time.Now,
	}
}

// IsFirstOrder is true while the user has no order that was not cancelled.
func (s *Service) IsFirstOrder(ctx context.Context, userID int64) (bool, error) {
	n, err := s.orders.CountActiveByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// Checkout converts the user's cart into an order. The quote is computed
// here; client-side totals are never trusted.
func (s *Service) Checkout(ctx context.Context, userID int64, req CheckoutRequest) (*Order, error) {
	first, err := s.IsFirstOrder(ctx, userID)
	if err != nil {
		return nil, err
	}

	build := func(items []cart.CartItem) (*Order, error) {
		o := &Order{
			OrderNumber:     s.newOrderNumber(),
			UserID:          userID,
			PaymentMethod:   req.PaymentMethod,
			PaymentStatus:   PaymentPending,
			ShippingAddress: datatypes.NewJSONType(req.ShippingAddress),
		}
		var subtotal float64
		for _, it := range items {
			p := it.Product
			if p == nil || !p.IsActive {
				return nil, ErrProductUnavailable
			}
			if it.Quantity > p.Stock {
				return nil, &StockError{ProductID: p.ID, Name: p.Name, Available: p.Stock}
			}
			line := round(p.Price * float64(it.Quantity))
			o.Items = append(o.Items, OrderItem{
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.Price,
				Quantity:  it.Quantity,
				LineTotal: line,
			})
			subtotal += line
		}

		q, err := pricing.Calculate(subtotal, first, req.PromoCode)
		if err != nil {
			return nil, err
		}
		o.Subtotal = q.Subtotal
		o.Shipping = q.Shipping
		o.Discount = q.Discount
		o.PromoCode = q.PromoCode
		o.Total = q.Total

		o.Status = StatusPending
		if req.PaymentMethod == PaymentCOD {
			o.Status = StatusConfirmed
		}
		return o, nil
	}

	o, err := s.orders.PlaceFromCart(ctx, userID, build)
	if err != nil {
		return nil, err
	}

	s.catalog.Invalidate(ctx)
	metrics.OrderPlaced(string(o.PaymentMethod))
	s.log.WithFields(logrus.Fields{
		"order_id":       o.ID,
		"order_number":   o.OrderNumber,
		"user_id":        userID,
		"total":          o.Total,
		"payment_method": o.PaymentMethod,
	}).Info("order placed")
	s.publish(ctx, events.OrderCreated, o)
	return o, nil
}

func (s *Service) ListMine(ctx context.Context, userID int64, p pagination.Params) ([]Order, int64, error) {
	return s.orders.List(ctx, ListFilter{UserID: userID}, p)
}

func (s *Service) AdminList(ctx context.Context, status Status, p pagination.Params) ([]Order, int64, error) {
	if status != "" && !status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.orders.List(ctx, ListFilter{Status: status}, p)
}

func (s *Service) Get(ctx context.Context, actor Actor, id int64) (*Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && o.UserID != actor.UserID {
		// do not reveal other users' orders
		return nil, ErrNotFound
	}
	return o, nil
}

// Cancel lets the owner cancel before processing starts.
func (s *Service) Cancel(ctx context.Context, actor Actor, id int64, reason string) (*Order, error) {
	o, err := s.orders.Mutate(ctx, id, func(tx *gorm.DB, o *Order) error {
		if !actor.IsAdmin() && o.UserID != actor.UserID {
			return ErrNotFound
		}
		if !o.Cancellable() {
			return ErrNotCancellable
		}
		return s.cancelLocked(tx, o, reason)
	})
	if err != nil {
		return nil, err
	}
	s.afterCancel(ctx, o)
	return o, nil
}

// UpdateStatus is the admin lifecycle move.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req UpdateStatusRequest) (*Order, error) {
	if !req.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	o, err := s.orders.Mutate(ctx, id, func(tx *gorm.DB, o *Order) error {
		if !CanTransition(o.Status, req.Status) {
			return ErrInvalidStatusTransition
		}
		if req.Status == StatusCancelled {
			return s.cancelLocked(tx, o, req.Reason)
		}
		o.Status = req.Status
		return nil
	})
	if err != nil {
		return nil, err
	}

	if o.Status == StatusCancelled {
		s.afterCancel(ctx, o)
	} else {
		s.publish(ctx, events.OrderStatus, o)
	}
	s.log.WithFields(logrus.Fields{"order_id": o.ID, "status": o.Status}).Info("order status updated")
	return o, nil
}

// AttachGatewayOrder records the payment gateway's order id on an unpaid
// online order owned by userID.
func (s *Service) AttachGatewayOrder(ctx context.Context, userID, orderID int64, gatewayOrderID string) (*Order, error) {
	return s.orders.Mutate(ctx, orderID, func(_ *gorm.DB, o *Order) error {
		if o.UserID != userID {
			return ErrNotFound
		}
		if !o.AwaitsOnlinePayment() {
			return ErrPaymentNotExpected
		}
		o.GatewayOrderID = &gatewayOrderID
		o.PaymentStatus = PaymentPending
		return nil
	})
}

// MarkPaid confirms the order paid under gatewayOrderID. changed is false
// when it was already paid.
func (s *Service) MarkPaid(ctx context.Context, gatewayOrderID, paymentID string) (o *Order, changed bool, err error) {
	o, err = s.orders.MutateByGatewayOrderID(ctx, gatewayOrderID, func(_ *gorm.DB, o *Order) error {
		if o.PaymentStatus == PaymentPaid {
			return nil
		}
		if o.Status == StatusCancelled {
			return ErrPaymentNotExpected
		}
		now := s.now()
		o.PaymentStatus = PaymentPaid
		o.GatewayPaymentID = paymentID
		o.PaidAt = &now
		if o.Status == StatusPending {
			o.Status = StatusConfirmed
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if changed {
		s.log.WithFields(logrus.Fields{"order_id": o.ID, "payment_id": paymentID}).Info("order paid")
		s.publish(ctx, events.PaymentStatus, o)
	}
	return o, changed, nil
}

// MarkPaymentFailed flags a failed attempt. A paid order stays paid.
func (s *Service) MarkPaymentFailed(ctx context.Context, gatewayOrderID string) (*Order, error) {
	changed := false
	o, err := s.orders.MutateByGatewayOrderID(ctx, gatewayOrderID, func(_ *gorm.DB, o *Order) error {
		if o.PaymentStatus != PaymentPending {
			return nil
		}
		o.PaymentStatus = PaymentFailed
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if changed {
		s.publish(ctx, events.PaymentStatus, o)
	}
	return o, nil
}

// CancelStale cancels online orders left unpaid for longer than ttl and
// returns how many were cancelled.
func (s *Service) CancelStale(ctx context.Context, ttl time.Duration) (int, error) {
	ids, err := s.orders.StaleOnlineIDs(ctx, s.now().Add(-ttl))
	if err != nil {
		return 0, err
	}

	n := 0
	for _, id := range ids {
		o, err := s.orders.Mutate(ctx, id, func(tx *gorm.DB, o *Order) error {
			// paid in the meantime
			if o.Status != StatusPending || o.PaymentStatus == PaymentPaid {
				return errSkip
			}
			return s.cancelLocked(tx, o, "payment not completed")
		})
		if errors.Is(err, errSkip) {
			continue
		}
		if err != nil {
			s.log.WithError(err).WithField("order_id", id).Warn("stale order not cancelled")
			continue
		}
		s.afterCancel(ctx, o)
		n++
	}
	return n, nil
}

var errSkip = errors.New("skip")

type noCatalog struct{}

func (noCatalog) Invalidate(context.Context) {}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	st, err := s.orders.Stats(ctx)
	if err != nil {
		return nil, err
	}
	st.Revenue = round(st.Revenue)
	return st, nil
}

func (s *Service) cancelLocked(tx *gorm.DB, o *Order, reason string) error {
	if err := RestoreStock(tx, o); err != nil {
		return err
	}
	now := s.now()
	o.Status = StatusCancelled
	o.CancelledAt = &now
	o.CancelReason = strings.TrimSpace(reason)
	if o.PaymentStatus == PaymentPaid {
		o.PaymentStatus = PaymentRefunded
	}
	return nil
}

func (s *Service) afterCancel(ctx context.Context, o *Order) {
	s.catalog.Invalidate(ctx)
	s.log.WithFields(logrus.Fields{"order_id": o.ID, "payment_status": o.PaymentStatus}).Info("order cancelled")
	s.publish(ctx, events.OrderStatus, o)
}

func (s *Service) publish(ctx context.Context, eventType string, o *Order) {
	if err := s.events.Publish(ctx, events.New(eventType, o.UserID, eventOf(o))); err != nil {
		s.log.WithError(err).WithField("event", eventType).Warn("event not published")
	}
}

// FZ-20261019-1A2B3C4D
func (s *Service) newOrderNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("FZ-%s-%s", s.now().Format("20060102"), id[:8])
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}
