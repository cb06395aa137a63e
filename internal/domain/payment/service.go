package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"fitzone/internal/domain/order"
	"fitzone/internal/pkg/logger"
	"fitzone/internal/pkg/metrics"
)

const currencyINR = "INR"

type Config struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
}

type Service struct {
	txns    transactionRepo
	orders  orderPayments
	gateway Gateway
	cfg     Config
	log     logrus.FieldLogger
	now     func() time.Time
}

// NewService wires the payment flow. gateway may be nil when keys are not
// configured; every call then fails with ErrDisabled.
func NewService(txns transactionRepo, orders orderPayments, gateway Gateway, cfg Config, log logrus.FieldLogger) *Service {
	return &Service{
		txns:    txns,
		orders:  orders,
		gateway: gateway,
		cfg:     cfg,
		log:     logger.OrDiscard(log),
		now:     time.Now,
	}
}

func (s *Service) Enabled() bool {
	return s.gateway != nil && s.cfg.KeyID != "" && s.cfg.KeySecret != ""
}

// CreateOrder opens a gateway order for the user's unpaid online order.
func (s *Service) CreateOrder(ctx context.Context, userID, orderID int64) (*CreateOrderResponse, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}

	o, err := s.orders.Get(ctx, order.Actor{UserID: userID}, orderID)
	if err != nil {
		return nil, err
	}
	if !o.AwaitsOnlinePayment() {
		return nil, order.ErrPaymentNotExpected
	}

	amount := int64(math.Round(o.Total * 100))
	gid, err := s.gateway.CreateOrder(ctx, amount, currencyINR, o.OrderNumber, map[string]string{
		"order_id": strconv.FormatInt(o.ID, 10),
	})
	if err != nil {
		s.log.WithError(err).WithField("order_id", o.ID).Error("gateway order creation failed")
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	if _, err := s.orders.AttachGatewayOrder(ctx, userID, o.ID, gid); err != nil {
		return nil, err
	}
	if err := s.txns.Create(ctx, &Transaction{
		OrderID:        o.ID,
		UserID:         userID,
		GatewayOrderID: gid,
		Amount:         amount,
		Currency:       currencyINR,
		Status:         TxCreated,
	}); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"order_id": o.ID, "gateway_order_id": gid, "amount": amount}).Info("gateway order created")
	return &CreateOrderResponse{
		KeyID:          s.cfg.KeyID,
		GatewayOrderID: gid,
		Amount:         amount,
		Currency:       currencyINR,
		OrderNumber:    o.OrderNumber,
	}, nil
}

// Verify checks the checkout signature and marks the order paid. Repeated
// calls for a paid order succeed without side effects.
func (s *Service) Verify(ctx context.Context, userID int64, req VerifyRequest, rawBody string) (*order.Order, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}

	t, err := s.txns.GetByGatewayOrderID(ctx, req.RazorpayOrderID)
	switch {
	case errors.Is(err, ErrTxNotFound):
		return nil, order.ErrNotFound
	case err != nil:
		return nil, err
	case t.UserID != userID:
		return nil, order.ErrNotFound
	}

	valid := VerifyPayment(s.cfg.KeySecret, req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	s.log.WithFields(logrus.Fields{"gateway_order_id": req.RazorpayOrderID, "signature_valid": valid}).Info("razorpay signature validation")
	if !valid {
		metrics.PaymentVerified("invalid_signature")
		s.fail(ctx, req.RazorpayOrderID, rawBody, "invalid signature")
		return nil, ErrInvalidSignature
	}

	return s.markPaid(ctx, req.RazorpayOrderID, req.RazorpayPaymentID, rawBody)
}

// HandleWebhook applies a signed gateway event. Unknown events and orders
// are acknowledged so the gateway stops retrying.
func (s *Service) HandleWebhook(ctx context.Context, body []byte, signature string) (*WebhookResult, error) {
	if s.cfg.WebhookSecret == "" {
		return nil, ErrDisabled
	}
	if !VerifyWebhook(s.cfg.WebhookSecret, body, signature) {
		return nil, ErrInvalidSignature
	}

	event := gjson.GetBytes(body, "event").String()
	entity := gjson.GetBytes(body, "payload.payment.entity")
	gid := entity.Get("order_id").String()
	pid := entity.Get("id").String()
	res := &WebhookResult{Event: event}

	log := s.log.WithFields(logrus.Fields{"event": event, "gateway_order_id": gid})
	if gid == "" {
		log.Info("webhook ignored")
		return res, nil
	}

	var err error
	switch event {
	case "payment.captured", "order.paid":
		_, err = s.markPaid(ctx, gid, pid, string(body))
	case "payment.failed":
		s.fail(ctx, gid, string(body), entity.Get("error_description").String())
	default:
		log.Info("webhook ignored")
		return res, nil
	}
	if errors.Is(err, order.ErrNotFound) {
		log.Warn("webhook for unknown order")
		return res, nil
	}
	if err != nil {
		return nil, err
	}
	res.Handled = true
	return res, nil
}

func (s *Service) markPaid(ctx context.Context, gatewayOrderID, paymentID, rawBody string) (*order.Order, error) {
	changed, err := s.txns.MarkPaidIdempotent(ctx, gatewayOrderID, paymentID, rawBody, s.now().UTC())
	if err != nil {
		s.log.WithError(err).WithField("gateway_order_id", gatewayOrderID).Warn("payment transaction not updated")
	}

	o, orderChanged, err := s.orders.MarkPaid(ctx, gatewayOrderID, paymentID)
	if err != nil {
		return nil, err
	}
	if changed || orderChanged {
		metrics.PaymentVerified("paid")
	} else {
		metrics.PaymentVerified("duplicate")
		s.log.WithField("gateway_order_id", gatewayOrderID).Info("idempotent verification, already paid")
	}
	return o, nil
}

func (s *Service) fail(ctx context.Context, gatewayOrderID, rawBody, reason string) {
	if err := s.txns.MarkFailed(ctx, gatewayOrderID, rawBody, reason); err != nil {
		s.log.WithError(err).WithField("gateway_order_id", gatewayOrderID).Warn("payment transaction not marked failed")
	}
	if _, err := s.orders.MarkPaymentFailed(ctx, gatewayOrderID); err != nil && !errors.Is(err, order.ErrNotFound) {
		s.log.WithError(err).WithField("gateway_order_id", gatewayOrderID).Error("order payment not marked failed")
	}
}
