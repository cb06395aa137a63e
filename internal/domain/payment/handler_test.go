package payment

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	h := NewHandler(svc, nil)
	h.RegisterWebhookRoutes(api)
	protected := api.Group("")
	protected.Use(func(c *gin.Context) {
		c.Set("user_id", int64(1))
		c.Next()
	})
	h.RegisterProtectedRoutes(protected)
	return r
}

func post(r *gin.Engine, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_PaymentsDisabled(t *testing.T) {
	r := newRouter(NewService(nil, nil, nil, Config{}, nil))

	w := post(r, "/api/payments/razorpay/order", `{"order_id":1}`, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "PAYMENTS_DISABLED")
}

func TestHandler_VerifyFlow(t *testing.T) {
	f := setup(t, "online")
	r := newRouter(f.svc)

	w := post(r, "/api/payments/razorpay/order", `{"order_id":1}`, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"gateway_order_id":"order_1"`)

	w = post(r, "/api/payments/razorpay/verify", `{"razorpay_order_id":"order_1"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")

	w = post(r, "/api/payments/razorpay/verify", `{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"nope"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_SIGNATURE")

	sig := SignPayment(testCfg.KeySecret, "order_1", "pay_1")
	w = post(r, "/api/payments/razorpay/verify", `{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"`+sig+`"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"payment_status":"paid"`)
}

func TestHandler_Webhook(t *testing.T) {
	f := setup(t, "online")
	r := newRouter(f.svc)

	body := `{"event":"payment.authorized"}`
	w := post(r, "/api/payments/razorpay/webhook", body, map[string]string{"X-Razorpay-Signature": "bad"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(r, "/api/payments/razorpay/webhook", body, map[string]string{
		"X-Razorpay-Signature": SignWebhook(testCfg.WebhookSecret, []byte(body)),
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"handled":false`)
}
