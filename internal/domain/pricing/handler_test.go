package pricing

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeCart float64

func (f fakeCart) Subtotal(context.Context, int64) (float64, error) { return float64(f), nil }

type fakeHistory bool

func (f fakeHistory) IsFirstOrder(context.Context, int64) (bool, error) { return bool(f), nil }

func post(h *Handler, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterProtectedRoutes(r.Group("/api"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/store/promo/validate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestValidatePromo_UsesCartSubtotal(t *testing.T) {
	w := post(NewHandler(fakeCart(1600), fakeHistory(false)), `{"code":"FITZONE20"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"discount":320`)
	assert.Contains(t, w.Body.String(), `"total":1280`)
}

func TestValidatePromo_Rejections(t *testing.T) {
	w := post(NewHandler(fakeCart(0), fakeHistory(false)), `{"code":"NEW10","subtotal":800}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "NEW10 is valid only on your first order")

	w = post(NewHandler(fakeCart(0), fakeHistory(true)), `{"code":"FLAT100","subtotal":300}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "PROMO_MIN_SUBTOTAL")

	w = post(NewHandler(fakeCart(0), fakeHistory(true)), `{"code":"BOGUS","subtotal":300}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid promo code")
}
