package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitzone/internal/config"
	"fitzone/internal/database/dbtest"
	"fitzone/internal/domain/auth"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

type testClient struct {
	t *testing.T
	r *gin.Engine
}

func (tc testClient) do(method, path, token string, body any) (int, envelope) {
	tc.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(tc.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	tc.r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w.Code, env
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		AppEnv:               "test",
		JWTSecret:            "test-secret",
		JWTTTL:               time.Hour,
		CacheTTL:             time.Minute,
		CacheMaxEntries:      1000,
		UploadsDir:           t.TempDir(),
		UploadsURLBase:       "/static/uploads",
		RateLimitRPS:         100,
		RateLimitBurst:       100,
		RecurringHorizonDays: 14,
		RecurringCron:        "@every 1h",
		StaleOrderCron:       "@every 30m",
		StaleOrderTTL:        48 * time.Hour,

		NotificationRetention:   720 * time.Hour,
		NotificationCleanupCron: "@daily",
	}
}

func newTestApp(t *testing.T) (*App, testClient) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.Open(t, Models()...)
	a, err := New(Deps{Config: testConfig(t), DB: db})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close(context.Background()) })

	hash, err := auth.HashPassword("admin-pass")
	require.NoError(t, err)
	require.NoError(t, db.Create(&auth.User{
		Name: "Admin", Email: "admin@fitzone.in", PasswordHash: hash, Role: auth.RoleAdmin, IsActive: true,
	}).Error)

	return a, testClient{t: t, r: a.Router}
}

func login(tc testClient, email, password string) string {
	tc.t.Helper()
	code, env := tc.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(tc.t, http.StatusOK, code)
	var out struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(tc.t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(tc.t, out.AccessToken)
	return out.AccessToken
}

func TestHealthAndMetrics(t *testing.T) {
	_, tc := newTestApp(t)

	code, env := tc.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	tc.r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	code, env = tc.do(http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestStoreFlow(t *testing.T) {
	_, tc := newTestApp(t)

	code, _ := tc.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Priya", "email": "priya@fitzone.in", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, code)
	member := login(tc, "priya@fitzone.in", "secret1")
	adminToken := login(tc, "admin@fitzone.in", "admin-pass")

	code, _ = tc.do(http.MethodGet, "/api/admin/stats", member, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env := tc.do(http.MethodPost, "/api/admin/products", adminToken, map[string]any{
		"name": "Whey Protein", "category": "supplements", "price": 2499, "stock": 5,
	})
	require.Equal(t, http.StatusCreated, code)
	var p struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &p))

	code, _ = tc.do(http.MethodPost, "/api/cart/items", member, map[string]any{"product_id": p.ID, "quantity": 2})
	require.Equal(t, http.StatusOK, code)

	code, env = tc.do(http.MethodPost, "/api/store/promo/validate", member, map[string]any{"code": "NEW10"})
	assert.Equal(t, http.StatusOK, code, string(env.Data))

	code, env = tc.do(http.MethodPost, "/api/orders/checkout", member, map[string]any{
		"payment_method": "cod",
		"promo_code":     "NEW10",
		"shipping_address": map[string]string{
			"name": "Priya", "phone": "9876543210", "line1": "12 MG Road",
			"city": "Bengaluru", "state": "KA", "pincode": "560001",
		},
	})
	require.Equal(t, http.StatusCreated, code)
	var o struct {
		Status   string  `json:"status"`
		Discount float64 `json:"discount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &o))
	assert.Equal(t, "confirmed", o.Status)
	assert.Equal(t, 499.8, o.Discount)

	code, env = tc.do(http.MethodGet, "/api/notifications", member, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "Order placed")

	code, env = tc.do(http.MethodGet, "/api/cart", member, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"item_count":0`)

	code, env = tc.do(http.MethodGet, "/api/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	var stats struct {
		Members        int64            `json:"members"`
		OrdersByStatus map[string]int64 `json:"orders_by_status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(1), stats.Members)
	assert.Equal(t, int64(1), stats.OrdersByStatus["confirmed"])
}

func TestAIChat_FallbackWithoutKey(t *testing.T) {
	_, tc := newTestApp(t)

	code, env := tc.do(http.MethodPost, "/api/ai-chat", "", map[string]string{"message": "what are your membership plans?"})
	require.Equal(t, http.StatusOK, code)
	var reply struct {
		Message string `json:"message"`
		Source  string `json:"source"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &reply))
	assert.NotEmpty(t, reply.Message)
	assert.Equal(t, "fallback", reply.Source)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	_, tc := newTestApp(t)

	for _, path := range []string{"/api/cart", "/api/bookings/me", "/api/orders/me", "/api/upload"} {
		code, _ := tc.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, code, path)
	}
}

func TestAuthRateLimit_SpoofedForwardedFor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 2

	a, err := New(Deps{Config: cfg, DB: dbtest.Open(t, Models()...)})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close(context.Background()) })

	var last int
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		w := httptest.NewRecorder()
		a.Router.ServeHTTP(w, req)
		last = w.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestNew_RejectsBadTrustedProxy(t *testing.T) {
	cfg := testConfig(t)
	cfg.TrustedProxies = []string{"not-an-ip"}

	_, err := New(Deps{Config: cfg, DB: dbtest.Open(t, Models()...)})
	assert.Error(t, err)
}
