package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitzone/internal/database/dbtest"
	"fitzone/internal/middleware"
	"fitzone/internal/pkg/jwt"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *jwt.Service, *UserRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.Open(t, &User{})
	repo := NewUserRepository(db)
	j := jwt.New("test-secret", time.Hour)
	h := NewHandler(NewService(repo, j, nil))

	r := gin.New()
	api := r.Group("/api")
	h.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.JWTAuth(j))
	h.RegisterProtectedRoutes(protected)

	admin := protected.Group("/admin")
	admin.Use(middleware.AdminOnly())
	h.RegisterAdminRoutes(admin)

	return r, j, repo
}

func doJSON(r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env
}

func TestRegisterLoginMe(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	rr := doJSON(r, http.MethodPost, "/api/auth/register", map[string]any{
		"name": "Ravi", "email": "ravi@example.com", "password": "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = doJSON(r, http.MethodPost, "/api/auth/register", map[string]any{
		"name": "Ravi", "email": "RAVI@example.com", "password": "secret1",
	}, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "EMAIL_EXISTS", decode(t, rr).Error.Code)

	rr = doJSON(r, http.MethodPost, "/api/auth/login", map[string]any{
		"email": "ravi@example.com", "password": "bad-pass",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doJSON(r, http.MethodPost, "/api/auth/login", map[string]any{
		"email": "ravi@example.com", "password": "secret1",
	}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var login AuthResult
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &login))
	assert.Equal(t, RoleMember, login.User.Role)
	assert.NotEmpty(t, login.AccessToken)

	rr = doJSON(r, http.MethodGet, "/api/users/me", nil, login.AccessToken)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "password")
	assert.Contains(t, rr.Body.String(), "ravi@example.com")
}

func TestRegister_Validation(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	rr := doJSON(r, http.MethodPost, "/api/auth/register", map[string]any{
		"name": "R", "email": "not-an-email", "password": "123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, rr).Error.Code)
}

func TestAdminEndpoints(t *testing.T) {
	r, j, repo := setupTestRouter(t)

	hash, _ := HashPassword("secret1")
	admin := &User{Name: "Admin", Email: "admin@fitzone.in", PasswordHash: hash, Role: RoleAdmin, IsActive: true}
	member := &User{Name: "Mem", Email: "mem@fitzone.in", PasswordHash: hash, Role: RoleMember, IsActive: true}
	require.NoError(t, repo.Create(t.Context(), admin))
	require.NoError(t, repo.Create(t.Context(), member))

	adminTok, _ := j.GenerateToken(admin.ID, "admin")
	memberTok, _ := j.GenerateToken(member.ID, "member")

	rr := doJSON(r, http.MethodGet, "/api/admin/users", nil, memberTok)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doJSON(r, http.MethodPost, "/api/admin/trainers", map[string]any{
		"name": "Coach Meera", "email": "meera@fitzone.in", "password": "secret1", "specialization": "Yoga",
	}, adminTok)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = doJSON(r, http.MethodGet, "/api/admin/users?role=trainer", nil, adminTok)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"total":1`)

	rr = doJSON(r, http.MethodGet, "/api/trainers", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Coach Meera")

	rr = doJSON(r, http.MethodPatch, "/api/admin/users/"+strconv.FormatInt(member.ID, 10), map[string]any{"is_active": false}, adminTok)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(r, http.MethodPost, "/api/auth/login", map[string]any{"email": "mem@fitzone.in", "password": "secret1"}, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "ACCOUNT_DISABLED", decode(t, rr).Error.Code)
}
