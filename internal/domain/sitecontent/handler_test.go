package sitecontent

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(newTestService(t))

	r := gin.New()
	api := r.Group("/api")
	h.RegisterPublicRoutes(api)
	h.RegisterAdminRoutes(api.Group("/admin"))
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Testimonials(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/admin/site-content/testimonials", map[string]any{
		"name": "Neha", "content": "Loved the HIIT classes", "rating": 6,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/admin/site-content/testimonials", map[string]any{
		"name": "Neha", "content": "Loved the HIIT classes", "rating": 5,
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/site-content/testimonials", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Loved the HIIT classes")

	w = doJSON(r, http.MethodDelete, "/api/admin/site-content/testimonials/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Team(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/admin/site-content/team", map[string]any{
		"name": "Asha", "role": "Founder", "is_active": false,
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/site-content/team", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Asha")

	w = doJSON(r, http.MethodGet, "/api/admin/site-content/team/all", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Asha")

	w = doJSON(r, http.MethodPut, "/api/admin/site-content/team/abc", map[string]any{"name": "x", "role": "y"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
