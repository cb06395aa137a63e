package cart

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHandler_CartFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := setup(t)

	r := gin.New()
	protected := r.Group("/api")
	protected.Use(func(c *gin.Context) {
		c.Set("user_id", int64(5))
		c.Next()
	})
	NewHandler(f.svc).RegisterProtectedRoutes(protected)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}
	matPath := "/api/cart/items/" + strconv.FormatInt(f.mat.ID, 10)

	w := do(http.MethodPost, "/api/cart/items", `{"product_id":`+strconv.FormatInt(f.mat.ID, 10)+`,"quantity":2}`)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"subtotal":1598`)

	w = do(http.MethodPut, matPath, `{"quantity":9}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INSUFFICIENT_STOCK")

	w = do(http.MethodPut, matPath, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(http.MethodDelete, matPath, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(http.MethodDelete, matPath, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(http.MethodDelete, "/api/cart", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
