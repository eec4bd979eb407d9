package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/shop-dataset/catalog"
	"github.com/yeremiapane/shop-dataset/controllers"
	"github.com/yeremiapane/shop-dataset/generator"
	"github.com/yeremiapane/shop-dataset/middlewares"
	"github.com/yeremiapane/shop-dataset/services"
	"github.com/yeremiapane/shop-dataset/utils"
)

func setupTestRouter(t *testing.T, limiter *middlewares.RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := generator.DefaultConfig()
	cfg.Customers, cfg.Products, cfg.Orders = 20, 8, 15
	dc := controllers.NewDatasetController(t.TempDir(), catalog.Default(), cfg, services.NewMemoryCache(time.Minute))
	return SetupRouter(Options{Datasets: dc, Limiter: limiter, Log: utils.DiscardLogger()})
}

func TestRoutes(t *testing.T) {
	r := setupTestRouter(t, nil)
	tests := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/ping", http.StatusOK},
		{http.MethodGet, "/catalog", http.StatusOK},
		{http.MethodGet, "/datasets/none", http.StatusNotFound},
		{http.MethodGet, "/datasets/none/validation", http.StatusNotFound},
		{http.MethodGet, "/unknown", http.StatusNotFound},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.want, w.Code, tt.path)
	}
}

func TestGenerationIsRateLimited(t *testing.T) {
	r := setupTestRouter(t, middlewares.NewRateLimiter(0.001, 1))
	post := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/datasets", strings.NewReader(`{"name":"limited"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusCreated, post())
	assert.Equal(t, http.StatusTooManyRequests, post())

	// reads are not limited
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/datasets/limited/validation", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
