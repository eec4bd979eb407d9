package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func setupRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.POST("/datasets", func(c *gin.Context) { c.Status(http.StatusCreated) })
	return r
}

func do(r *gin.Engine, method, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	r := setupRouter(rl.RateLimit())

	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/datasets", "10.0.0.1").Code)
	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/datasets", "10.0.0.1").Code)
	w := do(r, http.MethodPost, "/datasets", "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "too many requests")

	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/datasets", "10.0.0.2").Code)
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Now()
	rl.allow("10.0.0.1", now.Add(-time.Hour))
	rl.allow("10.0.0.2", now)
	rl.evict(now)
	assert.Equal(t, 1, rl.clientCount())

	rl.Interval = time.Millisecond
	rl.Start()
	rl.Stop()
	rl.Stop()
}

func TestSecurityHeaders(t *testing.T) {
	w := do(setupRouter(SecurityHeaders()), http.MethodGet, "/ping", "10.0.0.1")
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestCORS(t *testing.T) {
	r := setupRouter(CORSMiddlewares("http://localhost:3000"))
	w := do(r, http.MethodOptions, "/ping", "10.0.0.1")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(setupRouter(CORSMiddlewares("")), http.MethodGet, "/ping", "10.0.0.1")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggerMiddleware(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := setupRouter(LoggerMiddleware(log))
	do(r, http.MethodGet, "/ping?x=1", "10.0.0.1")

	entry := hook.LastEntry()
	if assert.NotNil(t, entry) {
		assert.Equal(t, logrus.InfoLevel, entry.Level)
		assert.Equal(t, "/ping?x=1", entry.Data["path"])
		assert.Equal(t, http.StatusOK, entry.Data["status"])
		assert.Equal(t, "GET", entry.Data["method"])
	}
}
