package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcache "github.com/yeisme/filevault/pkg/cache"
	"github.com/yeisme/filevault/pkg/configs"
	ctxPkg "github.com/yeisme/filevault/pkg/context"
	"github.com/yeisme/filevault/pkg/internal/storage/kv"
	"github.com/yeisme/filevault/pkg/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type staticGate map[string]string

func (g staticGate) Resolve(_ context.Context, token string) (string, error) {
	if uid, ok := g[token]; ok {
		return uid, nil
	}

	return "", errors.New("unauthorized")
}

func TestSessionMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/me", middleware.SessionMiddleware(staticGate{"tok": "u1"}, "X-Token"), func(c *gin.Context) {
		c.String(http.StatusOK, middleware.UserID(c)+"|"+ctxPkg.UserID(c.Request.Context()))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-Token", "tok")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1|u1", w.Body.String())
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, ctxPkg.RequestID(c.Request.Context())) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	id := w.Header().Get(middleware.RequestIDHeader)
	assert.Len(t, id, 26)
	assert.Equal(t, id, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "given")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "given", w.Header().Get(middleware.RequestIDHeader))
}

func TestCacheMiddleware(t *testing.T) {
	c := appcache.NewCache(kv.NewMemoryKVWithClock(time.Now))

	var calls atomic.Int32

	r := gin.New()
	r.GET("/stats", middleware.CacheMiddleware(middleware.DefaultCacheConfig(c)), func(c *gin.Context) {
		calls.Add(1)
		c.JSON(http.StatusOK, gin.H{"users": 1, "files": 2})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"users":1,"files":2}`, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, int32(1), calls.Load())

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	req.Header.Set("If-None-Match", w.Header().Get("ETag"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotModified, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/stats", nil)
	req.Header.Set("X-Cache-Bypass", "1")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RateLimitMiddleware(configs.RateLimitConfig{Enabled: true, RPS: 1, Burst: 1, Key: "global"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestRateLimitMiddlewareByHeader(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RateLimitMiddleware(configs.RateLimitConfig{Enabled: true, RPS: 1, Burst: 1, Key: "Header:X-Client"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(client string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Client", client)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("a"))
	assert.Equal(t, http.StatusTooManyRequests, send("a"))
	assert.Equal(t, http.StatusOK, send("b"))
}

func TestCircuitBreakerMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CircuitBreakerMiddleware(configs.CircuitBreakerConfig{
		Enabled: true, FailureRate: 0.5, MinRequests: 2, IntervalSeconds: 60, TimeoutSeconds: 60, MaxRequestsInHalf: 1,
	}))
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for range 2 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
