package middleware

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"

	appcache "github.com/yeisme/filevault/pkg/cache"
)

const (
	DefaultMaxBodyBytes = 1 << 20 // 1MB
	defaultTTL          = 10 * time.Second
)

// CacheConfig 响应缓存配置.
type CacheConfig struct {
	Cache *appcache.Cache // 必须
	TTL   time.Duration

	KeyFunc      func(*gin.Context) string // 默认: 方法 + 路由 + 排序后的 query
	BypassHeader string                    // 请求带该头时跳过缓存，默认 X-Cache-Bypass
	MaxBodyBytes int                       // 超过时不缓存，0 表示不限制
}

// DefaultCacheConfig 返回一份默认配置.
func DefaultCacheConfig(c *appcache.Cache) CacheConfig {
	return CacheConfig{
		Cache:        c,
		TTL:          defaultTTL,
		BypassHeader: "X-Cache-Bypass",
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

// responseCacheEntry 序列化存储结构.
type responseCacheEntry struct {
	Status      int    `json:"s"`
	ContentType string `json:"c,omitempty"`
	Body        []byte `json:"b,omitempty"`
	ETag        string `json:"e,omitempty"`
	StoredAt    int64  `json:"t"` // unix nano
}

// CacheMiddleware 缓存 GET/HEAD 的 200 响应，命中时带 X-Cache: HIT 与 Age，
// 支持 If-None-Match 返回 304. 缓存读写失败不影响请求.
//
//	c := cache.NewCache(kvStore)
//	r.GET("/stats", middleware.CacheMiddleware(middleware.DefaultCacheConfig(c)), h.GetStats)
func CacheMiddleware(cfg CacheConfig) gin.HandlerFunc {
	if cfg.Cache == nil {
		panic("CacheMiddleware: Cache cannot be nil")
	}

	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}

	if cfg.KeyFunc == nil {
		cfg.KeyFunc = buildDefaultKey
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Next()
			return
		}

		if cfg.BypassHeader != "" && c.GetHeader(cfg.BypassHeader) != "" {
			c.Next()
			return
		}

		key := cfg.KeyFunc(c)
		if serveFromCache(c, cfg.Cache, key) {
			return
		}

		bw := &bodyCaptureWriter{ResponseWriter: c.Writer, max: cfg.MaxBodyBytes}
		c.Writer = bw
		c.Next()

		if c.Writer.Status() != http.StatusOK || bw.truncated {
			return
		}

		body := bw.buf.Bytes()
		entry := responseCacheEntry{
			Status:      http.StatusOK,
			ContentType: c.Writer.Header().Get("Content-Type"),
			Body:        body,
			ETag:        fmt.Sprintf("\"%x\"", xxhash.Sum64(body)),
			StoredAt:    time.Now().UnixNano(),
		}

		_ = appcache.Set(context.WithoutCancel(c.Request.Context()), cfg.Cache, key, entry, cfg.TTL)
	}
}

// buildDefaultKey 方法 + 路由 + 排序 query 的 xxhash.
func buildDefaultKey(c *gin.Context) string {
	var b strings.Builder

	b.WriteString(c.Request.Method)
	b.WriteByte(':')

	full := c.FullPath()
	if full == "" {
		full = c.Request.URL.Path
	}

	b.WriteString(full)

	if q := c.Request.URL.Query(); len(q) > 0 {
		keys := make([]string, 0, len(q))
		for k := range q {
			keys = append(keys, k)
		}

		sort.Strings(keys)
		b.WriteByte('?')

		for i, k := range keys {
			if i > 0 {
				b.WriteByte('&')
			}

			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(strings.Join(q[k], ","))
		}
	}

	return fmt.Sprintf("rc:%x", xxhash.Sum64String(b.String()))
}

// bodyCaptureWriter 包装响应写入用于捕获 body.
type bodyCaptureWriter struct {
	gin.ResponseWriter

	buf       bytes.Buffer
	max       int
	truncated bool
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	if !w.truncated {
		if w.max > 0 && w.buf.Len()+len(b) > w.max {
			w.truncated = true
		} else {
			w.buf.Write(b)
		}
	}

	return w.ResponseWriter.Write(b)
}

// serveFromCache 命中时直接写出响应并返回 true.
func serveFromCache(c *gin.Context, cache *appcache.Cache, key string) bool {
	entry, err := appcache.Get[responseCacheEntry](c.Request.Context(), cache, key)
	if err != nil {
		c.Header("X-Cache", "MISS")
		return false
	}

	h := c.Writer.Header()
	h.Set("ETag", entry.ETag)
	h.Set("Age", fmt.Sprintf("%.0f", time.Since(time.Unix(0, entry.StoredAt)).Seconds()))
	h.Set("X-Cache", "HIT")

	if entry.ETag != "" && c.GetHeader("If-None-Match") == entry.ETag {
		c.AbortWithStatus(http.StatusNotModified)
		return true
	}

	if entry.ContentType != "" {
		h.Set("Content-Type", entry.ContentType)
	}

	c.Status(entry.Status)

	if c.Request.Method != http.MethodHead {
		_, _ = c.Writer.Write(entry.Body)
	}

	c.Abort()

	return true
}
