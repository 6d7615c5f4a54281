// Package middleware 提供 gin 中间件：会话校验、请求 ID、日志、追踪、指标、限流、熔断与响应缓存.
package middleware

import (
	crand "crypto/rand"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid"

	ctxPkg "github.com/yeisme/filevault/pkg/context"
)

// RequestIDHeader 请求 ID 头.
const RequestIDHeader = "X-Request-ID"

var (
	ulidMu      sync.Mutex
	ulidEntropy = ulid.Monotonic(crand.Reader, 0)
)

func newRequestID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy).String()
}

// RequestIDMiddleware 沿用客户端传入的请求 ID，缺省时生成 ULID，并写回响应头.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = newRequestID()
		}

		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(ctxPkg.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}
