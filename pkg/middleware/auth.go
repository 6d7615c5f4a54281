package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/yeisme/filevault/pkg/context"
)

// UserIDKey gin 上下文中已认证用户 ID 的键.
const UserIDKey = "userID"

// SessionResolver 把令牌解析为用户 ID.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// SessionMiddleware 从 header 读取令牌并解析用户，失败时返回 401 {"error":"Unauthorized"}.
func SessionMiddleware(gate SessionResolver, header string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := gate.Resolve(c.Request.Context(), c.GetHeader(header))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Request = c.Request.WithContext(ctxPkg.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// UserID 返回 SessionMiddleware 写入的用户 ID.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
