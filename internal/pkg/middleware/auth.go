package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mydayflow/MyDayFlow-BE/internal/pkg/httpx"
	"github.com/mydayflow/MyDayFlow-BE/pkg/webutil"
)

// JWTAuth JWT 鉴权：优先认 Bearer token，没有 token 时退回 cookie 里的访客 ID
// （前端存 localStorage 的场景走 token，老的 cookie 流程也能用）
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			if !strings.HasPrefix(authHeader, "Bearer ") {
				httpx.Err(c, http.StatusUnauthorized, "bad authorization header")
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := webutil.ParseToken(secret, tokenStr)
			if err != nil {
				httpx.Err(c, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			c.Set("visitor_id", claims.VisitorID)
			c.Next()
			return
		}
		// 退回 cookie
		if vid, ok := VisitorID(c); ok && vid != "" {
			c.Next()
			return
		}
		httpx.Err(c, http.StatusUnauthorized, "no visitor")
	}
}
