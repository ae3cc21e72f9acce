package webutil

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Cors CORS 中间件：只给允许列表内的来源设置跨域头（本地前端开发用）
// allow 为空时默认放行常见本地开发地址
func Cors(allow string) gin.HandlerFunc {
	if allow == "" {
		allow = "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173"
	}
	origins := splitCSV(allow)
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		for _, a := range origins {
			if origin == a {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Credentials", "true")
				c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				break
			}
		}
		// 预检请求直接 204（浏览器跨域需要）
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
