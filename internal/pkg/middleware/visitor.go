package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const VisitorCookie = "dfid"

// Visitor 为每个游客分配唯一 ID（存在 cookie 里），有效期一年
// HttpOnly 防止 JS 读取；上线走 HTTPS 后可把 secure 改为 true
func Visitor() gin.HandlerFunc {
	return func(c *gin.Context) {
		vid, err := c.Cookie(VisitorCookie)
		if err != nil || vid == "" {
			vid = uuid.NewString()
			c.SetCookie(VisitorCookie, vid, 3600*24*365, "/", "", false, true)
		}
		c.Set("visitor_id", vid)
		c.Next()
	}
}

// VisitorID 从 gin context 取访客 ID（Visitor 中间件写入）
func VisitorID(c *gin.Context) (string, bool) {
	vid := c.GetString("visitor_id")
	return vid, vid != ""
}
