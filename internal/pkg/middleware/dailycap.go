package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mydayflow/MyDayFlow-BE/internal/pkg/httpx"
)

// DailyWriteCap 限制每个访客每天对分类/事项的修改次数
// 计数放在服务端内存里，跨天自动清零；只拦写操作（GET 不计数）
func DailyWriteCap(limit int) gin.HandlerFunc {
	counter := struct {
		mu  sync.Mutex
		day string
		m   map[string]int
	}{m: map[string]int{}}

	allow := func(k string) bool {
		counter.mu.Lock()
		defer counter.mu.Unlock()
		today := time.Now().Format("2006-01-02")
		if counter.day != today {
			// 新的一天，计数全部清零
			counter.day = today
			counter.m = map[string]int{}
		}
		if counter.m[k] >= limit {
			return false
		}
		counter.m[k]++
		return true
	}

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}
		k, ok := VisitorID(c)
		if !ok {
			k = c.ClientIP()
		}
		if !allow(k) {
			httpx.Err(c, http.StatusTooManyRequests, "daily edit limit reached")
			return
		}
		c.Next()
	}
}
