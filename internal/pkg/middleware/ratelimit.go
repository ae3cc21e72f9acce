package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/mydayflow/MyDayFlow-BE/internal/pkg/httpx"
)

// RateLimit 每个访客每秒 5 次，瞬时突发 10 次；可根据需要调整
func RateLimit() gin.HandlerFunc {
	limiter := struct {
		mu sync.Mutex
		m  map[string]*rate.Limiter
	}{m: map[string]*rate.Limiter{}}

	get := func(k string) *rate.Limiter {
		limiter.mu.Lock()
		defer limiter.mu.Unlock()
		if l, ok := limiter.m[k]; ok {
			return l
		}
		l := rate.NewLimiter(5, 10)
		limiter.m[k] = l
		return l
	}

	return func(c *gin.Context) {
		k, ok := VisitorID(c)
		if !ok {
			k = c.ClientIP()
		}
		if !get(k).Allow() {
			httpx.Err(c, http.StatusTooManyRequests, "too many requests")
			return
		}
		c.Next()
	}
}
