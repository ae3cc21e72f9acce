package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 统一的响应格式：错误返回 {code, message, request_id}，成功直接返回数据

type ErrorResp struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func OK(c *gin.Context, v any) {
	c.JSON(http.StatusOK, v)
}

func Err(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorResp{
		Code:      status,
		Message:   msg,
		RequestID: c.GetString(RequestIDKey),
	})
}

// RequestIDKey 请求 ID 在 gin context 里的 key（RequestID 中间件写入）
const RequestIDKey = "request_id"
