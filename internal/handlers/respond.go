package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mydayflow/MyDayFlow-BE/internal/pkg/httpx"
	"github.com/mydayflow/MyDayFlow-BE/internal/pkg/middleware"
	"github.com/mydayflow/MyDayFlow-BE/internal/repository"
	"github.com/mydayflow/MyDayFlow-BE/internal/service"
)

// visitorID 取访客 ID，没有就直接 401
func visitorID(c *gin.Context) (string, bool) {
	vid, ok := middleware.VisitorID(c)
	if !ok {
		httpx.Err(c, http.StatusUnauthorized, "no visitor")
		return "", false
	}
	return vid, true
}

// fail 把 service/repository 的错误翻译成 HTTP 状态码
// 存储错误统一 500；业务守卫 400/409；找不到 404。不重试也不回滚（事务之外）
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionActive):
		httpx.Err(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNoActiveSession):
		httpx.Err(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		httpx.Err(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		httpx.Err(c, http.StatusNotFound, "not found")
	default:
		httpx.Err(c, http.StatusInternalServerError, err.Error())
	}
}
