package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mydayflow/MyDayFlow-BE/internal/pkg/httpx"
	"github.com/mydayflow/MyDayFlow-BE/internal/service"
)

// Sync 给后台 worker（service worker 的定期同步）用的两个小接口：
// 查"现在有没有在计时"，以及上报专注检查的回答
type Sync struct {
	timers *service.TimerService
}

func NewSync(timers *service.TimerService) *Sync {
	return &Sync{timers: timers}
}

// Status GET /api/v1/sync/status
func (h *Sync) Status(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	running, err := h.timers.Running(c.Request.Context(), vid)
	if err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, gin.H{"running": running})
}

type focusCheckReq struct {
	Focused *bool `json:"focused"`
}

// FocusCheck POST /api/v1/sync/focus-check
// 回答"否"会按完成自动停表（对应前端 30 分钟一次的专注提醒）
func (h *Sync) FocusCheck(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	var req focusCheckReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Focused == nil {
		httpx.Err(c, http.StatusBadRequest, "focused required")
		return
	}
	stopped, err := h.timers.FocusCheck(c.Request.Context(), vid, *req.Focused)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveSession) {
			// 会话已经没了，提醒迟到了而已，不算错误
			httpx.OK(c, gin.H{"ok": true, "stopped": false})
			return
		}
		fail(c, err)
		return
	}
	httpx.OK(c, gin.H{"ok": true, "stopped": stopped})
}
