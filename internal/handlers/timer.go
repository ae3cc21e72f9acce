package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mydayflow/MyDayFlow-BE/internal/pkg/httpx"
	"github.com/mydayflow/MyDayFlow-BE/internal/service"
)

type Timer struct {
	svc *service.TimerService
}

func NewTimer(svc *service.TimerService) *Timer {
	return &Timer{svc: svc}
}

type startReq struct {
	ItemID     string `json:"item_id"`
	CategoryID string `json:"category_id"`
}

// Start POST /api/v1/sessions/start
// 已经有会话在跑时返回 409（状态机层面就禁止开第二个表，不只靠前端禁用按钮）
func (h *Timer) Start(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	var req startReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ItemID == "" {
		httpx.Err(c, http.StatusBadRequest, "item_id required")
		return
	}
	sess, err := h.svc.Start(c.Request.Context(), vid, req.ItemID, req.CategoryID)
	if err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, gin.H{
		"session_id": sess.ID,
		"status":     sess.Status,
		"started_at": sess.StartAt.UTC(),
	})
}

// Pause POST /api/v1/sessions/pause（已经暂停时是 no-op）
func (h *Timer) Pause(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	sess, err := h.svc.Pause(c.Request.Context(), vid)
	if err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, gin.H{"status": sess.Status, "pause_count": sess.PauseCount})
}

// Resume POST /api/v1/sessions/resume（没暂停时是 no-op）
func (h *Timer) Resume(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	sess, err := h.svc.Resume(c.Request.Context(), vid)
	if err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, gin.H{"status": sess.Status, "paused_seconds": sess.PausedSeconds})
}

type stopReq struct {
	Completed bool    `json:"completed"`
	Feedback  *string `json:"feedback"`
	Rating    *int    `json:"rating"`
}

// Stop POST /api/v1/sessions/stop
// completed=true 记完成并触发每日汇总重算，false 记放弃
func (h *Timer) Stop(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	var req stopReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Err(c, http.StatusBadRequest, "bad body")
		return
	}
	sess, err := h.svc.Stop(c.Request.Context(), vid, req.Completed, req.Feedback, req.Rating)
	if err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, gin.H{
		"session_id":     sess.ID,
		"status":         sess.Status,
		"total_seconds":  sess.TotalSeconds,
		"active_seconds": sess.ActiveSeconds,
		"pause_count":    sess.PauseCount,
	})
}

// Current GET /api/v1/sessions/current
// 没有进行中的会话返回 200 null（前端轮询方便）
func (h *Timer) Current(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	cur, err := h.svc.Current(c.Request.Context(), vid)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveSession) {
			c.JSON(http.StatusOK, nil)
			return
		}
		fail(c, err)
		return
	}
	httpx.OK(c, cur)
}

// List GET /api/v1/sessions?range=7d|30d|all
func (h *Timer) List(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	since := service.SinceForRange(c.Query("range"), h.svc.Now())
	sessions, err := h.svc.ListSessions(c.Request.Context(), vid, since)
	if err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, sessions)
}

// Delete DELETE /api/v1/sessions/:id（直接物理删除，带暂停记录一起）
func (h *Timer) Delete(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteSession(c.Request.Context(), vid, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, gin.H{"ok": true})
}
