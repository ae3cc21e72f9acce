package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mydayflow/MyDayFlow-BE/internal/pkg/httpx"
	"github.com/mydayflow/MyDayFlow-BE/internal/service"
)

type Stats struct {
	svc *service.StatsService
}

func NewStats(svc *service.StatsService) *Stats {
	return &Stats{svc: svc}
}

// Summary GET /api/v1/stats/summary
// 今日时长/次数、近 7 天（?range=30d 可拉长）趋势、连续打卡、48h 不活跃
func (h *Stats) Summary(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	days := 7
	if c.Query("range") == "30d" {
		days = 30
	}
	sum, err := h.svc.Summary(c.Request.Context(), vid, days)
	if err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, sum)
}

// Categories GET /api/v1/stats/categories?range=
func (h *Stats) Categories(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	since := service.SinceForRange(c.Query("range"), h.svc.Now())
	out, err := h.svc.ByCategory(c.Request.Context(), vid, since)
	if err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, out)
}

// Items GET /api/v1/stats/items?range=
func (h *Stats) Items(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	since := service.SinceForRange(c.Query("range"), h.svc.Now())
	out, err := h.svc.ByItem(c.Request.Context(), vid, since)
	if err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, out)
}

// Hours GET /api/v1/stats/hours?range=（固定 24 个桶）
func (h *Stats) Hours(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	since := service.SinceForRange(c.Query("range"), h.svc.Now())
	out, err := h.svc.ByHour(c.Request.Context(), vid, since)
	if err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, out)
}

// Daily GET /api/v1/stats/daily?range=
func (h *Stats) Daily(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	since := service.SinceForRange(c.Query("range"), h.svc.Now())
	out, err := h.svc.Daily(c.Request.Context(), vid, since)
	if err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, out)
}

// Weekly GET /api/v1/stats/weekly?range=
func (h *Stats) Weekly(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	since := service.SinceForRange(c.Query("range"), h.svc.Now())
	out, err := h.svc.Weekly(c.Request.Context(), vid, since)
	if err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, out)
}

// Monthly GET /api/v1/stats/monthly?range=
func (h *Stats) Monthly(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	since := service.SinceForRange(c.Query("range"), h.svc.Now())
	out, err := h.svc.Monthly(c.Request.Context(), vid, since)
	if err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, out)
}

// Timeline GET /api/v1/timeline/day?date=YYYY-MM-DD
// 某天的时间轴：跨夜裁剪 + 按暂停拆出的活动区间
func (h *Stats) Timeline(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	date := h.svc.Now()
	if q := c.Query("date"); q != "" {
		d, err := time.ParseInLocation("2006-01-02", q, date.Location())
		if err != nil {
			httpx.Err(c, http.StatusBadRequest, "bad date")
			return
		}
		date = d
	}
	out, err := h.svc.Timeline(c.Request.Context(), vid, date)
	if err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, out)
}

// Records GET /api/v1/records?range=
// 读后台任务维护的每日汇总表
func (h *Stats) Records(c *gin.Context) {
	vid, ok := visitorID(c)
	if !ok {
		return
	}
	now := h.svc.Now()
	since := service.SinceForRange(c.Query("range"), now)
	if since.IsZero() {
		since = now.AddDate(0, 0, -365)
	}
	out, err := h.svc.Records(c.Request.Context(), vid, since, now)
	if err != nil {
		fail(c, err)
		return
	}
	httpx.OK(c, out)
}
