// Package segment 负责把会话切成按天/按暂停划分的展示片段
// 只做纯计算，不碰数据库；原始会话记录永远不会被物理拆分
package segment

import (
	"fmt"
	"sort"
	"time"

	"github.com/mydayflow/MyDayFlow-BE/internal/models"
)

// DaySlice 某个日期范围内的"虚拟"会话记录（跨天会话按天裁剪后的产物）
type DaySlice struct {
	ID                string    `json:"id"` // 合成 ID：<会话ID>_<日期>
	SessionID         string    `json:"session_id"`
	ItemID            string    `json:"item_id"`
	CategoryID        string    `json:"category_id"`
	Date              string    `json:"date"` // YYYY-MM-DD
	Start             time.Time `json:"start"`
	End               time.Time `json:"end"`
	Seconds           int64     `json:"seconds"`
	EndsAtDayBoundary bool      `json:"ends_at_day_boundary"` // 结束被裁到当天边界（前端显示成 24:00）
}

// ActiveSegment 两次暂停之间的一段实际活动区间
type ActiveSegment struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Seconds int64     `json:"seconds"`
}

// SliceForDay 计算会话与目标日期 [00:00:00, 次日 00:00:00) 的重叠部分
// 没有重叠返回 ok=false；还在进行中的会话用 now 充当结束时间
// 会话结束落在当天边界之后时，展示上的结束被裁剪到边界，时长只算当天部分
func SliceForDay(s models.TimerSession, date time.Time, now time.Time) (DaySlice, bool) {
	loc := date.Location()
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	sessEnd := now
	if s.EndAt != nil {
		sessEnd = *s.EndAt
	}

	start := s.StartAt
	if start.Before(dayStart) {
		start = dayStart
	}
	end := sessEnd
	clamped := false
	if !end.Before(dayEnd) {
		end = dayEnd
		clamped = true
	}
	if !end.After(start) {
		return DaySlice{}, false
	}

	d := dayStart.Format("2006-01-02")
	return DaySlice{
		ID:                fmt.Sprintf("%s_%s", s.ID, d),
		SessionID:         s.ID,
		ItemID:            s.ItemID,
		CategoryID:        s.CategoryID,
		Date:              d,
		Start:             start,
		End:               end,
		Seconds:           int64(end.Sub(start).Seconds()),
		EndsAtDayBoundary: clamped,
	}, true
}

// SlicesForDay 过滤出某一天的全部虚拟记录，按开始时间排序
func SlicesForDay(sessions []models.TimerSession, date time.Time, now time.Time) []DaySlice {
	out := make([]DaySlice, 0, len(sessions))
	for _, s := range sessions {
		if sl, ok := SliceForDay(s, date, now); ok {
			out = append(out, sl)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// ActiveSegments 按暂停记录把会话拆成若干实际活动区间
// 逻辑：按暂停时间顺序遍历，上一次恢复（或会话开始）到下一次暂停之间是一段活动；
// 最后一次恢复到会话结束再补一段。没有暂停时整个会话就是一段。
// 未恢复的暂停（暂停状态下停表）视为一直暂停到会话结束。
func ActiveSegments(s models.TimerSession, pauses []models.PauseRecord, now time.Time) []ActiveSegment {
	sessEnd := now
	if s.EndAt != nil {
		sessEnd = *s.EndAt
	}

	sorted := make([]models.PauseRecord, len(pauses))
	copy(sorted, pauses)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].PauseAt.Before(sorted[j].PauseAt) })

	segs := make([]ActiveSegment, 0, len(sorted)+1)
	cursor := s.StartAt
	for _, p := range sorted {
		pauseAt := p.PauseAt
		if pauseAt.After(sessEnd) {
			pauseAt = sessEnd
		}
		if pauseAt.After(cursor) {
			segs = append(segs, makeSegment(cursor, pauseAt))
		}
		if p.ResumeAt == nil {
			// 暂停着直接停表：后面没有活动了
			return segs
		}
		cursor = *p.ResumeAt
	}
	if sessEnd.After(cursor) {
		segs = append(segs, makeSegment(cursor, sessEnd))
	}
	return segs
}

// ClipToWindow 把活动区间裁剪到一个时间窗口内（渲染某一小时的活动条用）
func ClipToWindow(segs []ActiveSegment, from, to time.Time) []ActiveSegment {
	out := make([]ActiveSegment, 0, len(segs))
	for _, sg := range segs {
		start, end := sg.Start, sg.End
		if start.Before(from) {
			start = from
		}
		if end.After(to) {
			end = to
		}
		if end.After(start) {
			out = append(out, makeSegment(start, end))
		}
	}
	return out
}

func makeSegment(start, end time.Time) ActiveSegment {
	return ActiveSegment{Start: start, End: end, Seconds: int64(end.Sub(start).Seconds())}
}
