// Package stats 统计聚合：把一批会话折叠成分类/事项/小时/天/周/月维度的汇总
// 全部是纯函数，每次展示都从头重算，不做缓存
package stats

import (
	"sort"
	"time"

	"github.com/mydayflow/MyDayFlow-BE/internal/models"
)

type CategoryAggregate struct {
	CategoryID     string `json:"category_id"`
	Name           string `json:"name"`
	Icon           string `json:"icon"`
	Color          string `json:"color"`
	TotalSeconds   int64  `json:"total_seconds"`
	SessionCount   int    `json:"session_count"`
	AverageSeconds int64  `json:"average_seconds"`
}

type ItemAggregate struct {
	ItemID         string `json:"item_id"`
	Name           string `json:"name"`
	CategoryID     string `json:"category_id"`
	CategoryName   string `json:"category_name"`
	Color          string `json:"color"`
	TotalSeconds   int64  `json:"total_seconds"`
	SessionCount   int    `json:"session_count"`
	AverageSeconds int64  `json:"average_seconds"`
}

type HourAggregate struct {
	Hour         int   `json:"hour"` // 0-23
	TotalSeconds int64 `json:"total_seconds"`
	SessionCount int   `json:"session_count"`
}

type DayAggregate struct {
	Date         string `json:"date"` // YYYY-MM-DD
	TotalSeconds int64  `json:"total_seconds"`
	SessionCount int    `json:"session_count"`
}

type WeekAggregate struct {
	WeekStart    string `json:"week_start"` // 周一的 YYYY-MM-DD
	TotalSeconds int64  `json:"total_seconds"`
	SessionCount int    `json:"session_count"`
}

type MonthAggregate struct {
	Month        string `json:"month"` // YYYY-MM
	TotalSeconds int64  `json:"total_seconds"`
	SessionCount int    `json:"session_count"`
}

type Streaks struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// ByCategory 按分类分组：累计活动秒数、会话次数，并从分类列表补上展示信息
// 结果按总时长降序
func ByCategory(sessions []models.TimerSession, categories []models.ActivityCategory) []CategoryAggregate {
	byID := make(map[string]models.ActivityCategory, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	acc := map[string]*CategoryAggregate{}
	for _, s := range sessions {
		a, ok := acc[s.CategoryID]
		if !ok {
			c := byID[s.CategoryID]
			a = &CategoryAggregate{CategoryID: s.CategoryID, Name: c.Name, Icon: c.Icon, Color: c.Color}
			acc[s.CategoryID] = a
		}
		a.TotalSeconds += s.ActiveSeconds
		a.SessionCount++
	}
	out := make([]CategoryAggregate, 0, len(acc))
	for _, a := range acc {
		a.AverageSeconds = a.TotalSeconds / int64(a.SessionCount)
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalSeconds > out[j].TotalSeconds })
	return out
}

// ByItem 按事项分组，展示名从事项和分类两张表里 join
func ByItem(sessions []models.TimerSession, items []models.ActivityItem, categories []models.ActivityCategory) []ItemAggregate {
	itemByID := make(map[string]models.ActivityItem, len(items))
	for _, it := range items {
		itemByID[it.ID] = it
	}
	catByID := make(map[string]models.ActivityCategory, len(categories))
	for _, c := range categories {
		catByID[c.ID] = c
	}
	acc := map[string]*ItemAggregate{}
	for _, s := range sessions {
		a, ok := acc[s.ItemID]
		if !ok {
			it := itemByID[s.ItemID]
			c := catByID[s.CategoryID]
			a = &ItemAggregate{
				ItemID:       s.ItemID,
				Name:         it.Name,
				CategoryID:   s.CategoryID,
				CategoryName: c.Name,
				Color:        c.Color,
			}
			acc[s.ItemID] = a
		}
		a.TotalSeconds += s.ActiveSeconds
		a.SessionCount++
	}
	out := make([]ItemAggregate, 0, len(acc))
	for _, a := range acc {
		a.AverageSeconds = a.TotalSeconds / int64(a.SessionCount)
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalSeconds > out[j].TotalSeconds })
	return out
}

// ByHour 按开始时间的小时分桶，固定返回 24 个桶
func ByHour(sessions []models.TimerSession) []HourAggregate {
	out := make([]HourAggregate, 24)
	for h := range out {
		out[h].Hour = h
	}
	for _, s := range sessions {
		h := s.StartAt.Hour()
		out[h].TotalSeconds += s.ActiveSeconds
		out[h].SessionCount++
	}
	return out
}

// ByDay 按自然日分组，结果按日期升序
func ByDay(sessions []models.TimerSession) []DayAggregate {
	acc := map[string]*DayAggregate{}
	for _, s := range sessions {
		d := s.StartAt.Format("2006-01-02")
		a, ok := acc[d]
		if !ok {
			a = &DayAggregate{Date: d}
			acc[d] = a
		}
		a.TotalSeconds += s.ActiveSeconds
		a.SessionCount++
	}
	out := make([]DayAggregate, 0, len(acc))
	for _, a := range acc {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ByWeek 按 ISO 周（周一起始）分组
func ByWeek(sessions []models.TimerSession) []WeekAggregate {
	acc := map[string]*WeekAggregate{}
	for _, s := range sessions {
		w := weekStart(s.StartAt).Format("2006-01-02")
		a, ok := acc[w]
		if !ok {
			a = &WeekAggregate{WeekStart: w}
			acc[w] = a
		}
		a.TotalSeconds += s.ActiveSeconds
		a.SessionCount++
	}
	out := make([]WeekAggregate, 0, len(acc))
	for _, a := range acc {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart < out[j].WeekStart })
	return out
}

// ByMonth 按年月分组
func ByMonth(sessions []models.TimerSession) []MonthAggregate {
	acc := map[string]*MonthAggregate{}
	for _, s := range sessions {
		m := s.StartAt.Format("2006-01")
		a, ok := acc[m]
		if !ok {
			a = &MonthAggregate{Month: m}
			acc[m] = a
		}
		a.TotalSeconds += s.ActiveSeconds
		a.SessionCount++
	}
	out := make([]MonthAggregate, 0, len(acc))
	for _, a := range acc {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// ComputeStreaks 连续打卡天数：从今天（今天没有记录就从昨天）往前数连续有记录的天数；
// 最长纪录是历史上所有连续段的最大值。断一天以上就重新计。
func ComputeStreaks(sessions []models.TimerSession, today time.Time) Streaks {
	active := map[string]bool{}
	for _, s := range sessions {
		active[s.StartAt.Format("2006-01-02")] = true
	}
	if len(active) == 0 {
		return Streaks{}
	}

	var st Streaks
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	if !active[day.Format("2006-01-02")] {
		// 今天还没有记录时，从昨天开始数（今天还没结束不算断签）
		day = day.AddDate(0, 0, -1)
	}
	for active[day.Format("2006-01-02")] {
		st.Current++
		day = day.AddDate(0, 0, -1)
	}

	// 最长连续：把日期排序后数连续段
	dates := make([]string, 0, len(active))
	for d := range active {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	run := 0
	var prev time.Time
	for i, d := range dates {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		if i > 0 && t.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > st.Longest {
			st.Longest = run
		}
		prev = t
	}
	return st
}

// weekStart 算出所在 ISO 周的周一
func weekStart(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // 周日算第 7 天
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return d.AddDate(0, 0, -(wd - 1))
}
