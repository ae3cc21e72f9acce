package service

import (
	"context"
	"time"

	"github.com/mydayflow/MyDayFlow-BE/internal/models"
	"github.com/mydayflow/MyDayFlow-BE/internal/repository"
	"github.com/mydayflow/MyDayFlow-BE/internal/segment"
	"github.com/mydayflow/MyDayFlow-BE/internal/stats"
)

// StatsService 统计视图：每次都整批取会话再用纯函数折叠，不做缓存
type StatsService struct {
	sessions   *repository.SessionRepository
	activities *repository.ActivityRepository
	summaries  *repository.SummaryRepository

	Now func() time.Time
}

func NewStatsService(sessions *repository.SessionRepository, activities *repository.ActivityRepository,
	summaries *repository.SummaryRepository) *StatsService {
	return &StatsService{
		sessions:   sessions,
		activities: activities,
		summaries:  summaries,
		Now:        time.Now,
	}
}

type DayItem struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

type Summary struct {
	TodayMinutes int       `json:"today_minutes"`
	TodayCount   int       `json:"today_count"`
	StreakDays   int       `json:"streak_days"`
	LongestDays  int       `json:"longest_days"`
	Trend        []DayItem `json:"trend"`
	Inactive48h  bool      `json:"inactive_48h"`
}

// Summary 首页的统计卡片：今日时长/次数、近 n 天趋势（没数据的天补 0）、
// 连续打卡、48 小时不活跃提示
func (s *StatsService) Summary(ctx context.Context, userID string, days int) (*Summary, error) {
	now := s.Now()
	all, err := s.sessions.ListCompletedSince(ctx, userID, time.Time{})
	if err != nil {
		return nil, err
	}

	res := &Summary{Trend: make([]DayItem, 0, days)}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayAgg := stats.ByDay(all)
	byDate := make(map[string]stats.DayAggregate, len(dayAgg))
	for _, d := range dayAgg {
		byDate[d.Date] = d
	}

	today := byDate[startOfDay.Format("2006-01-02")]
	res.TodayMinutes = int(today.TotalSeconds / 60)
	res.TodayCount = today.SessionCount

	// 倒着构造 n 天数组（从前 n-1 天到今天），缺的日期补 0
	for i := days - 1; i >= 0; i-- {
		d := now.AddDate(0, 0, -i).Format("2006-01-02")
		res.Trend = append(res.Trend, DayItem{Date: d, Minutes: int(byDate[d].TotalSeconds / 60)})
	}

	st := stats.ComputeStreaks(all, now)
	res.StreakDays = st.Current
	res.LongestDays = st.Longest

	// 48h 不活跃：最近一次完成的会话离现在超过 48 小时（或者压根没有）
	res.Inactive48h = true
	for _, sess := range all {
		if sess.EndAt != nil && now.Sub(*sess.EndAt) <= 48*time.Hour {
			res.Inactive48h = false
			break
		}
	}
	return res, nil
}

func (s *StatsService) ByCategory(ctx context.Context, userID string, since time.Time) ([]stats.CategoryAggregate, error) {
	sessions, err := s.sessions.ListCompletedSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	cats, err := s.activities.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	return stats.ByCategory(sessions, cats), nil
}

func (s *StatsService) ByItem(ctx context.Context, userID string, since time.Time) ([]stats.ItemAggregate, error) {
	sessions, err := s.sessions.ListCompletedSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	items, err := s.activities.ListItems(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	cats, err := s.activities.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	return stats.ByItem(sessions, items, cats), nil
}

func (s *StatsService) ByHour(ctx context.Context, userID string, since time.Time) ([]stats.HourAggregate, error) {
	sessions, err := s.sessions.ListCompletedSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	return stats.ByHour(sessions), nil
}

func (s *StatsService) Daily(ctx context.Context, userID string, since time.Time) ([]stats.DayAggregate, error) {
	sessions, err := s.sessions.ListCompletedSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	return stats.ByDay(sessions), nil
}

func (s *StatsService) Weekly(ctx context.Context, userID string, since time.Time) ([]stats.WeekAggregate, error) {
	sessions, err := s.sessions.ListCompletedSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	return stats.ByWeek(sessions), nil
}

func (s *StatsService) Monthly(ctx context.Context, userID string, since time.Time) ([]stats.MonthAggregate, error) {
	sessions, err := s.sessions.ListCompletedSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	return stats.ByMonth(sessions), nil
}

// TimelineEntry 某一天的一条虚拟记录，附带按暂停拆开的活动区间
type TimelineEntry struct {
	segment.DaySlice
	Segments []segment.ActiveSegment `json:"segments"`
}

// Timeline 按天的时间轴：跨夜会话裁剪到当天，再按暂停拆成活动区间
// 只在展示层拆，底层会话记录不动
func (s *StatsService) Timeline(ctx context.Context, userID string, date time.Time) ([]TimelineEntry, error) {
	now := s.Now()
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	sessions, err := s.sessions.ListOverlapping(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	out := make([]TimelineEntry, 0, len(sessions))
	for _, sess := range sessions {
		sl, ok := segment.SliceForDay(sess, dayStart, now)
		if !ok {
			continue
		}
		segs := segment.ActiveSegments(sess, sess.PauseRecords, now)
		out = append(out, TimelineEntry{
			DaySlice: sl,
			Segments: segment.ClipToWindow(segs, sl.Start, sl.End),
		})
	}
	return out, nil
}

// Records 记录页：直接读后台任务维护的每日汇总
func (s *StatsService) Records(ctx context.Context, userID string, from, to time.Time) ([]models.DailySummary, error) {
	return s.summaries.ListRange(ctx, userID, from.Format("2006-01-02"), to.Format("2006-01-02"))
}

// SinceForRange 把 range 参数换算成起始时间，空值按 30 天算，all 表示不限
func SinceForRange(rang string, now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch rang {
	case "today":
		return day
	case "7d":
		return day.AddDate(0, 0, -6)
	case "all":
		return time.Time{}
	case "30d", "":
		return day.AddDate(0, 0, -29)
	default:
		return day.AddDate(0, 0, -29)
	}
}
