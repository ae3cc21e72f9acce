// Package worker 后台任务：会话完成后重算该用户的每日汇总
// 用显式队列替代"发完就忘"，失败会记日志，Stop 时会把队列清空再退出
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/mydayflow/MyDayFlow-BE/internal/models"
	"github.com/mydayflow/MyDayFlow-BE/internal/pkg/logger"
	"github.com/mydayflow/MyDayFlow-BE/internal/repository"
	"github.com/mydayflow/MyDayFlow-BE/internal/stats"
)

// RefreshWindowDays 每次重算覆盖最近多少天
const RefreshWindowDays = 30

type SummaryWorker struct {
	sessions  *repository.SessionRepository
	summaries *repository.SummaryRepository
	log       *logger.Logger

	jobs chan string
	wg   sync.WaitGroup

	mu      sync.Mutex
	started bool
}

func NewSummaryWorker(sessions *repository.SessionRepository, summaries *repository.SummaryRepository,
	log *logger.Logger) *SummaryWorker {
	return &SummaryWorker{
		sessions:  sessions,
		summaries: summaries,
		log:       log,
		jobs:      make(chan string, 64),
	}
}

// Start 起一个消费 goroutine；重复调用是 no-op
func (w *SummaryWorker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.started = true
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for userID := range w.jobs {
			if err := w.Refresh(context.Background(), userID); err != nil {
				w.log.Error("summary refresh failed", "user", userID, "error", err)
			}
		}
	}()
}

// Enqueue 非阻塞入队；队列满了返回 false，由调用方决定记什么日志
func (w *SummaryWorker) Enqueue(userID string) bool {
	select {
	case w.jobs <- userID:
		return true
	default:
		return false
	}
}

// Stop 关队列并等挤压的任务跑完
func (w *SummaryWorker) Stop() {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return
	}
	w.started = false
	w.mu.Unlock()
	close(w.jobs)
	w.wg.Wait()
}

// Refresh 重算一个用户最近 RefreshWindowDays 天的每日汇总
// 从会话整批重新折叠，不做增量（和统计页同一套口径）
func (w *SummaryWorker) Refresh(ctx context.Context, userID string) error {
	since := time.Now().AddDate(0, 0, -RefreshWindowDays)
	sessions, err := w.sessions.ListCompletedSince(ctx, userID, since)
	if err != nil {
		return err
	}
	for _, d := range stats.ByDay(sessions) {
		if err := w.summaries.Upsert(ctx, &models.DailySummary{
			UserID:       userID,
			Date:         d.Date,
			TotalSeconds: d.TotalSeconds,
			SessionCount: d.SessionCount,
		}); err != nil {
			return err
		}
	}
	return nil
}
