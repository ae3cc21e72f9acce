package worker

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mydayflow/MyDayFlow-BE/internal/database"
	"github.com/mydayflow/MyDayFlow-BE/internal/models"
	"github.com/mydayflow/MyDayFlow-BE/internal/pkg/logger"
	"github.com/mydayflow/MyDayFlow-BE/internal/repository"
)

func newWorkerFixture(t *testing.T) (*SummaryWorker, *repository.SessionRepository, *repository.SummaryRepository, string) {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	sessions := repository.NewSessionRepository(db)
	summaries := repository.NewSummaryRepository(db)
	w := NewSummaryWorker(sessions, summaries, logger.Init("test"))
	return w, sessions, summaries, "12121212-3434-5656-7878-909090909090"
}

func insertCompleted(t *testing.T, repo *repository.SessionRepository, userID string, start time.Time, activeSec int64) {
	t.Helper()
	end := start.Add(time.Duration(activeSec) * time.Second)
	require.NoError(t, repo.Create(context.Background(), &models.TimerSession{
		ID:            uuid.NewString(),
		UserID:        userID,
		Status:        models.StatusCompleted,
		StartAt:       start,
		EndAt:         &end,
		TotalSeconds:  activeSec,
		ActiveSeconds: activeSec,
	}))
}

func TestRefresh_WritesDailySummaries(t *testing.T) {
	w, sessions, summaries, userID := newWorkerFixture(t)
	today := time.Now().UTC().Truncate(24 * time.Hour)

	insertCompleted(t, sessions, userID, today.Add(9*time.Hour), 600)
	insertCompleted(t, sessions, userID, today.Add(14*time.Hour), 300)
	insertCompleted(t, sessions, userID, today.AddDate(0, 0, -1).Add(10*time.Hour), 1200)

	require.NoError(t, w.Refresh(context.Background(), userID))

	rows, err := summaries.ListRange(context.Background(), userID,
		today.AddDate(0, 0, -7).Format("2006-01-02"), today.Format("2006-01-02"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1200), rows[0].TotalSeconds)
	assert.Equal(t, 1, rows[0].SessionCount)
	assert.Equal(t, int64(900), rows[1].TotalSeconds)
	assert.Equal(t, 2, rows[1].SessionCount)
}

func TestRefresh_UpsertOverwrites(t *testing.T) {
	// 同一天重算两次：覆盖而不是累加
	w, sessions, summaries, userID := newWorkerFixture(t)
	today := time.Now().UTC().Truncate(24 * time.Hour)

	insertCompleted(t, sessions, userID, today.Add(9*time.Hour), 600)
	require.NoError(t, w.Refresh(context.Background(), userID))
	insertCompleted(t, sessions, userID, today.Add(15*time.Hour), 400)
	require.NoError(t, w.Refresh(context.Background(), userID))

	rows, err := summaries.ListRange(context.Background(), userID,
		today.Format("2006-01-02"), today.Format("2006-01-02"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1000), rows[0].TotalSeconds)
	assert.Equal(t, 2, rows[0].SessionCount)
}

func TestEnqueueAndStopDrainsQueue(t *testing.T) {
	// Stop 要把挤压的任务跑完再退出
	w, sessions, summaries, userID := newWorkerFixture(t)
	today := time.Now().UTC().Truncate(24 * time.Hour)
	insertCompleted(t, sessions, userID, today.Add(9*time.Hour), 600)

	w.Start()
	assert.True(t, w.Enqueue(userID))
	w.Stop()

	rows, err := summaries.ListRange(context.Background(), userID,
		today.Format("2006-01-02"), today.Format("2006-01-02"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(600), rows[0].TotalSeconds)
}
