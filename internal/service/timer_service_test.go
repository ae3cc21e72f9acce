package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mydayflow/MyDayFlow-BE/internal/database"
	"github.com/mydayflow/MyDayFlow-BE/internal/models"
	"github.com/mydayflow/MyDayFlow-BE/internal/pkg/logger"
	"github.com/mydayflow/MyDayFlow-BE/internal/repository"
)

// 可控时钟：测试里手动拨表，保证时长断言是精确值
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

type fakeQueue struct {
	enqueued []string
}

func (q *fakeQueue) Enqueue(userID string) bool {
	q.enqueued = append(q.enqueued, userID)
	return true
}

func newTimerFixture(t *testing.T) (*TimerService, *ActivityService, *fakeClock, *fakeQueue, string) {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)

	sessionRepo := repository.NewSessionRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	activitySvc := NewActivityService(activityRepo)

	clock := &fakeClock{t: time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC)}
	queue := &fakeQueue{}
	svc := NewTimerService(sessionRepo, activityRepo, queue, logger.Init("test"), 60)
	svc.Now = clock.now

	userID := "11111111-2222-3333-4444-555555555555"
	return svc, activitySvc, clock, queue, userID
}

// 建一个分类 + 事项，返回事项
func seedItem(t *testing.T, activities *ActivityService, userID string) *models.ActivityItem {
	t.Helper()
	ctx := context.Background()
	cat, err := activities.CreateCategory(ctx, userID, CategoryInput{Name: "学习"})
	require.NoError(t, err)
	item, err := activities.CreateItem(ctx, userID, ItemInput{CategoryID: cat.ID, Name: "阅读", EstimatedMinutes: 60})
	require.NoError(t, err)
	return item
}

func TestTimer_FullCycle_DurationsAddUp(t *testing.T) {
	// start -> pause -> resume -> pause -> resume -> stop：
	// activeSeconds == totalSeconds - 暂停之和，pauseCount == 已闭合的暂停数
	svc, activities, clock, queue, userID := newTimerFixture(t)
	ctx := context.Background()
	item := seedItem(t, activities, userID)

	sess, err := svc.Start(ctx, userID, item.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, sess.Status)
	assert.Equal(t, item.CategoryID, sess.CategoryID)

	clock.advance(10 * time.Minute)
	_, err = svc.Pause(ctx, userID)
	require.NoError(t, err)

	clock.advance(5 * time.Minute)
	_, err = svc.Resume(ctx, userID)
	require.NoError(t, err)

	clock.advance(5 * time.Minute)
	_, err = svc.Pause(ctx, userID)
	require.NoError(t, err)

	clock.advance(2 * time.Minute)
	_, err = svc.Resume(ctx, userID)
	require.NoError(t, err)

	clock.advance(8 * time.Minute)
	done, err := svc.Stop(ctx, userID, true, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, done.Status)
	assert.Equal(t, int64(1800), done.TotalSeconds)  // 30 分钟墙钟
	assert.Equal(t, int64(420), done.PausedSeconds)  // 5+2 分钟暂停
	assert.Equal(t, int64(1380), done.ActiveSeconds) // total - paused
	assert.Equal(t, 2, done.PauseCount)
	assert.Equal(t, []string{userID}, queue.enqueued)
}

func TestTimer_PauseWhilePausedIsNoop(t *testing.T) {
	svc, activities, clock, _, userID := newTimerFixture(t)
	ctx := context.Background()
	item := seedItem(t, activities, userID)

	sess, err := svc.Start(ctx, userID, item.ID, "")
	require.NoError(t, err)

	clock.advance(time.Minute)
	_, err = svc.Pause(ctx, userID)
	require.NoError(t, err)
	// 再暂停一次：不能多出一条暂停记录
	clock.advance(time.Minute)
	_, err = svc.Pause(ctx, userID)
	require.NoError(t, err)

	pauses, err := repository.NewSessionRepository(svc.sessions.DB).ListPauses(ctx, sess.ID)
	require.NoError(t, err)
	assert.Len(t, pauses, 1)
}

func TestTimer_ResumeWhileRunningIsNoop(t *testing.T) {
	svc, activities, clock, _, userID := newTimerFixture(t)
	ctx := context.Background()
	item := seedItem(t, activities, userID)

	_, err := svc.Start(ctx, userID, item.ID, "")
	require.NoError(t, err)

	clock.advance(time.Minute)
	sess, err := svc.Resume(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, sess.Status)
	assert.Equal(t, 0, sess.PauseCount)
	assert.Equal(t, int64(0), sess.PausedSeconds)
}

func TestTimer_StartWhileRunningIsHardError(t *testing.T) {
	svc, activities, _, _, userID := newTimerFixture(t)
	ctx := context.Background()
	item := seedItem(t, activities, userID)

	_, err := svc.Start(ctx, userID, item.ID, "")
	require.NoError(t, err)
	_, err = svc.Start(ctx, userID, item.ID, "")
	assert.ErrorIs(t, err, ErrSessionActive)

	// 暂停中同样不能再开
	_, err = svc.Pause(ctx, userID)
	require.NoError(t, err)
	_, err = svc.Start(ctx, userID, item.ID, "")
	assert.ErrorIs(t, err, ErrSessionActive)
}

func TestTimer_StopWhilePausedClosesOpenPause(t *testing.T) {
	// 暂停着停表：未闭合的暂停记录闭合到停表时刻，计入暂停时长和次数
	svc, activities, clock, _, userID := newTimerFixture(t)
	ctx := context.Background()
	item := seedItem(t, activities, userID)

	sess, err := svc.Start(ctx, userID, item.ID, "")
	require.NoError(t, err)

	clock.advance(10 * time.Minute)
	_, err = svc.Pause(ctx, userID)
	require.NoError(t, err)

	clock.advance(10 * time.Minute)
	done, err := svc.Stop(ctx, userID, true, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1200), done.TotalSeconds)
	assert.Equal(t, int64(600), done.PausedSeconds)
	assert.Equal(t, int64(600), done.ActiveSeconds)
	assert.Equal(t, 1, done.PauseCount)

	pauses, err := repository.NewSessionRepository(svc.sessions.DB).ListPauses(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, pauses, 1)
	require.NotNil(t, pauses[0].ResumeAt)
	assert.Equal(t, int64(600), pauses[0].DurationSeconds)
}

func TestTimer_StopWithoutSession(t *testing.T) {
	svc, _, _, _, userID := newTimerFixture(t)
	_, err := svc.Stop(context.Background(), userID, true, nil, nil)
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestTimer_CancelDoesNotEnqueueRefresh(t *testing.T) {
	svc, activities, clock, queue, userID := newTimerFixture(t)
	ctx := context.Background()
	item := seedItem(t, activities, userID)

	_, err := svc.Start(ctx, userID, item.ID, "")
	require.NoError(t, err)
	clock.advance(10 * time.Minute)
	done, err := svc.Stop(ctx, userID, false, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCancelled, done.Status)
	assert.Empty(t, queue.enqueued)
}

func TestTimer_ShortSessionSkipsRefresh(t *testing.T) {
	// 不到 60 秒的会话照常落库，但不触发汇总重算
	svc, activities, clock, queue, userID := newTimerFixture(t)
	ctx := context.Background()
	item := seedItem(t, activities, userID)

	_, err := svc.Start(ctx, userID, item.ID, "")
	require.NoError(t, err)
	clock.advance(30 * time.Second)
	done, err := svc.Stop(ctx, userID, true, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, done.Status)
	assert.Equal(t, int64(30), done.TotalSeconds)
	assert.Empty(t, queue.enqueued)
}

func TestTimer_CurrentSnapshot(t *testing.T) {
	svc, activities, clock, _, userID := newTimerFixture(t)
	ctx := context.Background()
	item := seedItem(t, activities, userID)

	_, err := svc.Current(ctx, userID)
	assert.ErrorIs(t, err, ErrNoActiveSession)

	_, err = svc.Start(ctx, userID, item.ID, "")
	require.NoError(t, err)

	clock.advance(10 * time.Minute)
	cur, err := svc.Current(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(600), cur.ElapsedTotalSeconds)
	assert.Equal(t, int64(600), cur.ElapsedActiveSeconds)

	// 暂停中的时间不算进活动秒数
	_, err = svc.Pause(ctx, userID)
	require.NoError(t, err)
	clock.advance(5 * time.Minute)
	cur, err = svc.Current(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaused, cur.Status)
	assert.Equal(t, int64(900), cur.ElapsedTotalSeconds)
	assert.Equal(t, int64(600), cur.ElapsedActiveSeconds)
}

func TestTimer_FocusCheck(t *testing.T) {
	svc, activities, clock, _, userID := newTimerFixture(t)
	ctx := context.Background()
	item := seedItem(t, activities, userID)

	_, err := svc.Start(ctx, userID, item.ID, "")
	require.NoError(t, err)
	clock.advance(30 * time.Minute)

	// 回答"是"：会话继续跑
	stopped, err := svc.FocusCheck(ctx, userID, true)
	require.NoError(t, err)
	assert.False(t, stopped)
	running, err := svc.Running(ctx, userID)
	require.NoError(t, err)
	assert.True(t, running)

	// 回答"否"：按完成自动停表
	stopped, err = svc.FocusCheck(ctx, userID, false)
	require.NoError(t, err)
	assert.True(t, stopped)
	running, err = svc.Running(ctx, userID)
	require.NoError(t, err)
	assert.False(t, running)
}

func TestTimer_StartUnknownItem(t *testing.T) {
	svc, _, _, _, userID := newTimerFixture(t)
	_, err := svc.Start(context.Background(), userID, "no-such-item", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTimer_DeleteSessionRemovesPauses(t *testing.T) {
	svc, activities, clock, _, userID := newTimerFixture(t)
	ctx := context.Background()
	item := seedItem(t, activities, userID)

	sess, err := svc.Start(ctx, userID, item.ID, "")
	require.NoError(t, err)
	clock.advance(time.Minute)
	_, err = svc.Pause(ctx, userID)
	require.NoError(t, err)
	clock.advance(time.Minute)
	_, err = svc.Stop(ctx, userID, true, nil, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(ctx, userID, sess.ID))

	pauses, err := repository.NewSessionRepository(svc.sessions.DB).ListPauses(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, pauses)
	err = svc.DeleteSession(ctx, userID, sess.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
