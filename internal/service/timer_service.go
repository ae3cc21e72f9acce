package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mydayflow/MyDayFlow-BE/internal/models"
	"github.com/mydayflow/MyDayFlow-BE/internal/pkg/logger"
	"github.com/mydayflow/MyDayFlow-BE/internal/repository"
)

// RefreshEnqueuer 完成会话后触发每日汇总重算（非阻塞，失败只记日志）
type RefreshEnqueuer interface {
	Enqueue(userID string) bool
}

// TimerService 计时状态机：Idle -> Running -> Paused <-> Running -> Stopped -> Idle
// 持久化的会话记录就是权威状态，不在内存里另存一份
type TimerService struct {
	sessions   *repository.SessionRepository
	activities *repository.ActivityRepository
	queue      RefreshEnqueuer
	log        *logger.Logger

	minSessionSec int64
	// Now 可注入，测试用；默认 time.Now
	Now func() time.Time
}

func NewTimerService(sessions *repository.SessionRepository, activities *repository.ActivityRepository,
	queue RefreshEnqueuer, log *logger.Logger, minSessionSec int64) *TimerService {
	return &TimerService{
		sessions:      sessions,
		activities:    activities,
		queue:         queue,
		log:           log,
		minSessionSec: minSessionSec,
		Now:           time.Now,
	}
}

// CurrentState 当前计时的快照（纯展示，不改权威状态）
type CurrentState struct {
	SessionID            string    `json:"session_id"`
	ItemID               string    `json:"item_id"`
	CategoryID           string    `json:"category_id"`
	Status               string    `json:"status"`
	StartAt              time.Time `json:"start_at"`
	ElapsedTotalSeconds  int64     `json:"elapsed_total_seconds"`
	ElapsedActiveSeconds int64     `json:"elapsed_active_seconds"`
	PauseCount           int       `json:"pause_count"`
}

// Start 开始计时。已经有 active/paused 会话时是硬错误（不能同时开两个表）
func (s *TimerService) Start(ctx context.Context, userID, itemID, categoryID string) (*models.TimerSession, error) {
	if _, err := s.sessions.FindMutable(ctx, userID); err == nil {
		return nil, ErrSessionActive
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// 校验事项存在且未被软删除；分类以事项记录的为准
	item, err := s.activities.GetItem(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown item", ErrInvalidInput)
		}
		return nil, err
	}
	if categoryID == "" {
		categoryID = item.CategoryID
	}
	if categoryID != item.CategoryID {
		return nil, fmt.Errorf("%w: item not in category", ErrInvalidInput)
	}

	sess := &models.TimerSession{
		ID:         uuid.NewString(),
		UserID:     userID,
		ItemID:     itemID,
		CategoryID: categoryID,
		Status:     models.StatusActive,
		StartAt:    s.Now(),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Pause 暂停。不在 Running 就什么都不做，直接返回当前会话（不会再开一条暂停记录）
func (s *TimerService) Pause(ctx context.Context, userID string) (*models.TimerSession, error) {
	sess, err := s.findMutable(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sess.Status != models.StatusActive {
		return sess, nil
	}
	now := s.Now()
	err = s.sessions.Transaction(ctx, func(tx *repository.SessionRepository) error {
		if err := tx.CreatePause(ctx, &models.PauseRecord{
			ID:        uuid.NewString(),
			SessionID: sess.ID,
			PauseAt:   now,
		}); err != nil {
			return err
		}
		sess.Status = models.StatusPaused
		return tx.Update(ctx, sess)
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// Resume 恢复。不在 Paused 就什么都不做
// 闭合当前暂停记录并把暂停时长累进会话
func (s *TimerService) Resume(ctx context.Context, userID string) (*models.TimerSession, error) {
	sess, err := s.findMutable(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sess.Status != models.StatusPaused {
		return sess, nil
	}
	now := s.Now()
	err = s.sessions.Transaction(ctx, func(tx *repository.SessionRepository) error {
		p, err := tx.OpenPause(ctx, sess.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if p != nil {
			d := int64(now.Sub(p.PauseAt).Seconds())
			p.ResumeAt = &now
			p.DurationSeconds = d
			if err := tx.UpdatePause(ctx, p); err != nil {
				return err
			}
			sess.PausedSeconds += d
			sess.PauseCount++
		}
		sess.Status = models.StatusActive
		return tx.Update(ctx, sess)
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// Stop 停表，completed=false 表示放弃（cancelled）
// 暂停着停表时，把未闭合的暂停记录闭合到停表时刻并计入暂停时长
// totalSeconds 是墙钟跨度，activeSeconds = total - 累计暂停
func (s *TimerService) Stop(ctx context.Context, userID string, completed bool, feedback *string, rating *int) (*models.TimerSession, error) {
	sess, err := s.findMutable(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	err = s.sessions.Transaction(ctx, func(tx *repository.SessionRepository) error {
		p, err := tx.OpenPause(ctx, sess.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if p != nil {
			d := int64(now.Sub(p.PauseAt).Seconds())
			p.ResumeAt = &now
			p.DurationSeconds = d
			if err := tx.UpdatePause(ctx, p); err != nil {
				return err
			}
			sess.PausedSeconds += d
			sess.PauseCount++
		}
		sess.TotalSeconds = int64(now.Sub(sess.StartAt).Seconds())
		sess.ActiveSeconds = sess.TotalSeconds - sess.PausedSeconds
		if sess.ActiveSeconds < 0 {
			sess.ActiveSeconds = 0
		}
		sess.EndAt = &now
		sess.Feedback = feedback
		sess.Rating = rating
		if completed {
			sess.Status = models.StatusCompleted
		} else {
			sess.Status = models.StatusCancelled
		}
		return tx.Update(ctx, sess)
	})
	if err != nil {
		return nil, err
	}

	// 完成的会话触发每日汇总重算；太短的就不折腾了
	// 入队失败（队列满/worker 没起）只记日志，不影响停表本身
	if completed && sess.TotalSeconds >= s.minSessionSec && s.queue != nil {
		if !s.queue.Enqueue(userID) {
			s.log.Error("summary refresh enqueue failed", "user", userID, "session", sess.ID)
		}
	}
	return sess, nil
}

// Current 当前计时快照，给前端每秒刷新的显示用
// 活动秒数 = now - 开始 - 已累计暂停 - 当前这次还没恢复的暂停
func (s *TimerService) Current(ctx context.Context, userID string) (*CurrentState, error) {
	sess, err := s.findMutable(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	total := int64(now.Sub(sess.StartAt).Seconds())
	paused := sess.PausedSeconds
	if sess.Status == models.StatusPaused {
		if p, err := s.sessions.OpenPause(ctx, sess.ID); err == nil {
			paused += int64(now.Sub(p.PauseAt).Seconds())
		}
	}
	active := total - paused
	if active < 0 {
		active = 0
	}
	return &CurrentState{
		SessionID:            sess.ID,
		ItemID:               sess.ItemID,
		CategoryID:           sess.CategoryID,
		Status:               sess.Status,
		StartAt:              sess.StartAt,
		ElapsedTotalSeconds:  total,
		ElapsedActiveSeconds: active,
		PauseCount:           sess.PauseCount,
	}, nil
}

// FocusCheck 专注检查的后端半边：后台 worker 定期问"还在专注吗"
// 回答否就自动按完成停表；回答是只确认一下
func (s *TimerService) FocusCheck(ctx context.Context, userID string, focused bool) (stopped bool, err error) {
	if _, err := s.findMutable(ctx, userID); err != nil {
		return false, err
	}
	if focused {
		return false, nil
	}
	_, err = s.Stop(ctx, userID, true, nil, nil)
	return err == nil, err
}

// Running 是否有会话在进行（active 或 paused）
func (s *TimerService) Running(ctx context.Context, userID string) (bool, error) {
	_, err := s.sessions.FindMutable(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListSessions 按时间范围列会话（含暂停记录），range 为 7d/30d/all
func (s *TimerService) ListSessions(ctx context.Context, userID string, since time.Time) ([]models.TimerSession, error) {
	return s.sessions.ListCompletedSince(ctx, userID, since)
}

// DeleteSession 直接物理删除（正常流程不会走到，管理记录页的删除按钮用）
func (s *TimerService) DeleteSession(ctx context.Context, userID, id string) error {
	return s.sessions.Delete(ctx, userID, id)
}

func (s *TimerService) findMutable(ctx context.Context, userID string) (*models.TimerSession, error) {
	sess, err := s.sessions.FindMutable(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoActiveSession
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}
