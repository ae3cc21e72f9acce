package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mydayflow/MyDayFlow-BE/internal/models"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *models.TimerSession) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

// FindMutable 查该用户最近一条还能变更的会话（active 或 paused）
// 这样保证同一时间只有一个活跃会话被修改
func (r *SessionRepository) FindMutable(ctx context.Context, userID string) (*models.TimerSession, error) {
	var s models.TimerSession
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, []string{models.StatusActive, models.StatusPaused}).
		Order("start_at DESC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Get 带暂停记录取一条会话
func (r *SessionRepository) Get(ctx context.Context, userID, id string) (*models.TimerSession, error) {
	var s models.TimerSession
	err := r.DB.WithContext(ctx).Preload("PauseRecords").
		Where("id = ? AND user_id = ?", id, userID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) Update(ctx context.Context, s *models.TimerSession) error {
	return r.DB.WithContext(ctx).Save(s).Error
}

// ListCompletedSince 列出某时间点之后开始的已完成会话（统计用），含暂停记录
func (r *SessionRepository) ListCompletedSince(ctx context.Context, userID string, since time.Time) ([]models.TimerSession, error) {
	var out []models.TimerSession
	q := r.DB.WithContext(ctx).Preload("PauseRecords").
		Where("user_id = ? AND status = ?", userID, models.StatusCompleted)
	if !since.IsZero() {
		q = q.Where("start_at >= ?", since)
	}
	err := q.Order("start_at ASC").Find(&out).Error
	return out, err
}

// ListOverlapping 列出与 [from, to) 有重叠的已结束会话（按天切片要把前一天跨夜的也捞进来）
func (r *SessionRepository) ListOverlapping(ctx context.Context, userID string, from, to time.Time) ([]models.TimerSession, error) {
	var out []models.TimerSession
	err := r.DB.WithContext(ctx).Preload("PauseRecords").
		Where("user_id = ? AND status IN ? AND start_at < ? AND (end_at IS NULL OR end_at > ?)",
			userID, []string{models.StatusCompleted, models.StatusActive, models.StatusPaused}, to, from).
		Order("start_at ASC").Find(&out).Error
	return out, err
}

// Delete 直接物理删除会话和它的暂停记录（少数场景，正常流程不删）
func (r *SessionRepository) Delete(ctx context.Context, userID, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.TimerSession{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("session_id = ?", id).Delete(&models.PauseRecord{}).Error
	})
}

func (r *SessionRepository) CreatePause(ctx context.Context, p *models.PauseRecord) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

// OpenPause 取会话当前未闭合的暂停记录（resume_at 为空的那条，至多一条）
func (r *SessionRepository) OpenPause(ctx context.Context, sessionID string) (*models.PauseRecord, error) {
	var p models.PauseRecord
	err := r.DB.WithContext(ctx).
		Where("session_id = ? AND resume_at IS NULL", sessionID).
		Order("pause_at DESC").First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SessionRepository) UpdatePause(ctx context.Context, p *models.PauseRecord) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *SessionRepository) ListPauses(ctx context.Context, sessionID string) ([]models.PauseRecord, error) {
	var out []models.PauseRecord
	err := r.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).Order("pause_at ASC").Find(&out).Error
	return out, err
}

// Transaction 给 service 层用的事务入口，回调里拿到的是绑定事务的仓库
func (r *SessionRepository) Transaction(ctx context.Context, fn func(txRepo *SessionRepository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewSessionRepository(tx))
	})
}
