package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mydayflow/MyDayFlow-BE/internal/models"
)

// SummaryRepository 每日汇总（后台任务维护的派生数据）
type SummaryRepository struct {
	DB *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{DB: db}
}

// Upsert 按 (user_id, date) 覆盖写一条汇总
func (r *SummaryRepository) Upsert(ctx context.Context, s *models.DailySummary) error {
	var existing models.DailySummary
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND date = ?", s.UserID, s.Date).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.DB.WithContext(ctx).Create(s).Error
	}
	if err != nil {
		return err
	}
	existing.TotalSeconds = s.TotalSeconds
	existing.SessionCount = s.SessionCount
	existing.UpdatedAt = time.Now()
	return r.DB.WithContext(ctx).Save(&existing).Error
}

// ListRange 取某段日期（闭区间，YYYY-MM-DD 字符串可以直接按字典序比）的汇总
func (r *SummaryRepository) ListRange(ctx context.Context, userID, fromDate, toDate string) ([]models.DailySummary, error) {
	var out []models.DailySummary
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, fromDate, toDate).
		Order("date ASC").Find(&out).Error
	return out, err
}
