package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mydayflow/MyDayFlow-BE/internal/models"
)

// ActivityRepository 分类和事项的数据访问
// 约定：正常查询一律带 is_active=true，软删除的数据对外不可见
type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) CreateCategory(ctx context.Context, c *models.ActivityCategory) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

// ListCategories 列出该用户所有未删除的分类，按 sort_order 排序
func (r *ActivityRepository) ListCategories(ctx context.Context, userID string) ([]models.ActivityCategory, error) {
	var cats []models.ActivityCategory
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("sort_order ASC, created_at ASC").Find(&cats).Error
	return cats, err
}

func (r *ActivityRepository) GetCategory(ctx context.Context, userID, id string) (*models.ActivityCategory, error) {
	var c models.ActivityCategory
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_active = ?", id, userID, true).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ActivityRepository) UpdateCategory(ctx context.Context, c *models.ActivityCategory) error {
	return r.DB.WithContext(ctx).Save(c).Error
}

// SoftDeleteCategory 软删除分类并级联到它下面的事项（同一事务）
// 只打 is_active=false 标记，历史会话还能关联到名字
func (r *ActivityRepository) SoftDeleteCategory(ctx context.Context, userID, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ActivityCategory{}).
			Where("id = ? AND user_id = ? AND is_active = ?", id, userID, true).
			Update("is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&models.ActivityItem{}).
			Where("category_id = ? AND user_id = ?", id, userID).
			Update("is_active", false).Error
	})
}

func (r *ActivityRepository) CreateItem(ctx context.Context, it *models.ActivityItem) error {
	return r.DB.WithContext(ctx).Create(it).Error
}

// ListItems 列出事项，categoryID 传空串表示不按分类过滤
func (r *ActivityRepository) ListItems(ctx context.Context, userID, categoryID string) ([]models.ActivityItem, error) {
	q := r.DB.WithContext(ctx).Where("user_id = ? AND is_active = ?", userID, true)
	if categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	var items []models.ActivityItem
	err := q.Order("sort_order ASC, created_at ASC").Find(&items).Error
	return items, err
}

func (r *ActivityRepository) GetItem(ctx context.Context, userID, id string) (*models.ActivityItem, error) {
	var it models.ActivityItem
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_active = ?", id, userID, true).
		First(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *ActivityRepository) UpdateItem(ctx context.Context, it *models.ActivityItem) error {
	return r.DB.WithContext(ctx).Save(it).Error
}

func (r *ActivityRepository) SoftDeleteItem(ctx context.Context, userID, id string) error {
	res := r.DB.WithContext(ctx).Model(&models.ActivityItem{}).
		Where("id = ? AND user_id = ? AND is_active = ?", id, userID, true).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
