package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mydayflow/MyDayFlow-BE/internal/models"
	"github.com/mydayflow/MyDayFlow-BE/internal/repository"
)

// ActivityService 分类/事项的增删改查 + 新用户默认数据初始化
type ActivityService struct {
	activities *repository.ActivityRepository
}

func NewActivityService(activities *repository.ActivityRepository) *ActivityService {
	return &ActivityService{activities: activities}
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	SortOrder   int    `json:"sort_order"`
}

type ItemInput struct {
	CategoryID       string `json:"category_id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	SortOrder        int    `json:"sort_order"`
}

func (s *ActivityService) ListCategories(ctx context.Context, userID string) ([]models.ActivityCategory, error) {
	return s.activities.ListCategories(ctx, userID)
}

func (s *ActivityService) CreateCategory(ctx context.Context, userID string, in CategoryInput) (*models.ActivityCategory, error) {
	// 必填校验在发请求前就做，省一次数据库往返
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	c := &models.ActivityCategory{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Icon:        in.Icon,
		Color:       in.Color,
		IsActive:    true,
		SortOrder:   in.SortOrder,
	}
	if err := s.activities.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ActivityService) UpdateCategory(ctx context.Context, userID, id string, in CategoryInput) (*models.ActivityCategory, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	c, err := s.activities.GetCategory(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Description = in.Description
	c.Icon = in.Icon
	c.Color = in.Color
	c.SortOrder = in.SortOrder
	if err := s.activities.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory 软删除，级联软删除分类下的事项
func (s *ActivityService) DeleteCategory(ctx context.Context, userID, id string) error {
	return s.activities.SoftDeleteCategory(ctx, userID, id)
}

func (s *ActivityService) ListItems(ctx context.Context, userID, categoryID string) ([]models.ActivityItem, error) {
	return s.activities.ListItems(ctx, userID, categoryID)
}

func (s *ActivityService) CreateItem(ctx context.Context, userID string, in ItemInput) (*models.ActivityItem, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	// 分类必须存在且未删除
	if _, err := s.activities.GetCategory(ctx, userID, in.CategoryID); err != nil {
		return nil, fmt.Errorf("%w: unknown category", ErrInvalidInput)
	}
	it := &models.ActivityItem{
		ID:               uuid.NewString(),
		CategoryID:       in.CategoryID,
		UserID:           userID,
		Name:             strings.TrimSpace(in.Name),
		Description:      in.Description,
		EstimatedMinutes: in.EstimatedMinutes,
		IsActive:         true,
		SortOrder:        in.SortOrder,
	}
	if err := s.activities.CreateItem(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *ActivityService) UpdateItem(ctx context.Context, userID, id string, in ItemInput) (*models.ActivityItem, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	it, err := s.activities.GetItem(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	it.Name = strings.TrimSpace(in.Name)
	it.Description = in.Description
	it.EstimatedMinutes = in.EstimatedMinutes
	it.SortOrder = in.SortOrder
	if err := s.activities.UpdateItem(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *ActivityService) DeleteItem(ctx context.Context, userID, id string) error {
	return s.activities.SoftDeleteItem(ctx, userID, id)
}

// SeedDefaults 给新用户装一份默认分类和事项
func (s *ActivityService) SeedDefaults(ctx context.Context, userID string) error {
	for i, sc := range models.DefaultCatalog {
		c := &models.ActivityCategory{
			ID:          uuid.NewString(),
			UserID:      userID,
			Name:        sc.Name,
			Description: sc.Description,
			Icon:        sc.Icon,
			Color:       sc.Color,
			IsActive:    true,
			SortOrder:   i,
		}
		if err := s.activities.CreateCategory(ctx, c); err != nil {
			return err
		}
		for j, si := range sc.Items {
			it := &models.ActivityItem{
				ID:               uuid.NewString(),
				CategoryID:       c.ID,
				UserID:           userID,
				Name:             si.Name,
				Description:      si.Description,
				EstimatedMinutes: si.EstimatedMinutes,
				IsActive:         true,
				SortOrder:        j,
			}
			if err := s.activities.CreateItem(ctx, it); err != nil {
				return err
			}
		}
	}
	return nil
}
