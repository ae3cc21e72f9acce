package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mydayflow/MyDayFlow-BE/internal/models"
)

var ErrNotFound = errors.New("record not found")

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateUser 创建用户
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

// GetByID 按 ID（即访客 uuid）查用户
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// MarkSeeded 标记默认分类已初始化，避免重复 seed
func (r *UserRepository) MarkSeeded(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).Update("seeded", true).Error
}
