package service

import (
	"context"
	"errors"
	"strings"

	"github.com/mydayflow/MyDayFlow-BE/internal/models"
	"github.com/mydayflow/MyDayFlow-BE/internal/repository"
)

// UserService 游客账号：首次见到某个访客 ID 时建号并初始化默认分类
type UserService struct {
	users      *repository.UserRepository
	activities *ActivityService
}

func NewUserService(users *repository.UserRepository, activities *ActivityService) *UserService {
	return &UserService{users: users, activities: activities}
}

// EnsureUser 确保访客对应的用户存在；新用户顺手 seed 一份默认分类
// Seeded 标记保证默认数据只装一次
func (s *UserService) EnsureUser(ctx context.Context, visitorID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, visitorID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if user == nil {
		// 取 uuid 前缀做展示用户名
		short := visitorID
		if i := strings.IndexByte(visitorID, '-'); i > 0 {
			short = visitorID[:i]
		}
		user = &models.User{
			ID:       visitorID,
			Username: "guest-" + short,
			IsGuest:  true,
		}
		if err := s.users.CreateUser(ctx, user); err != nil {
			return nil, err
		}
	}
	if !user.Seeded {
		if err := s.activities.SeedDefaults(ctx, user.ID); err != nil {
			return nil, err
		}
		if err := s.users.MarkSeeded(ctx, user.ID); err != nil {
			return nil, err
		}
		user.Seeded = true
	}
	return user, nil
}
