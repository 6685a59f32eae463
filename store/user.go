package store

import (
	"errors"
	"fmt"

	"campus-map/model"

	"gorm.io/gorm"
)

// UserStore 用户仓库 (登录注册用)
type UserStore struct {
	db *gorm.DB
}

// NewUserStore 创建用户仓库
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByUsername 按用户名查找用户；不存在时返回 (nil, nil)
func (s *UserStore) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}

// Create 创建新用户
func (s *UserStore) Create(user *model.User) error {
	if err := s.db.Create(user).Error; err != nil {
		return fmt.Errorf("创建用户失败: %w", err)
	}
	return nil
}
