package db

import (
	"context"
	"errors"

	"github.com/luxoptic/optistore/internal/domain/model"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *DbDao
}

func NewUserRepo(db *DbDao) *UserRepo {
	return &UserRepo{db: db}
}

// Create - 創建用戶
func (s *UserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Read - 根據ID查詢用戶
func (s *UserRepo) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Read - 查詢所有用戶
func (s *UserRepo) GetAllUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).Find(&users).Error
	return users, err
}

// Read - 根據Email查詢用戶
func (s *UserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("user_email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Read - 根據角色查詢用戶
func (s *UserRepo) GetUsersByRole(ctx context.Context, role model.UserRole) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).Where("role = ?", role).Find(&users).Error
	return users, err
}

// Update - 更新用戶
func (s *UserRepo) UpdateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Save(user).Error
}

// Update - 部分更新用戶
func (s *UserRepo) PatchUserFields(ctx context.Context, id int, updates map[string]interface{}) error {
	return s.db.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", id).Updates(updates).Error
}

// Delete - 軟刪除用戶
func (s *UserRepo) DeleteUser(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Delete(&model.User{}, id).Error
}

// CountUsersByRole dashboard彙總
func (s *UserRepo) CountUsersByRole(ctx context.Context, role model.UserRole) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.User{}).Where("role = ?", role).Count(&total).Error
	return total, err
}
