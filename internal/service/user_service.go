package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/luxoptic/optistore/internal/constants"
	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/infra/repository/db"
	"github.com/luxoptic/optistore/internal/infra/token"
	"github.com/luxoptic/optistore/internal/pkg/util"
)

var (
	ErrUserNotExist      = errors.New("user is not exist")
	ErrUserAlreadyExist  = errors.New("user already exist")
	ErrPasswordIncorrect = errors.New("password incorrect")
	ErrInvalidRole       = errors.New("invalid user role")
	ErrSelfRoleDowngrade = errors.New("admin cannot change own role")
)

// RegisterParams 註冊參數，role由admin建立員工帳號時指定，一般註冊固定customer
type RegisterParams struct {
	UserName string
	Email    string
	Phone    string
	Address  string
	Password string
	Role     model.UserRole
}

// LoginResult token與使用者資料一起回
type LoginResult struct {
	AccessToken string      `json:"access_token"`
	ExpiredAt   time.Time   `json:"expired_at"`
	User        *model.User `json:"user"`
}

type IUserService interface {
	Register(ctx context.Context, params RegisterParams) (*model.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	GetUser(ctx context.Context, userID int) (*model.User, error)
	GetAllUsers(ctx context.Context) ([]model.User, error)
	GetUsersByRole(ctx context.Context, role model.UserRole) ([]model.User, error)
	UpdateProfile(ctx context.Context, userID int, updates map[string]interface{}) error
	UpdateRole(ctx context.Context, operatorID, userID int, role model.UserRole) error
	UpdatePreferences(ctx context.Context, userID int, preferences string) error
	DeleteUser(ctx context.Context, userID int) error
}

type UserService struct {
	userRepo   db.IUserRepository
	tokenMaker token.Maker
}

func NewUserService(userRepo db.IUserRepository, tokenMaker token.Maker) *UserService {
	return &UserService{
		userRepo:   userRepo,
		tokenMaker: tokenMaker,
	}
}

func (s *UserService) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	existing, err := s.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserAlreadyExist
	}

	role := params.Role
	if role == "" {
		role = model.RoleCustomer
	}
	if !model.IsValidUserRole(string(role)) {
		return nil, ErrInvalidRole
	}

	hashed, err := util.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserName:       params.UserName,
		UserEmail:      params.Email,
		UserPhone:      params.Phone,
		UserAddress:    params.Address,
		HashedPassword: hashed,
		Role:           role,
	}
	return s.userRepo.CreateUser(ctx, user)
}

func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotExist
	}

	if err := util.CheckPassword(password, user.HashedPassword); err != nil {
		return nil, ErrPasswordIncorrect
	}

	duration := time.Duration(constants.AccessTokenDuration) * time.Hour
	accessToken, payload, err := s.tokenMaker.CreateToken(user.UserID, user.UserEmail, user.Role, duration)
	if err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}

	return &LoginResult{
		AccessToken: accessToken,
		ExpiredAt:   payload.ExpiredAt,
		User:        user,
	}, nil
}

func (s *UserService) GetUser(ctx context.Context, userID int) (*model.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotExist
	}
	return user, nil
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.GetAllUsers(ctx)
}

func (s *UserService) GetUsersByRole(ctx context.Context, role model.UserRole) ([]model.User, error) {
	if !model.IsValidUserRole(string(role)) {
		return nil, ErrInvalidRole
	}
	return s.userRepo.GetUsersByRole(ctx, role)
}

// UpdateProfile 局部更新，只允許白名單欄位
func (s *UserService) UpdateProfile(ctx context.Context, userID int, updates map[string]interface{}) error {
	allowed := map[string]bool{
		"user_name":    true,
		"user_phone":   true,
		"user_address": true,
	}
	filtered := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		if allowed[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return s.userRepo.PatchUserFields(ctx, userID, filtered)
}

// UpdateRole admin改他人角色，不允許改自己
func (s *UserService) UpdateRole(ctx context.Context, operatorID, userID int, role model.UserRole) error {
	if operatorID == userID {
		return ErrSelfRoleDowngrade
	}
	if !model.IsValidUserRole(string(role)) {
		return ErrInvalidRole
	}
	return s.userRepo.PatchUserFields(ctx, userID, map[string]interface{}{"role": role})
}

func (s *UserService) UpdatePreferences(ctx context.Context, userID int, preferences string) error {
	return s.userRepo.PatchUserFields(ctx, userID, map[string]interface{}{"preferences": preferences})
}

func (s *UserService) DeleteUser(ctx context.Context, userID int) error {
	return s.userRepo.DeleteUser(ctx, userID)
}

var _ IUserService = (*UserService)(nil)
