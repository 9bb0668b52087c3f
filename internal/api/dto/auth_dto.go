package dto

import "time"

// TokenInfo 表示令牌資訊
type TokenInfo struct {
	Value     string    `json:"value"`
	ExpiredAt time.Time `json:"expired_at"`
}

// UserDTO 表示用戶資訊
type UserDTO struct {
	UserID      int    `json:"user_id"`
	UserName    string `json:"user_name"`
	UserEmail   string `json:"user_email"`
	UserPhone   string `json:"user_phone"`
	UserAddress string `json:"user_address"`
	Role        string `json:"role"`
	Preferences string `json:"preferences,omitempty"`
}

// LoginResponse 表示登入響應的完整結構
type LoginResponse struct {
	AccessToken TokenInfo `json:"access_token"`
	User        UserDTO   `json:"user"`
}

type RegisterDTO struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password"` //密碼明文
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"` //密碼明文
}

type UpdateProfileDTO struct {
	UserName string `json:"user_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

type UpdatePreferencesDTO struct {
	Preferences string `json:"preferences"`
}

// CreateStaffUserDTO admin建立員工帳號
type CreateStaffUserDTO struct {
	RegisterDTO
	Role string `json:"role"`
}

type UpdateUserRoleDTO struct {
	Role string `json:"role"`
}
