package token

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/luxoptic/optistore/internal/domain/model"
)

var (
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidToken = errors.New("token is invalid")
)

// Payload token內容，role決定可存取的dashboard route
type Payload struct {
	ID        uuid.UUID      `json:"id"`
	UserID    int            `json:"user_id"`
	UPN       string         `json:"upn"` // user email
	Role      model.UserRole `json:"role"`
	IssuedAt  time.Time      `json:"issued_at"`
	ExpiredAt time.Time      `json:"expired_at"`
}

func NewPayload(userID int, upn string, role model.UserRole, duration time.Duration) (*Payload, error) {
	tokenID, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	payload := &Payload{
		ID:        tokenID,
		UserID:    userID,
		UPN:       upn,
		Role:      role,
		IssuedAt:  time.Now(),
		ExpiredAt: time.Now().Add(duration),
	}
	return payload, nil
}

func (payload *Payload) Valid() error {
	if time.Now().After(payload.ExpiredAt) {
		return ErrExpiredToken
	}
	return nil
}
