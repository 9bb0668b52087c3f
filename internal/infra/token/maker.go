package token

import (
	"time"

	"github.com/luxoptic/optistore/internal/domain/model"
)

// Maker token製作與驗證介面
type Maker interface {
	CreateToken(userID int, upn string, role model.UserRole, duration time.Duration) (string, *Payload, error)
	VertifyToken(token string) (*Payload, error)
}
