package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type CheckoutRepoError error

var ErrCheckoutSessionNotFound CheckoutRepoError = errors.New("checkout session not found")

// CheckoutStep 結帳流程步驟
type CheckoutStep string

const (
	StepBilling      CheckoutStep = "billing"
	StepLens         CheckoutStep = "lens"
	StepPrescription CheckoutStep = "prescription"
	StepPayment      CheckoutStep = "payment"
)

// BillingInfo 帳單資料，全部欄位必填
type BillingInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
}

// CheckoutSession 結帳狀態機的持久化內容
// 與購物車同生命週期，結帳完成或逾時即清除
type CheckoutSession struct {
	UserID         int          `json:"user_id"`
	Step           CheckoutStep `json:"step"`
	Billing        *BillingInfo `json:"billing,omitempty"`
	DeliveryMethod string       `json:"delivery_method"`
	StartedAt      time.Time    `json:"started_at"`
}

// ICheckoutSessionRepo 結帳session存取
type ICheckoutSessionRepo interface {
	Get(ctx context.Context, userID int) (*CheckoutSession, error)
	Save(ctx context.Context, session *CheckoutSession) error
	Delete(ctx context.Context, userID int) error
}

type CheckoutSessionRepo struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCheckoutSessionRepo(client *redis.Client, ttl time.Duration) *CheckoutSessionRepo {
	return &CheckoutSessionRepo{client: client, ttl: ttl}
}

func checkoutKey(userID int) string {
	return fmt.Sprintf("checkout:%d", userID)
}

func (r *CheckoutSessionRepo) Get(ctx context.Context, userID int) (*CheckoutSession, error) {
	data, err := r.client.Get(ctx, checkoutKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCheckoutSessionNotFound
		}
		return nil, fmt.Errorf("failed to get checkout session: %w", err)
	}

	var session CheckoutSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkout session: %w", err)
	}
	return &session, nil
}

func (r *CheckoutSessionRepo) Save(ctx context.Context, session *CheckoutSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout session: %w", err)
	}
	return r.client.Set(ctx, checkoutKey(session.UserID), data, r.ttl).Err()
}

func (r *CheckoutSessionRepo) Delete(ctx context.Context, userID int) error {
	return r.client.Del(ctx, checkoutKey(userID)).Err()
}

var _ ICheckoutSessionRepo = (*CheckoutSessionRepo)(nil)
