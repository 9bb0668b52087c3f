package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
)

var (
	ErrPaymentDeclined    = errors.New("payment declined")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

// ChargeRequest 送往金流閘道的扣款請求
type ChargeRequest struct {
	OrderID    string          `json:"order_id"`
	UserID     int             `json:"user_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	CardToken  string          `json:"card_token"`
	Descriptor string          `json:"descriptor"`
}

type ChargeResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	Message       string `json:"message"`
}

// IPaymentClient 金流閘道客戶端
type IPaymentClient interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResponse, error)
}

// Client resty + circuit breaker
// 閘道連續失敗時斷路，避免結帳請求堆積
type Client struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	baseURL string
	apiKey  string
}

func NewClient(baseURL, apiKey string) *Client {
	settings := gobreaker.Settings{
		Name:        "payment-gateway",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &Client{
		http: resty.New().
			SetTimeout(10 * time.Second).
			SetRetryCount(0), // 不自動重試，交給斷路器
		breaker: gobreaker.NewCircuitBreaker(settings),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (c *Client) Charge(ctx context.Context, req ChargeRequest) (*ChargeResponse, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		var chargeResp ChargeResponse
		resp, err := c.http.R().
			SetContext(ctx).
			SetHeader("Authorization", "Bearer "+c.apiKey).
			SetBody(req).
			SetResult(&chargeResp).
			Post(c.baseURL + "/v1/charges")
		if err != nil {
			return nil, err
		}
		if resp.StatusCode() == http.StatusPaymentRequired || resp.StatusCode() == http.StatusUnprocessableEntity {
			return nil, fmt.Errorf("%w: %s", ErrPaymentDeclined, chargeResp.Message)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode())
		}
		return &chargeResp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrGatewayUnavailable
		}
		return nil, err
	}
	return result.(*ChargeResponse), nil
}

var _ IPaymentClient = (*Client)(nil)
