package redis_repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

type ProductRepoError error

var (
	ErrProductNotFound       ProductRepoError = errors.New("product not found")
	ErrProductStockNotEnough ProductRepoError = errors.New("product stock not enough")
)

// IStockRepository 定義redis庫存操作介面
// 庫存以redis為唯一真相來源，結帳扣庫存、取消回補都走這裡
type IStockRepository interface {
	// InitStock 商品上架時初始化庫存
	InitStock(ctx context.Context, productID string, qty uint) error

	// OnHand 取得目前可售數量
	OnHand(ctx context.Context, productID string) (int, error)

	// Restock 回補庫存，回傳回補後數量
	Restock(ctx context.Context, productID string, qty uint) (int, error)

	// SetStock 盤點後直接覆寫庫存
	SetStock(ctx context.Context, productID string, qty uint) error

	// DropStock 商品下架時移除庫存資料
	DropStock(ctx context.Context, productID string) error

	// DeductStock 原子性扣庫存，不足時整筆不扣
	DeductStock(ctx context.Context, productID string, qty uint) (int, error)
}

/*	鏡框/配件共用同一套庫存結構，鏡片加工不佔庫存
	結構:
	inventory:{productID} { on_hand: 100 }*/

type StockRepo struct {
	client *redis.Client
}

func NewStockRepo(client *redis.Client) *StockRepo {
	return &StockRepo{client: client}
}

const onHandField = "on_hand"

func stockKey(productID string) string {
	return fmt.Sprintf("inventory:%s", productID)
}

func (s *StockRepo) InitStock(ctx context.Context, productID string, qty uint) error {
	return s.client.HSet(ctx, stockKey(productID), onHandField, qty).Err()
}

// 錯誤:
//   - ErrProductNotFound: 商品不存在
//   - err: 其他錯誤
func (s *StockRepo) OnHand(ctx context.Context, productID string) (int, error) {
	raw, err := s.client.HGet(ctx, stockKey(productID), onHandField).Result()
	if err == redis.Nil {
		return 0, ErrProductNotFound
	}
	if err != nil {
		return 0, err
	}

	onHand, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return int(onHand), nil
}

// Restock 取消訂單、付款失敗時回補
func (s *StockRepo) Restock(ctx context.Context, productID string, qty uint) (int, error) {
	result := s.client.HIncrBy(ctx, stockKey(productID), onHandField, int64(qty))
	if err := result.Err(); err != nil {
		return 0, err
	}
	return int(result.Val()), nil
}

func (s *StockRepo) SetStock(ctx context.Context, productID string, qty uint) error {
	return s.client.HSet(ctx, stockKey(productID), onHandField, qty).Err()
}

func (s *StockRepo) DropStock(ctx context.Context, productID string) error {
	return s.client.Del(ctx, stockKey(productID)).Err()
}

// 扣庫存script，檢查與扣減同一回合完成
// -1: 商品不存在 / -2: 庫存不足，其餘為扣減後數量
const deductStockScript = `
local key = KEYS[1]
local want = tonumber(ARGV[1])

local have = redis.call('HGET', key, 'on_hand')
if not have then
	return -1
end

if tonumber(have) < want then
	return -2
end

return redis.call('HINCRBY', key, 'on_hand', -want)
`

// DeductStock 結帳時扣庫存
// 錯誤:
//   - ErrProductNotFound: 商品不存在
//   - ErrProductStockNotEnough: 庫存不足，庫存維持原樣
//   - err: 其他錯誤
func (s *StockRepo) DeductStock(ctx context.Context, productID string, qty uint) (int, error) {
	result, err := s.client.Eval(ctx, deductStockScript, []string{stockKey(productID)}, qty).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to deduct stock: %w", err)
	}

	remaining, ok := result.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected result type: %T", result)
	}

	switch remaining {
	case -1:
		return 0, fmt.Errorf("%w: product with id %s not found", ErrProductNotFound, productID)
	case -2:
		return 0, fmt.Errorf("%w: product with id %s stock not enough", ErrProductStockNotEnough, productID)
	default:
		return int(remaining), nil
	}
}

var _ IStockRepository = (*StockRepo)(nil)
