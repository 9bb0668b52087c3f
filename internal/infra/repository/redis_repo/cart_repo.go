package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/redis/go-redis/v9"
)

type CartRepoError error

var (
	ErrCartItemNotFound CartRepoError = errors.New("cart item not found")
	ErrInvalidQuantity  CartRepoError = errors.New("invalid quantity")
)

/*
	購物車只存在redis，session範圍，結帳完成或手動清空時刪除
	結構:
	cart:{userID}:items  hash  productID -> quantity
	cart:{userID}:lens   hash  productID -> lens option JSON
*/

type CartRepo struct {
	cartCache *redis.Client
	ttl       time.Duration
}

func NewCartRepo(cartCache *redis.Client, ttl time.Duration) *CartRepo {
	return &CartRepo{cartCache: cartCache, ttl: ttl}
}

func generateCartItemKey(userID int) string {
	return fmt.Sprintf("cart:%d:items", userID)
}

func generateCartLensKey(userID int) string {
	return fmt.Sprintf("cart:%d:lens", userID)
}

// AddItem 加入商品
// 同一商品再次加入時累加數量而不是新增一行
func (r *CartRepo) AddItem(ctx context.Context, userID int, productID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	itemsKey := generateCartItemKey(userID)

	// 使用 Lua 腳本執行原子累加並刷新TTL
	luaScript := `
		local key = KEYS[1]
		local product_id = ARGV[1]
		local delta = tonumber(ARGV[2])
		local ttl = tonumber(ARGV[3])

		local result = redis.call('HINCRBY', key, product_id, delta)
		redis.call('EXPIRE', key, ttl)
		return result
	`

	_, err := r.cartCache.Eval(ctx, luaScript, []string{itemsKey}, productID, quantity, int(r.ttl.Seconds())).Result()
	if err != nil {
		return fmt.Errorf("failed to add item to cart: %w", err)
	}
	return nil
}

// UpdateQuantity 設定商品數量
// 小於1直接拒絕，呼叫端要刪除商品必須走RemoveItem
func (r *CartRepo) UpdateQuantity(ctx context.Context, userID int, productID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	itemsKey := generateCartItemKey(userID)

	// 商品必須已存在才可更新
	luaScript := `
		local key = KEYS[1]
		local product_id = ARGV[1]
		local quantity = tonumber(ARGV[2])

		if redis.call('HEXISTS', key, product_id) == 0 then
			return -1
		end
		redis.call('HSET', key, product_id, quantity)
		return quantity
	`

	result, err := r.cartCache.Eval(ctx, luaScript, []string{itemsKey}, productID, quantity).Result()
	if err != nil {
		return fmt.Errorf("failed to update cart quantity: %w", err)
	}

	switch v := result.(type) {
	case int64:
		if v == -1 {
			return fmt.Errorf("%w: product %s", ErrCartItemNotFound, productID)
		}
		return nil
	default:
		return fmt.Errorf("unexpected result type: %T", result)
	}
}

// RemoveItem 從購物車中刪除指定商品，連帶刪除鏡片選項
func (r *CartRepo) RemoveItem(ctx context.Context, userID int, productID string) error {
	itemsKey := generateCartItemKey(userID)
	lensKey := generateCartLensKey(userID)

	luaScript := `
		redis.call('HDEL', KEYS[1], ARGV[1])
		redis.call('HDEL', KEYS[2], ARGV[1])
		return 1
	`

	_, err := r.cartCache.Eval(ctx, luaScript, []string{itemsKey, lensKey}, productID).Result()
	if err != nil {
		return fmt.Errorf("failed to delete item from cart: %w", err)
	}
	return nil
}

// SetLensOption 設定眼鏡類商品的鏡片選項
// 商品是否是眼鏡類由service層驗證
func (r *CartRepo) SetLensOption(ctx context.Context, userID int, productID string, lens *model.LensOption) error {
	itemsKey := generateCartItemKey(userID)
	lensKey := generateCartLensKey(userID)

	exists, err := r.cartCache.HExists(ctx, itemsKey, productID).Result()
	if err != nil {
		return fmt.Errorf("failed to check cart item: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: product %s", ErrCartItemNotFound, productID)
	}

	payload, err := json.Marshal(lens)
	if err != nil {
		return fmt.Errorf("failed to marshal lens option: %w", err)
	}

	err = r.cartCache.HSet(ctx, lensKey, productID, payload).Err()
	if err != nil {
		return fmt.Errorf("failed to set lens option: %w", err)
	}
	return nil
}

// Get 取購物車內容
func (r *CartRepo) Get(ctx context.Context, userID int) (*model.Cart, error) {
	itemsKey := generateCartItemKey(userID)
	lensKey := generateCartLensKey(userID)

	// 獲取商品列表
	items, err := r.cartCache.HGetAll(ctx, itemsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}

	// 獲取鏡片選項
	lensRaw, err := r.cartCache.HGetAll(ctx, lensKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get cart lens options: %w", err)
	}

	cart := &model.Cart{
		UserID: userID,
	}
	for productID, quantityStr := range items {
		quantity, err := strconv.Atoi(quantityStr)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity for product %s: %w", productID, err)
		}
		if quantity <= 0 {
			continue
		}

		item := model.CartItem{
			ProductID: productID,
			Quantity:  quantity,
		}
		if raw, ok := lensRaw[productID]; ok {
			var lens model.LensOption
			if err := json.Unmarshal([]byte(raw), &lens); err != nil {
				return nil, fmt.Errorf("invalid lens option for product %s: %w", productID, err)
			}
			item.LensOption = &lens
		}
		cart.Items = append(cart.Items, item)
	}

	return cart, nil
}

// Clear 清空購物車
func (r *CartRepo) Clear(ctx context.Context, userID int) error {
	itemsKey := generateCartItemKey(userID)
	lensKey := generateCartLensKey(userID)

	err := r.cartCache.Del(ctx, itemsKey, lensKey).Err()
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
