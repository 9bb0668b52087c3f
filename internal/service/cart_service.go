package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/infra/repository/redis_repo"
	"github.com/shopspring/decimal"
)

var (
	ErrCartEmpty          = errors.New("cart is empty")
	ErrLensNotApplicable  = errors.New("lens option only applies to eyeglasses")
	ErrInvalidLensType    = errors.New("invalid lens type")
	ErrInvalidCartQty     = errors.New("cart quantity must be at least 1")
	ErrCartItemNotInStock = errors.New("cart item is out of stock")
)

type ICartService interface {
	AddToCart(ctx context.Context, userID int, productID string, quantity int) error
	UpdateQuantity(ctx context.Context, userID int, productID string, quantity int) error
	RemoveFromCart(ctx context.Context, userID int, productID string) error
	ClearCart(ctx context.Context, userID int) error
	UpdateLensOption(ctx context.Context, userID int, productID string, lens *model.LensOption) error
	GetCart(ctx context.Context, userID int) (*model.Cart, error)
	GetCartDetail(ctx context.Context, userID int) ([]model.CartItemDetail, error)
	GetCartTotal(ctx context.Context, userID int) (decimal.Decimal, error)
	GetLensTotal(ctx context.Context, userID int) (decimal.Decimal, error)
}

// CartService 購物車狀態管理
// 購物車階段只寫入redis，不寫db，所有購物車資料都去redis取
type CartService struct {
	cartRepo       *redis_repo.CartRepo
	productService IProductService
}

func NewCartService(cartRepo *redis_repo.CartRepo, productService IProductService) *CartService {
	return &CartService{
		cartRepo:       cartRepo,
		productService: productService,
	}
}

// AddToCart 加入商品
// 同一商品再次加入累加數量，不會出現重複行
func (s *CartService) AddToCart(ctx context.Context, userID int, productID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCartQty, quantity)
	}

	product, err := s.productService.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	if !product.InStock {
		return fmt.Errorf("%w: %s", ErrCartItemNotInStock, product.Name)
	}

	return s.cartRepo.AddItem(ctx, userID, productID, quantity)
}

// UpdateQuantity 修改數量
// 小於1一律拒絕，要移除商品必須走RemoveFromCart
func (s *CartService) UpdateQuantity(ctx context.Context, userID int, productID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCartQty, quantity)
	}
	return s.cartRepo.UpdateQuantity(ctx, userID, productID, quantity)
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID int, productID string) error {
	return s.cartRepo.RemoveItem(ctx, userID, productID)
}

func (s *CartService) ClearCart(ctx context.Context, userID int) error {
	return s.cartRepo.Clear(ctx, userID)
}

// UpdateLensOption 設定鏡片選項
// 只有眼鏡類商品可以掛鏡片
func (s *CartService) UpdateLensOption(ctx context.Context, userID int, productID string, lens *model.LensOption) error {
	if !model.IsValidLensType(string(lens.Type)) {
		return fmt.Errorf("%w: %s", ErrInvalidLensType, lens.Type)
	}

	product, err := s.productService.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	if product.Category != model.CategoryEyeglasses {
		return fmt.Errorf("%w: %s is %s", ErrLensNotApplicable, product.Name, product.Category)
	}

	// 換鏡片選項等於重新選擇，驗證狀態重置
	if lens.Type == model.LensStandard {
		lens.PrescriptionCode = ""
		lens.Verified = false
	}

	return s.cartRepo.SetLensOption(ctx, userID, productID, lens)
}

func (s *CartService) GetCart(ctx context.Context, userID int) (*model.Cart, error) {
	return s.cartRepo.Get(ctx, userID)
}

// GetCartDetail 還原商品資訊
// Redis購物車只儲存productID/quantity/lens，其餘由catalog補齊
func (s *CartService) GetCartDetail(ctx context.Context, userID int) ([]model.CartItemDetail, error) {
	cart, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := make([]model.CartItemDetail, 0, len(cart.Items))
	for _, item := range cart.Items {
		product, err := s.productService.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("get product info failed: %w", err)
		}
		details = append(details, model.CartItemDetail{
			ProductID:   item.ProductID,
			ProductName: product.Name,
			Category:    product.Category,
			Quantity:    item.Quantity,
			Price:       product.Price,
			Amount:      product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
			LensOption:  item.LensOption,
		})
	}
	return details, nil
}

// GetCartTotal 商品小計 Σ(price×qty)
func (s *CartService) GetCartTotal(ctx context.Context, userID int) (decimal.Decimal, error) {
	details, err := s.GetCartDetail(ctx, userID)
	if err != nil {
		return decimal.Decimal{}, err
	}

	amount := decimal.NewFromInt(0)
	for _, item := range details {
		amount = amount.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return amount, nil
}

// GetLensTotal 鏡片小計 Σ(lensPrice×qty)，無鏡片項目計0
func (s *CartService) GetLensTotal(ctx context.Context, userID int) (decimal.Decimal, error) {
	cart, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		return decimal.Decimal{}, err
	}

	amount := decimal.NewFromInt(0)
	for _, item := range cart.Items {
		if item.LensOption == nil {
			continue
		}
		amount = amount.Add(item.LensOption.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return amount, nil
}

var _ ICartService = (*CartService)(nil)
