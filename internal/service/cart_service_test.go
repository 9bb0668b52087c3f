package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/infra/repository/redis_repo"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func setupCartService(t *testing.T) (*CartService, *fakeProductService) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	products := newFakeProductService()
	cartRepo := redis_repo.NewCartRepo(client, time.Hour)
	return NewCartService(cartRepo, products), products
}

func eyeglassesProduct(id string, price string) *model.Product {
	return &model.Product{
		ProductID: id,
		Name:      "測試鏡框 " + id,
		Category:  model.CategoryEyeglasses,
		Price:     decimal.RequireFromString(price),
		Stock:     10,
		InStock:   true,
	}
}

func TestAddToCartMergesQuantity(t *testing.T) {
	svc, products := setupCartService(t)
	products.addProduct(eyeglassesProduct("p1", "50"))
	ctx := context.Background()

	require.NoError(t, svc.AddToCart(ctx, 1, "p1", 2))
	require.NoError(t, svc.AddToCart(ctx, 1, "p1", 3))

	cart, err := svc.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 5, cart.Items[0].Quantity)
}

func TestAddToCartRejectsInvalidQuantity(t *testing.T) {
	svc, products := setupCartService(t)
	products.addProduct(eyeglassesProduct("p1", "50"))

	err := svc.AddToCart(context.Background(), 1, "p1", 0)
	require.ErrorIs(t, err, ErrInvalidCartQty)
}

func TestAddToCartRejectsOutOfStock(t *testing.T) {
	svc, products := setupCartService(t)
	p := eyeglassesProduct("p1", "50")
	p.InStock = false
	products.addProduct(p)

	err := svc.AddToCart(context.Background(), 1, "p1", 1)
	require.ErrorIs(t, err, ErrCartItemNotInStock)
}

func TestUpdateQuantityRejectsBelowOne(t *testing.T) {
	svc, products := setupCartService(t)
	products.addProduct(eyeglassesProduct("p1", "50"))
	ctx := context.Background()

	require.NoError(t, svc.AddToCart(ctx, 1, "p1", 1))
	require.ErrorIs(t, svc.UpdateQuantity(ctx, 1, "p1", 0), ErrInvalidCartQty)
	require.ErrorIs(t, svc.UpdateQuantity(ctx, 1, "p1", -3), ErrInvalidCartQty)
}

func TestUpdateLensOptionOnlyForEyeglasses(t *testing.T) {
	svc, products := setupCartService(t)
	sunglasses := eyeglassesProduct("p2", "80")
	sunglasses.Category = model.CategorySunglasses
	products.addProduct(sunglasses)
	ctx := context.Background()

	require.NoError(t, svc.AddToCart(ctx, 1, "p2", 1))

	lens := &model.LensOption{Type: model.LensStandard, Price: decimal.RequireFromString("30")}
	err := svc.UpdateLensOption(ctx, 1, "p2", lens)
	require.ErrorIs(t, err, ErrLensNotApplicable)
}

func TestUpdateLensOptionRejectsUnknownType(t *testing.T) {
	svc, products := setupCartService(t)
	products.addProduct(eyeglassesProduct("p1", "50"))

	lens := &model.LensOption{Type: "progressive"}
	err := svc.UpdateLensOption(context.Background(), 1, "p1", lens)
	require.ErrorIs(t, err, ErrInvalidLensType)
}

func TestUpdateLensOptionStandardResetsVerification(t *testing.T) {
	svc, products := setupCartService(t)
	products.addProduct(eyeglassesProduct("p1", "50"))
	ctx := context.Background()

	require.NoError(t, svc.AddToCart(ctx, 1, "p1", 1))

	// 已驗證的處方鏡片換回standard，驗證狀態必須重置
	lens := &model.LensOption{
		Type:             model.LensStandard,
		Price:            decimal.RequireFromString("30"),
		PrescriptionCode: "RX-123",
		Verified:         true,
	}
	require.NoError(t, svc.UpdateLensOption(ctx, 1, "p1", lens))

	cart, err := svc.GetCart(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, cart.Items[0].LensOption)
	require.Empty(t, cart.Items[0].LensOption.PrescriptionCode)
	require.False(t, cart.Items[0].LensOption.Verified)
}

func TestCartTotals(t *testing.T) {
	svc, products := setupCartService(t)
	products.addProduct(eyeglassesProduct("p1", "50"))
	products.addProduct(eyeglassesProduct("p2", "120"))
	ctx := context.Background()

	require.NoError(t, svc.AddToCart(ctx, 1, "p1", 2))
	require.NoError(t, svc.AddToCart(ctx, 1, "p2", 1))
	require.NoError(t, svc.UpdateLensOption(ctx, 1, "p1", &model.LensOption{
		Type:  model.LensStandard,
		Price: decimal.RequireFromString("25"),
	}))

	productTotal, err := svc.GetCartTotal(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "220.00", productTotal.StringFixed(2))

	// 鏡片小計跟著數量走
	lensTotal, err := svc.GetLensTotal(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "50.00", lensTotal.StringFixed(2))
}

func TestClearCart(t *testing.T) {
	svc, products := setupCartService(t)
	products.addProduct(eyeglassesProduct("p1", "50"))
	ctx := context.Background()

	require.NoError(t, svc.AddToCart(ctx, 1, "p1", 1))
	require.NoError(t, svc.ClearCart(ctx, 1))

	cart, err := svc.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestGetCartDetailRestoresProductInfo(t *testing.T) {
	svc, products := setupCartService(t)
	products.addProduct(eyeglassesProduct("p1", "50"))
	ctx := context.Background()

	require.NoError(t, svc.AddToCart(ctx, 1, "p1", 3))

	details, err := svc.GetCartDetail(ctx, 1)
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.Equal(t, "測試鏡框 p1", details[0].ProductName)
	require.Equal(t, model.CategoryEyeglasses, details[0].Category)
	require.Equal(t, "150.00", details[0].Amount.StringFixed(2))
}
