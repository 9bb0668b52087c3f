package redis_repo

import (
	"context"
	"testing"
	"time"

	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func setupCartRepo(t *testing.T) *CartRepo {
	t.Helper()
	return NewCartRepo(setupTestRedis(t), time.Hour)
}

func TestCartAddItemAccumulates(t *testing.T) {
	repo := setupCartRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.AddItem(ctx, 1, "p1", 2))
	require.NoError(t, repo.AddItem(ctx, 1, "p1", 3))

	cart, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartUpdateQuantityRequiresExistingItem(t *testing.T) {
	repo := setupCartRepo(t)
	ctx := context.Background()

	err := repo.UpdateQuantity(ctx, 1, "ghost", 2)
	require.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartRemoveItemDropsLensOption(t *testing.T) {
	repo := setupCartRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.AddItem(ctx, 1, "p1", 1))
	require.NoError(t, repo.SetLensOption(ctx, 1, "p1", &model.LensOption{
		Type:  model.LensStandard,
		Price: decimal.RequireFromString("30"),
	}))
	require.NoError(t, repo.RemoveItem(ctx, 1, "p1"))

	// 重新加入同商品不應該繼承舊鏡片選項
	require.NoError(t, repo.AddItem(ctx, 1, "p1", 1))
	cart, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, cart.Items[0].LensOption)
}

func TestCartSetLensOptionRequiresItem(t *testing.T) {
	repo := setupCartRepo(t)

	err := repo.SetLensOption(context.Background(), 1, "ghost", &model.LensOption{Type: model.LensStandard})
	require.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartClear(t *testing.T) {
	repo := setupCartRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.AddItem(ctx, 1, "p1", 1))
	require.NoError(t, repo.AddItem(ctx, 1, "p2", 2))
	require.NoError(t, repo.Clear(ctx, 1))

	cart, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}
