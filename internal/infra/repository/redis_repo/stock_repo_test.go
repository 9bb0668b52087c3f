package redis_repo

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestStockLifecycle(t *testing.T) {
	repo := NewStockRepo(setupTestRedis(t))
	ctx := context.Background()

	require.NoError(t, repo.InitStock(ctx, "p1", 10))

	onHand, err := repo.OnHand(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, 10, onHand)

	remaining, err := repo.DeductStock(ctx, "p1", 4)
	require.NoError(t, err)
	require.Equal(t, 6, remaining)

	restored, err := repo.Restock(ctx, "p1", 2)
	require.NoError(t, err)
	require.Equal(t, 8, restored)
}

func TestSetAndDropStock(t *testing.T) {
	repo := NewStockRepo(setupTestRedis(t))
	ctx := context.Background()

	require.NoError(t, repo.InitStock(ctx, "p1", 10))
	require.NoError(t, repo.SetStock(ctx, "p1", 25))

	onHand, err := repo.OnHand(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, 25, onHand)

	require.NoError(t, repo.DropStock(ctx, "p1"))
	_, err = repo.OnHand(ctx, "p1")
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeductStockNotEnough(t *testing.T) {
	repo := NewStockRepo(setupTestRedis(t))
	ctx := context.Background()

	require.NoError(t, repo.InitStock(ctx, "p1", 3))

	_, err := repo.DeductStock(ctx, "p1", 5)
	require.ErrorIs(t, err, ErrProductStockNotEnough)

	// 扣減失敗不可動到庫存
	onHand, err := repo.OnHand(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, 3, onHand)
}

func TestDeductStockUnknownProduct(t *testing.T) {
	repo := NewStockRepo(setupTestRedis(t))

	_, err := repo.DeductStock(context.Background(), "ghost", 1)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestOnHandUnknownProduct(t *testing.T) {
	repo := NewStockRepo(setupTestRedis(t))

	_, err := repo.OnHand(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrProductNotFound)
}
