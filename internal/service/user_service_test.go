package service

import (
	"context"
	"testing"

	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/infra/token"
	"github.com/luxoptic/optistore/internal/pkg/util"
	"github.com/stretchr/testify/require"
)

const testSymmetricKey = "12345678901234567890123456789012"

func setupUserService(t *testing.T) (*UserService, *fakeUserRepo) {
	t.Helper()

	tokenMaker, err := token.NewPasetoMaker(testSymmetricKey)
	require.NoError(t, err)

	users := newFakeUserRepo()
	return NewUserService(users, tokenMaker), users
}

func TestRegisterDefaultsToCustomer(t *testing.T) {
	svc, _ := setupUserService(t)

	user, err := svc.Register(context.Background(), RegisterParams{
		UserName: "mei",
		Email:    "mei@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.Equal(t, model.RoleCustomer, user.Role)
	require.NotEqual(t, "secret123", user.HashedPassword)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterParams{Email: "mei@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterParams{Email: "mei@example.com", Password: "other456"})
	require.ErrorIs(t, err, ErrUserAlreadyExist)
}

func TestRegisterInvalidRole(t *testing.T) {
	svc, _ := setupUserService(t)

	_, err := svc.Register(context.Background(), RegisterParams{
		Email:    "x@example.com",
		Password: "secret123",
		Role:     "superuser",
	})
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterParams{Email: "mei@example.com", Password: "secret123"})
	require.NoError(t, err)

	result, err := svc.Login(ctx, "mei@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)
	require.Equal(t, "mei@example.com", result.User.UserEmail)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterParams{Email: "mei@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "mei@example.com", "wrong")
	require.ErrorIs(t, err, ErrPasswordIncorrect)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := setupUserService(t)

	_, err := svc.Login(context.Background(), "ghost@example.com", "secret123")
	require.ErrorIs(t, err, ErrUserNotExist)
}

func TestGetUserNotExist(t *testing.T) {
	svc, _ := setupUserService(t)

	// token還有效但帳號已被刪除的情境
	user, err := svc.GetUser(context.Background(), 9999)
	require.ErrorIs(t, err, ErrUserNotExist)
	require.Nil(t, user)
}

func TestUpdateProfileFiltersFields(t *testing.T) {
	svc, users := setupUserService(t)
	ctx := context.Background()

	user, err := users.CreateUser(ctx, &model.User{UserEmail: "mei@example.com"})
	require.NoError(t, err)

	// role不在白名單，不應該能透過profile更新改權限
	err = svc.UpdateProfile(ctx, user.UserID, map[string]interface{}{
		"user_name": "new name",
		"role":      model.RoleAdmin,
	})
	require.NoError(t, err)
	require.Len(t, users.patches, 1)
	require.Contains(t, users.patches[0], "user_name")
	require.NotContains(t, users.patches[0], "role")
}

func TestUpdateRoleRejectsSelf(t *testing.T) {
	svc, _ := setupUserService(t)

	err := svc.UpdateRole(context.Background(), 5, 5, model.RoleCustomer)
	require.ErrorIs(t, err, ErrSelfRoleDowngrade)
}

func TestUpdateRoleInvalidRole(t *testing.T) {
	svc, _ := setupUserService(t)

	err := svc.UpdateRole(context.Background(), 1, 2, "superuser")
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hashed, err := util.HashPassword("secret123")
	require.NoError(t, err)
	require.NoError(t, util.CheckPassword("secret123", hashed))
	require.Error(t, util.CheckPassword("secret124", hashed))
}
