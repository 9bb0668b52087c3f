package service

import (
	"context"
	"testing"
	"time"

	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/infra/payment"
	"github.com/luxoptic/optistore/internal/infra/repository/redis_repo"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	svc      *CheckoutService
	cart     *fakeCartService
	products *fakeProductService
	orders   *fakeOrderRepo
	sessions *fakeSessionRepo
	payments *fakePaymentClient
	mails    *fakeMailService
}

func setupCheckout(t *testing.T, prescriptions ...model.Prescription) *checkoutFixture {
	t.Helper()

	cart := &fakeCartService{}
	products := newFakeProductService()
	orders := newFakeOrderRepo()
	sessions := newFakeSessionRepo()
	payments := &fakePaymentClient{}
	mails := &fakeMailService{}
	logger := zerolog.Nop()

	prescriptionService := newPrescriptionServiceWithData(prescriptions...)
	orderService := NewOrderService(orders, newFakeUserRepo(), products, newFakeJournal(), &fakeProducer{}, &logger)

	svc := NewCheckoutService(cart, products, prescriptionService, orderService, mails, sessions, payments, &logger)
	return &checkoutFixture{
		svc:      svc,
		cart:     cart,
		products: products,
		orders:   orders,
		sessions: sessions,
		payments: payments,
		mails:    mails,
	}
}

func validBilling() *redis_repo.BillingInfo {
	return &redis_repo.BillingInfo{
		FirstName: "Mei",
		LastName:  "Lin",
		Email:     "mei@example.com",
		Phone:     "0912345678",
		Address:   "100 Main St",
		City:      "Taipei",
		State:     "TW",
		Zip:       "100",
	}
}

func cartWith(f *checkoutFixture, details ...model.CartItemDetail) {
	items := make([]model.CartItem, 0, len(details))
	for _, d := range details {
		items = append(items, model.CartItem{
			ProductID:  d.ProductID,
			Quantity:   d.Quantity,
			LensOption: d.LensOption,
		})
	}
	f.cart.cart = &model.Cart{UserID: 1, Items: items}
	f.cart.details = details
}

func accessoryItem(id string, price string, qty int) model.CartItemDetail {
	return model.CartItemDetail{
		ProductID: id,
		Category:  model.CategoryAccessory,
		Quantity:  qty,
		Price:     decimal.RequireFromString(price),
	}
}

func eyeglassesItem(id string, price string, lens *model.LensOption) model.CartItemDetail {
	return model.CartItemDetail{
		ProductID:  id,
		Category:   model.CategoryEyeglasses,
		Quantity:   1,
		Price:      decimal.RequireFromString(price),
		LensOption: lens,
	}
}

func TestStartCheckoutRejectsEmptyCart(t *testing.T) {
	f := setupCheckout(t)
	f.cart.cart = &model.Cart{UserID: 1}

	_, err := f.svc.StartCheckout(context.Background(), 1)
	require.ErrorIs(t, err, ErrCartEmpty)
}

func TestStartCheckoutBeginsAtBilling(t *testing.T) {
	f := setupCheckout(t)
	cartWith(f, accessoryItem("p1", "20", 1))

	session, err := f.svc.StartCheckout(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, redis_repo.StepBilling, session.Step)
}

func TestGetSessionNotStarted(t *testing.T) {
	f := setupCheckout(t)

	_, err := f.svc.GetSession(context.Background(), 1)
	require.ErrorIs(t, err, ErrCheckoutNotStarted)
}

func TestSubmitBillingMissingFields(t *testing.T) {
	f := setupCheckout(t)
	cartWith(f, accessoryItem("p1", "20", 1))
	ctx := context.Background()

	_, err := f.svc.StartCheckout(ctx, 1)
	require.NoError(t, err)

	billing := validBilling()
	billing.Email = ""
	billing.Zip = "  "
	_, err = f.svc.SubmitBilling(ctx, 1, billing, "home")
	require.ErrorIs(t, err, ErrBillingIncomplete)
	require.Contains(t, err.Error(), "email")
	require.Contains(t, err.Error(), "zip")
}

func TestSubmitBillingInvalidDeliveryMethod(t *testing.T) {
	f := setupCheckout(t)
	cartWith(f, accessoryItem("p1", "20", 1))
	ctx := context.Background()

	_, err := f.svc.StartCheckout(ctx, 1)
	require.NoError(t, err)

	_, err = f.svc.SubmitBilling(ctx, 1, validBilling(), "drone")
	require.ErrorIs(t, err, ErrInvalidDeliveryMethod)
}

func TestSubmitBillingSkipsToPaymentWithoutEyeglasses(t *testing.T) {
	f := setupCheckout(t)
	cartWith(f, accessoryItem("p1", "20", 1))
	ctx := context.Background()

	_, err := f.svc.StartCheckout(ctx, 1)
	require.NoError(t, err)

	session, err := f.svc.SubmitBilling(ctx, 1, validBilling(), "home")
	require.NoError(t, err)
	require.Equal(t, redis_repo.StepPayment, session.Step)
}

func TestSubmitBillingGoesToLensWhenMissing(t *testing.T) {
	f := setupCheckout(t)
	cartWith(f, eyeglassesItem("p1", "120", nil))
	ctx := context.Background()

	_, err := f.svc.StartCheckout(ctx, 1)
	require.NoError(t, err)

	session, err := f.svc.SubmitBilling(ctx, 1, validBilling(), "home")
	require.NoError(t, err)
	require.Equal(t, redis_repo.StepLens, session.Step)
}

func TestSubmitBillingGoesToPrescriptionWhenUnverified(t *testing.T) {
	f := setupCheckout(t)
	lens := &model.LensOption{Type: model.LensPrescription, Price: decimal.RequireFromString("60")}
	cartWith(f, eyeglassesItem("p1", "120", lens))
	ctx := context.Background()

	_, err := f.svc.StartCheckout(ctx, 1)
	require.NoError(t, err)

	session, err := f.svc.SubmitBilling(ctx, 1, validBilling(), "home")
	require.NoError(t, err)
	require.Equal(t, redis_repo.StepPrescription, session.Step)
}

func TestSubmitBillingStandardLensGoesToPayment(t *testing.T) {
	f := setupCheckout(t)
	lens := &model.LensOption{Type: model.LensStandard, Price: decimal.RequireFromString("30")}
	cartWith(f, eyeglassesItem("p1", "120", lens))
	ctx := context.Background()

	_, err := f.svc.StartCheckout(ctx, 1)
	require.NoError(t, err)

	session, err := f.svc.SubmitBilling(ctx, 1, validBilling(), "home")
	require.NoError(t, err)
	require.Equal(t, redis_repo.StepPayment, session.Step)
}

func TestVerifyItemPrescriptionAdvancesSession(t *testing.T) {
	f := setupCheckout(t, verifiedPrescription(1, 1, "RX-OK"))
	lens := &model.LensOption{Type: model.LensPrescription, Price: decimal.RequireFromString("60")}
	cartWith(f, eyeglassesItem("p1", "120", lens))
	ctx := context.Background()

	_, err := f.svc.StartCheckout(ctx, 1)
	require.NoError(t, err)
	_, err = f.svc.SubmitBilling(ctx, 1, validBilling(), "home")
	require.NoError(t, err)

	require.NoError(t, f.svc.VerifyItemPrescription(ctx, 1, "p1", "RX-OK"))

	require.True(t, f.cart.details[0].LensOption.Verified)
	require.Equal(t, "RX-OK", f.cart.details[0].LensOption.PrescriptionCode)

	session, err := f.svc.GetSession(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, redis_repo.StepPayment, session.Step)
}

func TestVerifyItemPrescriptionBadCode(t *testing.T) {
	f := setupCheckout(t, verifiedPrescription(1, 1, "RX-OK"))
	lens := &model.LensOption{Type: model.LensPrescription, Price: decimal.RequireFromString("60")}
	cartWith(f, eyeglassesItem("p1", "120", lens))

	err := f.svc.VerifyItemPrescription(context.Background(), 1, "p1", "RX-WRONG")
	require.ErrorIs(t, err, ErrInvalidPrescription)
}

func TestVerifyItemPrescriptionStandardLensRejected(t *testing.T) {
	f := setupCheckout(t, verifiedPrescription(1, 1, "RX-OK"))
	lens := &model.LensOption{Type: model.LensStandard, Price: decimal.RequireFromString("30")}
	cartWith(f, eyeglassesItem("p1", "120", lens))

	err := f.svc.VerifyItemPrescription(context.Background(), 1, "p1", "RX-OK")
	require.ErrorIs(t, err, ErrInvalidLensType)
}

func TestPayRequiresPaymentStep(t *testing.T) {
	f := setupCheckout(t)
	cartWith(f, accessoryItem("p1", "20", 1))
	ctx := context.Background()

	_, err := f.svc.StartCheckout(ctx, 1)
	require.NoError(t, err)

	_, err = f.svc.Pay(ctx, 1, "tok_visa")
	require.ErrorIs(t, err, ErrCheckoutWrongStep)
}

func payReadySession(t *testing.T, f *checkoutFixture) {
	t.Helper()
	ctx := context.Background()
	_, err := f.svc.StartCheckout(ctx, 1)
	require.NoError(t, err)
	_, err = f.svc.SubmitBilling(ctx, 1, validBilling(), "home")
	require.NoError(t, err)
}

func TestPayGateReValidatesLens(t *testing.T) {
	f := setupCheckout(t)
	cartWith(f, accessoryItem("p1", "20", 1))
	payReadySession(t, f)

	// session已到payment，但購物車事後加入了缺鏡片的眼鏡
	cartWith(f, accessoryItem("p1", "20", 1), eyeglassesItem("p2", "120", nil))

	_, err := f.svc.Pay(context.Background(), 1, "tok_visa")
	require.ErrorIs(t, err, ErrLensOptionRequired)
}

func TestPayGateReValidatesPrescription(t *testing.T) {
	f := setupCheckout(t)
	cartWith(f, accessoryItem("p1", "20", 1))
	payReadySession(t, f)

	lens := &model.LensOption{Type: model.LensPrescription, Price: decimal.RequireFromString("60")}
	cartWith(f, eyeglassesItem("p2", "120", lens))

	_, err := f.svc.Pay(context.Background(), 1, "tok_visa")
	require.ErrorIs(t, err, ErrPrescriptionNotVerified)
}

func TestPaySuccess(t *testing.T) {
	f := setupCheckout(t)
	f.products.addProduct(eyeglassesProduct("p1", "120"))
	lens := &model.LensOption{Type: model.LensStandard, Price: decimal.RequireFromString("50"), Verified: false}
	cartWith(f, eyeglassesItem("p1", "120", lens))
	payReadySession(t, f)
	ctx := context.Background()

	result, err := f.svc.Pay(ctx, 1, "tok_visa")
	require.NoError(t, err)
	require.Equal(t, "txn-test-001", result.TransactionID)

	// 金額: subtotal 170, 免運, 稅 8.5
	require.Equal(t, "178.50", result.Quote.Total.StringFixed(2))
	require.Len(t, f.payments.charges, 1)
	require.Equal(t, "178.50", f.payments.charges[0].Amount.StringFixed(2))

	// 訂單落db pending
	require.Equal(t, model.OrderStatusPending, result.Order.Status)
	saved, err := f.orders.GetOrderByID(ctx, result.Order.OrderID)
	require.NoError(t, err)
	require.Equal(t, "100 Main St, Taipei, TW 100", saved.ShippingAddress)

	// 庫存已扣、購物車已清、session已刪
	require.Equal(t, uint(9), f.products.stock["p1"])
	require.True(t, f.cart.cleared)
	_, err = f.svc.GetSession(ctx, 1)
	require.ErrorIs(t, err, ErrCheckoutNotStarted)

	// 確認信fire-and-forget
	require.Eventually(t, func() bool {
		f.mails.mu.Lock()
		defer f.mails.mu.Unlock()
		return len(f.mails.confirmations) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestPayDeclinedRestoresStock(t *testing.T) {
	f := setupCheckout(t)
	f.products.addProduct(eyeglassesProduct("p1", "120"))
	f.payments.err = payment.ErrPaymentDeclined
	lens := &model.LensOption{Type: model.LensStandard, Price: decimal.RequireFromString("50")}
	cartWith(f, eyeglassesItem("p1", "120", lens))
	payReadySession(t, f)

	_, err := f.svc.Pay(context.Background(), 1, "tok_visa")
	require.ErrorIs(t, err, ErrCheckoutPaymentDeclined)

	// 已扣的庫存回補
	require.Equal(t, uint(10), f.products.stock["p1"])
	require.Equal(t, []string{"p1"}, f.products.restoreCalls)
	require.False(t, f.cart.cleared)
}

func TestPayGatewayDown(t *testing.T) {
	f := setupCheckout(t)
	f.products.addProduct(eyeglassesProduct("p1", "120"))
	f.payments.err = payment.ErrGatewayUnavailable
	lens := &model.LensOption{Type: model.LensStandard, Price: decimal.RequireFromString("50")}
	cartWith(f, eyeglassesItem("p1", "120", lens))
	payReadySession(t, f)

	_, err := f.svc.Pay(context.Background(), 1, "tok_visa")
	require.ErrorIs(t, err, ErrCheckoutGatewayDown)
}

func TestPayStockFailureRestoresDeducted(t *testing.T) {
	f := setupCheckout(t)
	f.products.addProduct(eyeglassesProduct("p1", "20"))
	f.products.addProduct(eyeglassesProduct("p2", "30"))
	f.products.subErr["p2"] = redis_repo.ErrProductStockNotEnough
	cartWith(f, accessoryItem("p1", "20", 1), accessoryItem("p2", "30", 1))
	payReadySession(t, f)

	_, err := f.svc.Pay(context.Background(), 1, "tok_visa")
	require.ErrorIs(t, err, redis_repo.ErrProductStockNotEnough)

	// p1已扣要回補，p2從未扣成功
	require.Equal(t, []string{"p1"}, f.products.restoreCalls)
	require.Equal(t, uint(10), f.products.stock["p1"])
	require.Empty(t, f.payments.charges)
}

func TestGetQuoteInvalidDeliveryMethod(t *testing.T) {
	f := setupCheckout(t)

	_, err := f.svc.GetQuote(context.Background(), 1, "teleport")
	require.ErrorIs(t, err, ErrInvalidDeliveryMethod)
}

func TestAbandonCheckout(t *testing.T) {
	f := setupCheckout(t)
	cartWith(f, accessoryItem("p1", "20", 1))
	ctx := context.Background()

	_, err := f.svc.StartCheckout(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, f.svc.AbandonCheckout(ctx, 1))

	_, err = f.svc.GetSession(ctx, 1)
	require.ErrorIs(t, err, ErrCheckoutNotStarted)
}
