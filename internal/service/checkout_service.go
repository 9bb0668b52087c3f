package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/luxoptic/optistore/internal/constants"
	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/infra/payment"
	"github.com/luxoptic/optistore/internal/infra/repository/redis_repo"
	"github.com/luxoptic/optistore/internal/metrics"
	"github.com/luxoptic/optistore/internal/pkg/util"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	ErrCheckoutNotStarted      = errors.New("checkout has not been started")
	ErrCheckoutWrongStep       = errors.New("operation not allowed at current checkout step")
	ErrBillingIncomplete       = errors.New("billing information incomplete")
	ErrLensOptionRequired      = errors.New("eyeglasses item requires a lens option")
	ErrPrescriptionNotVerified = errors.New("prescription lens has not been verified")
	ErrInvalidDeliveryMethod   = errors.New("invalid delivery method")
	ErrCheckoutPaymentDeclined = errors.New("payment was declined")
	ErrCheckoutGatewayDown     = errors.New("payment gateway unavailable")
)

// ValidateBilling 檢查帳單欄位，回傳缺漏欄位名
func ValidateBilling(b *redis_repo.BillingInfo) []string {
	if b == nil {
		return []string{"first_name", "last_name", "email", "phone", "address", "city", "state", "zip"}
	}

	var missing []string
	check := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	check("first_name", b.FirstName)
	check("last_name", b.LastName)
	check("email", b.Email)
	check("phone", b.Phone)
	check("address", b.Address)
	check("city", b.City)
	check("state", b.State)
	check("zip", b.Zip)
	return missing
}

// CheckoutResult 結帳完成的回傳內容
type CheckoutResult struct {
	Order         *model.Order `json:"order"`
	TransactionID string       `json:"transaction_id"`
	Quote         Quote        `json:"quote"`
}

type ICheckoutService interface {
	StartCheckout(ctx context.Context, userID int) (*redis_repo.CheckoutSession, error)
	GetSession(ctx context.Context, userID int) (*redis_repo.CheckoutSession, error)
	SubmitBilling(ctx context.Context, userID int, billing *redis_repo.BillingInfo, deliveryMethod string) (*redis_repo.CheckoutSession, error)
	VerifyItemPrescription(ctx context.Context, userID int, productID string, code string) error
	GetQuote(ctx context.Context, userID int, deliveryMethod string) (*Quote, error)
	Pay(ctx context.Context, userID int, cardToken string) (*CheckoutResult, error)
	AbandonCheckout(ctx context.Context, userID int) error
}

// CheckoutService 結帳協調者
// 五步線性流程，無眼鏡品項與無處方鏡片時對應步驟跳過
// billing -> (lens) -> (prescription) -> payment
type CheckoutService struct {
	cartService         ICartService
	productService      IProductService
	prescriptionService IPrescriptionService
	orderService        IOrderService
	mailService         IMailService
	sessionRepo         redis_repo.ICheckoutSessionRepo
	paymentClient       payment.IPaymentClient
	logger              *zerolog.Logger
}

func NewCheckoutService(
	cartService ICartService,
	productService IProductService,
	prescriptionService IPrescriptionService,
	orderService IOrderService,
	mailService IMailService,
	sessionRepo redis_repo.ICheckoutSessionRepo,
	paymentClient payment.IPaymentClient,
	logger *zerolog.Logger,
) *CheckoutService {
	return &CheckoutService{
		cartService:         cartService,
		productService:      productService,
		prescriptionService: prescriptionService,
		orderService:        orderService,
		mailService:         mailService,
		sessionRepo:         sessionRepo,
		paymentClient:       paymentClient,
		logger:              logger,
	}
}

// StartCheckout 開始結帳，購物車不可為空
func (s *CheckoutService) StartCheckout(ctx context.Context, userID int) (*redis_repo.CheckoutSession, error) {
	cart, err := s.cartService.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	session := &redis_repo.CheckoutSession{
		UserID:    userID,
		Step:      redis_repo.StepBilling,
		StartedAt: time.Now(),
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *CheckoutService) GetSession(ctx context.Context, userID int) (*redis_repo.CheckoutSession, error) {
	session, err := s.sessionRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, redis_repo.ErrCheckoutSessionNotFound) {
			return nil, ErrCheckoutNotStarted
		}
		return nil, err
	}
	return session, nil
}

// SubmitBilling 帳單步驟
// 通過後依購物車內容決定下一步：無眼鏡品項直接跳payment
func (s *CheckoutService) SubmitBilling(ctx context.Context, userID int, billing *redis_repo.BillingInfo, deliveryMethod string) (*redis_repo.CheckoutSession, error) {
	session, err := s.GetSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.Step != redis_repo.StepBilling {
		return nil, ErrCheckoutWrongStep
	}

	if missing := ValidateBilling(billing); len(missing) > 0 {
		metrics.CheckoutFailures.WithLabelValues(string(redis_repo.StepBilling)).Inc()
		return nil, fmt.Errorf("%w: missing %s", ErrBillingIncomplete, strings.Join(missing, ", "))
	}
	if !constants.IsValidDeliveryMethod(deliveryMethod) {
		return nil, ErrInvalidDeliveryMethod
	}

	session.Billing = billing
	session.DeliveryMethod = deliveryMethod
	session.Step, err = s.nextStepAfterBilling(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// nextStepAfterBilling 條件跳步
// 無眼鏡品項 -> payment；有眼鏡但缺鏡片選項 -> lens；有未驗證處方鏡片 -> prescription
func (s *CheckoutService) nextStepAfterBilling(ctx context.Context, userID int) (redis_repo.CheckoutStep, error) {
	details, err := s.cartService.GetCartDetail(ctx, userID)
	if err != nil {
		return "", err
	}

	hasEyeglasses := false
	missingLens := false
	unverifiedRx := false
	for _, item := range details {
		if item.Category != model.CategoryEyeglasses {
			continue
		}
		hasEyeglasses = true
		if item.LensOption == nil {
			missingLens = true
			continue
		}
		if item.LensOption.Type == model.LensPrescription && !item.LensOption.Verified {
			unverifiedRx = true
		}
	}

	switch {
	case !hasEyeglasses:
		return redis_repo.StepPayment, nil
	case missingLens:
		return redis_repo.StepLens, nil
	case unverifiedRx:
		return redis_repo.StepPrescription, nil
	default:
		return redis_repo.StepPayment, nil
	}
}

// validateLenses 每個眼鏡品項都必須帶鏡片選項，錯誤訊息點名品項
func (s *CheckoutService) validateLenses(details []model.CartItemDetail) error {
	for _, item := range details {
		if item.Category == model.CategoryEyeglasses && item.LensOption == nil {
			metrics.CheckoutFailures.WithLabelValues(string(redis_repo.StepLens)).Inc()
			return fmt.Errorf("%w: %s", ErrLensOptionRequired, item.ProductID)
		}
	}
	return nil
}

// validatePrescriptions 處方鏡片付款前必須verified
func (s *CheckoutService) validatePrescriptions(details []model.CartItemDetail) error {
	for _, item := range details {
		if item.LensOption == nil {
			continue
		}
		if item.LensOption.Type == model.LensPrescription && !item.LensOption.Verified {
			metrics.CheckoutFailures.WithLabelValues(string(redis_repo.StepPrescription)).Inc()
			return fmt.Errorf("%w: %s", ErrPrescriptionNotVerified, item.ProductID)
		}
	}
	return nil
}

// VerifyItemPrescription 以處方碼驗證購物車內單一品項的處方鏡片
// 通過後把verified寫回購物車，並推進session步驟
func (s *CheckoutService) VerifyItemPrescription(ctx context.Context, userID int, productID string, code string) error {
	cart, err := s.cartService.GetCart(ctx, userID)
	if err != nil {
		return err
	}

	var target *model.CartItem
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			target = &cart.Items[i]
			break
		}
	}
	if target == nil || target.LensOption == nil {
		return redis_repo.ErrCartItemNotFound
	}
	if target.LensOption.Type != model.LensPrescription {
		return ErrInvalidLensType
	}

	if _, err := s.prescriptionService.VerifyCode(ctx, userID, code); err != nil {
		return err
	}

	lens := *target.LensOption
	lens.PrescriptionCode = code
	lens.Verified = true
	if err := s.cartService.UpdateLensOption(ctx, userID, productID, &lens); err != nil {
		return err
	}

	// session存在時推進步驟，不存在也允許驗證(購物車頁操作)
	if session, err := s.GetSession(ctx, userID); err == nil && session.Step == redis_repo.StepPrescription {
		if next, err := s.nextStepAfterBilling(ctx, userID); err == nil {
			session.Step = next
			if err := s.sessionRepo.Save(ctx, session); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetQuote 金額試算，購物車頁與結帳頁共用
func (s *CheckoutService) GetQuote(ctx context.Context, userID int, deliveryMethod string) (*Quote, error) {
	if !constants.IsValidDeliveryMethod(deliveryMethod) {
		return nil, ErrInvalidDeliveryMethod
	}

	productTotal, err := s.cartService.GetCartTotal(ctx, userID)
	if err != nil {
		return nil, err
	}
	lensTotal, err := s.cartService.GetLensTotal(ctx, userID)
	if err != nil {
		return nil, err
	}

	quote := ComputeQuote(productTotal, lensTotal, constants.DeliveryMethodEnum(deliveryMethod))
	return &quote, nil
}

// Pay 付款步驟，結帳的最後一哩
// 付款前重跑所有gate，扣庫存 -> 扣款 -> 落單 -> 寄信(fire-and-forget) -> 清購物車
func (s *CheckoutService) Pay(ctx context.Context, userID int, cardToken string) (*CheckoutResult, error) {
	session, err := s.GetSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.Step != redis_repo.StepPayment {
		return nil, ErrCheckoutWrongStep
	}

	details, err := s.cartService.GetCartDetail(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrCartEmpty
	}

	// gate重驗，session步驟可能因購物車變動而過期
	if err := s.validateLenses(details); err != nil {
		return nil, err
	}
	if err := s.validatePrescriptions(details); err != nil {
		return nil, err
	}

	quote, err := s.GetQuote(ctx, userID, session.DeliveryMethod)
	if err != nil {
		return nil, err
	}

	orderID, err := util.GenerateOrderNumber(constants.OrderNumberPrefix)
	if err != nil {
		return nil, err
	}

	// 先保留庫存，扣款失敗再回補
	deducted := make([]model.CartItemDetail, 0, len(details))
	for _, item := range details {
		if err := s.productService.SubProductStock(ctx, item.ProductID, uint(item.Quantity)); err != nil {
			s.restoreDeducted(ctx, deducted)
			metrics.CheckoutFailures.WithLabelValues("stock").Inc()
			return nil, err
		}
		deducted = append(deducted, item)
	}

	chargeResp, err := s.paymentClient.Charge(ctx, payment.ChargeRequest{
		OrderID:    orderID,
		UserID:     userID,
		Amount:     quote.Total,
		Currency:   "USD",
		CardToken:  cardToken,
		Descriptor: "LUXOPTIC",
	})
	if err != nil {
		s.restoreDeducted(ctx, deducted)
		metrics.CheckoutFailures.WithLabelValues(string(redis_repo.StepPayment)).Inc()
		switch {
		case errors.Is(err, payment.ErrPaymentDeclined):
			return nil, ErrCheckoutPaymentDeclined
		case errors.Is(err, payment.ErrGatewayUnavailable):
			return nil, ErrCheckoutGatewayDown
		default:
			return nil, fmt.Errorf("failed to charge: %w", err)
		}
	}

	order := s.buildOrder(orderID, userID, session, details, quote)
	if err := s.orderService.PlaceOrder(ctx, order, session.Billing.Email); err != nil {
		// 訂單落db失敗但款已扣，記錄等待人工對帳
		s.logger.Error().Err(err).
			Str("order_id", orderID).
			Str("transaction_id", chargeResp.TransactionID).
			Msg("order persist failed after successful charge")
		return nil, err
	}
	metrics.OrdersTotal.WithLabelValues(string(model.OrderStatusPending)).Inc()

	// 確認信寄送失敗不影響結帳結果
	go s.sendConfirmation(session.Billing.Email, order, details)

	if err := s.cartService.ClearCart(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int("user_id", userID).Msg("failed to clear cart after checkout")
	}
	if err := s.sessionRepo.Delete(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int("user_id", userID).Msg("failed to delete checkout session")
	}

	return &CheckoutResult{
		Order:         order,
		TransactionID: chargeResp.TransactionID,
		Quote:         *quote,
	}, nil
}

func (s *CheckoutService) AbandonCheckout(ctx context.Context, userID int) error {
	return s.sessionRepo.Delete(ctx, userID)
}

func (s *CheckoutService) buildOrder(orderID string, userID int, session *redis_repo.CheckoutSession, details []model.CartItemDetail, quote *Quote) *model.Order {
	items := make([]model.OrderItem, 0, len(details))
	for _, item := range details {
		orderItem := model.OrderItem{
			OrderID:   orderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
		if item.LensOption != nil {
			orderItem.LensType = string(item.LensOption.Type)
			orderItem.LensPrice = item.LensOption.Price
		}
		items = append(items, orderItem)
	}

	shippingAddress := fmt.Sprintf("%s, %s, %s %s",
		session.Billing.Address, session.Billing.City, session.Billing.State, session.Billing.Zip)

	return &model.Order{
		OrderID:           orderID,
		UserID:            userID,
		OrderItems:        items,
		Subtotal:          quote.Subtotal,
		ShippingFee:       quote.Shipping,
		Tax:               quote.Tax,
		Amount:            quote.Total,
		Status:            model.OrderStatusPending,
		ShippingAddress:   shippingAddress,
		DeliveryMethod:    session.DeliveryMethod,
		EstimatedDelivery: time.Now().AddDate(0, 0, 7),
		OrderDate:         time.Now(),
	}
}

func (s *CheckoutService) sendConfirmation(email string, order *model.Order, details []model.CartItemDetail) {
	items := make([]model.OrderItemData, 0, len(details))
	for _, item := range details {
		items = append(items, model.OrderItemData{
			OrderID:     order.OrderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Amount:      item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}

	if err := s.mailService.SendOrderConfirmation(email, order, items); err != nil {
		metrics.NotificationFailures.WithLabelValues("order_confirmation").Inc()
		s.logger.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to send order confirmation")
	}
}

func (s *CheckoutService) restoreDeducted(ctx context.Context, deducted []model.CartItemDetail) {
	for _, item := range deducted {
		if err := s.productService.RestoreProductStock(ctx, item.ProductID, uint(item.Quantity)); err != nil {
			s.logger.Error().Err(err).Str("product_id", item.ProductID).Msg("failed to restore stock")
		}
	}
}

var _ ICheckoutService = (*CheckoutService)(nil)
