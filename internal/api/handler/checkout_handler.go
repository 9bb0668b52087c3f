package handler

import (
	"encoding/json"
	"net/http"

	"github.com/luxoptic/optistore/internal/api/apiutil"
	"github.com/luxoptic/optistore/internal/api/dto"
	"github.com/luxoptic/optistore/internal/constants"
	"github.com/luxoptic/optistore/internal/infra/repository/redis_repo"
	"github.com/luxoptic/optistore/internal/pkg/util"
	"github.com/luxoptic/optistore/internal/service"
)

type CheckoutHandler struct {
	checkoutService service.ICheckoutService
}

func NewCheckoutHandler(checkoutService service.ICheckoutService) *CheckoutHandler {
	if checkoutService == nil {
		panic("checkoutService cannot be nil")
	}
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

func convertSessionToDTO(session *redis_repo.CheckoutSession) dto.CheckoutSessionDTO {
	result := dto.CheckoutSessionDTO{
		Step:           string(session.Step),
		DeliveryMethod: session.DeliveryMethod,
	}
	if session.Billing != nil {
		result.Billing = &dto.BillingDTO{
			FirstName: session.Billing.FirstName,
			LastName:  session.Billing.LastName,
			Email:     session.Billing.Email,
			Phone:     session.Billing.Phone,
			Address:   session.Billing.Address,
			City:      session.Billing.City,
			State:     session.Billing.State,
			Zip:       session.Billing.Zip,
		}
	}
	return result
}

// @Summary start checkout
// @use start a checkout session, cart must not be empty
// @Tags checkout
// @Produce json
// @Success 200 {object} apiutil.Response{data=dto.CheckoutSessionDTO} "success"
// @Failure 400 {object} apiutil.ResponseError{} "BadRequestCode"
// @Security     ApiKeyAuth
// @Router /checkout [post]
func (h *CheckoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	session, err := h.checkoutService.StartCheckout(ctx, payload.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, convertSessionToDTO(session), "")
}

// @Summary get checkout session
// @Tags checkout
// @Produce json
// @Success 200 {object} apiutil.Response{data=dto.CheckoutSessionDTO} "success"
// @Failure 404 {object} apiutil.ResponseError{} "NotFoundCode"
// @Security     ApiKeyAuth
// @Router /checkout [get]
func (h *CheckoutHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	session, err := h.checkoutService.GetSession(ctx, payload.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, convertSessionToDTO(session), "")
}

// @Summary submit billing
// @use submit billing info, response carries the next checkout step
// @Tags checkout
// @Accept json
// @Produce json
// @Param billing body dto.BillingDTO true "billing info"
// @Success 200 {object} apiutil.Response{data=dto.CheckoutSessionDTO} "success"
// @Failure 400 {object} apiutil.ResponseError{} "BadRequestCode"
// @Security     ApiKeyAuth
// @Router /checkout/billing [post]
func (h *CheckoutHandler) SubmitBilling(w http.ResponseWriter, r *http.Request) {
	var billingDTO dto.BillingDTO
	if err := json.NewDecoder(r.Body).Decode(&billingDTO); err != nil {
		badRequest(w, err)
		return
	}

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	billing := &redis_repo.BillingInfo{
		FirstName: billingDTO.FirstName,
		LastName:  billingDTO.LastName,
		Email:     billingDTO.Email,
		Phone:     billingDTO.Phone,
		Address:   billingDTO.Address,
		City:      billingDTO.City,
		State:     billingDTO.State,
		Zip:       billingDTO.Zip,
	}

	session, err := h.checkoutService.SubmitBilling(ctx, payload.UserID, billing, billingDTO.DeliveryMethod)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, convertSessionToDTO(session), "")
}

// @Summary verify prescription for cart item
// @use verify a prescription code against a prescription-lens cart item
// @Tags checkout
// @Accept json
// @Produce json
// @Param verification body dto.VerifyPrescriptionDTO true "product id and prescription code"
// @Success 200 {object} apiutil.Response{} "success"
// @Failure 400 {object} apiutil.ResponseError{} "BadRequestCode"
// @Failure 404 {object} apiutil.ResponseError{} "NotFoundCode"
// @Security     ApiKeyAuth
// @Router /checkout/verify-prescription [post]
func (h *CheckoutHandler) VerifyPrescription(w http.ResponseWriter, r *http.Request) {
	var verifyDTO dto.VerifyPrescriptionDTO
	if err := json.NewDecoder(r.Body).Decode(&verifyDTO); err != nil {
		badRequest(w, err)
		return
	}

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	if err := h.checkoutService.VerifyItemPrescription(ctx, payload.UserID, verifyDTO.ProductID, verifyDTO.PrescriptionCode); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, nil, "")
}

// @Summary quote checkout totals
// @use compute subtotal/shipping/tax/total for the current cart
// @Tags checkout
// @Produce json
// @Param delivery_method query string false "delivery method, defaults to home"
// @Success 200 {object} apiutil.Response{data=dto.QuoteDTO} "success"
// @Failure 400 {object} apiutil.ResponseError{} "BadRequestCode"
// @Security     ApiKeyAuth
// @Router /checkout/quote [get]
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	deliveryMethod := r.URL.Query().Get("delivery_method")
	if deliveryMethod == "" {
		deliveryMethod = string(constants.DeliveryHome)
	}

	quote, err := h.checkoutService.GetQuote(ctx, payload.UserID, deliveryMethod)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, convertQuoteToDTO(quote), "")
}

// @Summary pay
// @use charge payment and place the order, clears cart on success
// @Tags checkout
// @Accept json
// @Produce json
// @Param payment body dto.PayDTO true "card token"
// @Success 200 {object} apiutil.Response{data=dto.CheckoutResultDTO} "success"
// @Failure 400 {object} apiutil.ResponseError{} "BadRequestCode"
// @Failure 503 {object} apiutil.ResponseError{} "gateway unavailable"
// @Security     ApiKeyAuth
// @Router /checkout/pay [post]
func (h *CheckoutHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var payDTO dto.PayDTO
	if err := json.NewDecoder(r.Body).Decode(&payDTO); err != nil {
		badRequest(w, err)
		return
	}

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	result, err := h.checkoutService.Pay(ctx, payload.UserID, payDTO.CardToken)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, dto.CheckoutResultDTO{
		OrderID:       result.Order.OrderID,
		TransactionID: result.TransactionID,
		Quote:         convertQuoteToDTO(&result.Quote),
	}, "")
}

// @Summary abandon checkout
// @Tags checkout
// @Produce json
// @Success 200 {object} apiutil.Response{} "success"
// @Security     ApiKeyAuth
// @Router /checkout [delete]
func (h *CheckoutHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	if err := h.checkoutService.AbandonCheckout(ctx, payload.UserID); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, nil, "")
}
