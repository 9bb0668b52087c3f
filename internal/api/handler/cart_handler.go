package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/luxoptic/optistore/internal/api/apiutil"
	"github.com/luxoptic/optistore/internal/api/dto"
	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/pkg/util"
	"github.com/luxoptic/optistore/internal/service"
	"github.com/shopspring/decimal"
)

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{
		cartService: cartService,
	}
}

// @Summary get cart
// @use get current user cart with product details and totals
// @Tags cart
// @Produce json
// @Success 200 {object} apiutil.Response{data=dto.CartDTO} "success"
// @Failure 401 {object} apiutil.ResponseError{} "UnauthenticatedCode"
// @Security     ApiKeyAuth
// @Router /cart [get]
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	details, err := h.cartService.GetCartDetail(ctx, payload.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	productTotal := decimal.Zero
	lensTotal := decimal.Zero
	for _, item := range details {
		productTotal = productTotal.Add(item.Amount)
		if item.LensOption != nil {
			lensTotal = lensTotal.Add(item.LensOption.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}

	apiutil.SuccessJSON(w, dto.CartDTO{
		Items:        convertCartDetailToDTO(details),
		ProductTotal: productTotal.StringFixed(2),
		LensTotal:    lensTotal.StringFixed(2),
	}, "")
}

// @Summary add to cart
// @use add item to cart, quantity merges on existing item
// @Tags cart
// @Accept json
// @Produce json
// @Param item body dto.AddToCartDTO true "item"
// @Success 200 {object} apiutil.Response{} "success"
// @Failure 400 {object} apiutil.ResponseError{} "BadRequestCode"
// @Failure 404 {object} apiutil.ResponseError{} "NotFoundCode"
// @Security     ApiKeyAuth
// @Router /cart/items [post]
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var addDTO dto.AddToCartDTO
	if err := json.NewDecoder(r.Body).Decode(&addDTO); err != nil {
		badRequest(w, err)
		return
	}

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	if err := h.cartService.AddToCart(ctx, payload.UserID, addDTO.ProductID, addDTO.Quantity); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, nil, "")
}

// @Summary update cart item quantity
// @use set quantity of a cart item, quantity below 1 is rejected
// @Tags cart
// @Accept json
// @Produce json
// @Param id path string true "product id"
// @Param quantity body dto.UpdateCartQuantityDTO true "quantity"
// @Success 200 {object} apiutil.Response{} "success"
// @Failure 400 {object} apiutil.ResponseError{} "BadRequestCode"
// @Failure 404 {object} apiutil.ResponseError{} "NotFoundCode"
// @Security     ApiKeyAuth
// @Router /cart/items/{id} [patch]
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	var quantityDTO dto.UpdateCartQuantityDTO
	if err := json.NewDecoder(r.Body).Decode(&quantityDTO); err != nil {
		badRequest(w, err)
		return
	}

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	if err := h.cartService.UpdateQuantity(ctx, payload.UserID, productID, quantityDTO.Quantity); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, nil, "")
}

// @Summary remove cart item
// @Tags cart
// @Produce json
// @Param id path string true "product id"
// @Success 200 {object} apiutil.Response{} "success"
// @Failure 404 {object} apiutil.ResponseError{} "NotFoundCode"
// @Security     ApiKeyAuth
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	if err := h.cartService.RemoveFromCart(ctx, payload.UserID, productID); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, nil, "")
}

// @Summary clear cart
// @Tags cart
// @Produce json
// @Success 200 {object} apiutil.Response{} "success"
// @Security     ApiKeyAuth
// @Router /cart [delete]
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	if err := h.cartService.ClearCart(ctx, payload.UserID); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, nil, "")
}

// @Summary set lens option
// @use set lens option on an eyeglasses cart item
// @Tags cart
// @Accept json
// @Produce json
// @Param id path string true "product id"
// @Param lens body dto.LensOptionDTO true "lens option"
// @Success 200 {object} apiutil.Response{} "success"
// @Failure 400 {object} apiutil.ResponseError{} "BadRequestCode"
// @Failure 404 {object} apiutil.ResponseError{} "NotFoundCode"
// @Security     ApiKeyAuth
// @Router /cart/items/{id}/lens [put]
func (h *CartHandler) SetLensOption(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	var lensDTO dto.LensOptionDTO
	if err := json.NewDecoder(r.Body).Decode(&lensDTO); err != nil {
		badRequest(w, err)
		return
	}

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	lens := &model.LensOption{
		Type:             model.LensType(lensDTO.Type),
		Option:           lensDTO.Option,
		Price:            lensDTO.Price,
		PrescriptionCode: lensDTO.PrescriptionCode,
	}

	if err := h.cartService.UpdateLensOption(ctx, payload.UserID, productID, lens); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, nil, "")
}
