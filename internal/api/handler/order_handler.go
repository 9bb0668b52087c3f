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
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{
		orderService: orderService,
	}
}

// @Summary list own orders
// @Tags orders
// @Produce json
// @Success 200 {object} apiutil.Response{data=[]dto.OrderDTO} "success"
// @Security     ApiKeyAuth
// @Router /orders [get]
func (h *OrderHandler) ListOwnOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	orders, err := h.orderService.GetOrdersByUserID(ctx, payload.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, convertOrdersToDTO(orders), "")
}

// @Summary get own order
// @Tags orders
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} apiutil.Response{data=dto.OrderDTO} "success"
// @Failure 404 {object} apiutil.ResponseError{} "NotFoundCode"
// @Security     ApiKeyAuth
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOwnOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	order, err := h.orderService.GetOrder(ctx, orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if order.UserID != payload.UserID {
		writeServiceError(w, service.ErrNotOrderOwner)
		return
	}

	apiutil.SuccessJSON(w, convertOrderModelToDTO(order), "")
}

// @Summary track order
// @use fixed five-stage tracking view with per-stage timestamps
// @Tags orders
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} apiutil.Response{data=service.TrackingView} "success"
// @Failure 404 {object} apiutil.ResponseError{} "NotFoundCode"
// @Security     ApiKeyAuth
// @Router /orders/{id}/tracking [get]
func (h *OrderHandler) TrackOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	userID := payload.UserID
	if payload.Role == model.RoleAdmin {
		userID = 0 // admin可查任何訂單
	}

	view, err := h.orderService.GetTracking(ctx, orderID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, view, "")
}

// @Summary cancel own order
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param reason body dto.CancelOrderDTO false "cancel reason"
// @Success 200 {object} apiutil.Response{} "success"
// @Failure 400 {object} apiutil.ResponseError{} "BadRequestCode"
// @Security     ApiKeyAuth
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) CancelOwnOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var cancelDTO dto.CancelOrderDTO
	// body可省略
	_ = json.NewDecoder(r.Body).Decode(&cancelDTO)

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	order, err := h.orderService.GetOrder(ctx, orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if order.UserID != payload.UserID {
		writeServiceError(w, service.ErrNotOrderOwner)
		return
	}

	if err := h.orderService.CancelOrder(ctx, orderID, cancelDTO.Reason); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, nil, "")
}

// @Summary list all orders
// @use admin lists all orders
// @Tags admin
// @Produce json
// @Success 200 {object} apiutil.Response{data=[]dto.OrderDTO} "success"
// @Security     ApiKeyAuth
// @Router /admin/orders [get]
func (h *OrderHandler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.GetAllOrders(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, convertOrdersToDTO(orders), "")
}

// @Summary update order status
// @use admin moves an order along the status path, invalid transitions rejected
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param status body dto.UpdateOrderStatusDTO true "next status"
// @Success 200 {object} apiutil.Response{} "success"
// @Failure 400 {object} apiutil.ResponseError{} "BadRequestCode"
// @Security     ApiKeyAuth
// @Router /admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var statusDTO dto.UpdateOrderStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&statusDTO); err != nil {
		badRequest(w, err)
		return
	}
	if !model.IsValidOrderStatus(statusDTO.Status) {
		badRequest(w, nil)
		return
	}

	if err := h.orderService.UpdateOrderStatus(r.Context(), orderID, model.OrderStatus(statusDTO.Status)); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, nil, "")
}

// @Summary assign delivery
// @use admin assigns an order to a delivery user
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param assignment body dto.AssignDeliveryDTO true "delivery user"
// @Success 200 {object} apiutil.Response{} "success"
// @Security     ApiKeyAuth
// @Router /admin/orders/{id}/delivery [patch]
func (h *OrderHandler) AssignDelivery(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var assignDTO dto.AssignDeliveryDTO
	if err := json.NewDecoder(r.Body).Decode(&assignDTO); err != nil {
		badRequest(w, err)
		return
	}

	if err := h.orderService.AssignDelivery(r.Context(), orderID, assignDTO.DeliveryUserID); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, nil, "")
}

// @Summary list assigned orders
// @use delivery user lists orders assigned to them
// @Tags delivery
// @Produce json
// @Success 200 {object} apiutil.Response{data=[]dto.OrderDTO} "success"
// @Security     ApiKeyAuth
// @Router /delivery/orders [get]
func (h *OrderHandler) ListAssignedOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	orders, err := h.orderService.GetOrdersByDeliveryUser(ctx, payload.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, convertOrdersToDTO(orders), "")
}

// @Summary delivery status update
// @use delivery user moves assigned orders along ready_to_deliver -> shipped -> delivered only
// @Tags delivery
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param status body dto.UpdateOrderStatusDTO true "next status"
// @Success 200 {object} apiutil.Response{} "success"
// @Failure 400 {object} apiutil.ResponseError{} "BadRequestCode"
// @Failure 403 {object} apiutil.ResponseError{} "UnauthorizedCode"
// @Security     ApiKeyAuth
// @Router /delivery/orders/{id}/status [patch]
func (h *OrderHandler) DeliveryUpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var statusDTO dto.UpdateOrderStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&statusDTO); err != nil {
		badRequest(w, err)
		return
	}

	next := model.OrderStatus(statusDTO.Status)
	// 配送角色只能推進出貨相關狀態
	if next != model.OrderStatusShipped && next != model.OrderStatusDelivered {
		writeServiceError(w, service.ErrDeliveryScopedTransition)
		return
	}

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	order, err := h.orderService.GetOrder(ctx, orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if order.DeliveryUserID != payload.UserID {
		writeServiceError(w, service.ErrNotOrderOwner)
		return
	}

	if err := h.orderService.UpdateOrderStatus(ctx, orderID, next); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, nil, "")
}
