package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/luxoptic/optistore/internal/api/apiutil"
	"github.com/luxoptic/optistore/internal/api/dto"
	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/pkg/util"
	"github.com/luxoptic/optistore/internal/service"
)

type AdminHandler struct {
	userService      service.IUserService
	dashboardService service.IDashboardService
}

func NewAdminHandler(userService service.IUserService, dashboardService service.IDashboardService) *AdminHandler {
	if userService == nil {
		panic("userService cannot be nil")
	}
	if dashboardService == nil {
		panic("dashboardService cannot be nil")
	}
	return &AdminHandler{
		userService:      userService,
		dashboardService: dashboardService,
	}
}

// @Summary list users
// @use admin lists all users, optional role filter
// @Tags admin
// @Produce json
// @Param role query string false "role filter"
// @Success 200 {object} apiutil.Response{data=[]dto.UserDTO} "success"
// @Security     ApiKeyAuth
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var users []model.User
	var err error
	if role := r.URL.Query().Get("role"); role != "" {
		users, err = h.userService.GetUsersByRole(ctx, model.UserRole(role))
	} else {
		users, err = h.userService.GetAllUsers(ctx)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	result := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		result = append(result, convertUserModelToDTO(&users[i]))
	}
	apiutil.SuccessJSON(w, result, "")
}

// @Summary create staff user
// @use admin creates a non-customer account (doctor/delivery/manufacturer/admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param user body dto.CreateStaffUserDTO true "staff user"
// @Success 201 {object} apiutil.Response{data=dto.UserDTO} "created"
// @Failure 409 {object} apiutil.ResponseError{} "ConflictCode"
// @Security     ApiKeyAuth
// @Router /admin/users [post]
func (h *AdminHandler) CreateStaffUser(w http.ResponseWriter, r *http.Request) {
	var staffDTO dto.CreateStaffUserDTO
	if err := json.NewDecoder(r.Body).Decode(&staffDTO); err != nil {
		badRequest(w, err)
		return
	}

	user, err := h.userService.Register(r.Context(), service.RegisterParams{
		UserName: staffDTO.UserName,
		Email:    staffDTO.Email,
		Phone:    staffDTO.Phone,
		Address:  staffDTO.Address,
		Password: staffDTO.Password,
		Role:     model.UserRole(staffDTO.Role),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.CreatedJSON(w, convertUserModelToDTO(user), "")
}

// @Summary update user role
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "user id"
// @Param role body dto.UpdateUserRoleDTO true "role"
// @Success 200 {object} apiutil.Response{} "success"
// @Failure 403 {object} apiutil.ResponseError{} "UnauthorizedCode"
// @Security     ApiKeyAuth
// @Router /admin/users/{id}/role [patch]
func (h *AdminHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, err)
		return
	}

	var roleDTO dto.UpdateUserRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&roleDTO); err != nil {
		badRequest(w, err)
		return
	}

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	if err := h.userService.UpdateRole(ctx, payload.UserID, userID, model.UserRole(roleDTO.Role)); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, nil, "")
}

// @Summary delete user
// @Tags admin
// @Produce json
// @Param id path int true "user id"
// @Success 200 {object} apiutil.Response{} "success"
// @Security     ApiKeyAuth
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, err)
		return
	}

	if err := h.userService.DeleteUser(r.Context(), userID); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, nil, "")
}

// @Summary admin dashboard overview
// @use aggregated product/order/user counts
// @Tags admin
// @Produce json
// @Success 200 {object} apiutil.Response{data=service.AdminSummary} "success"
// @Security     ApiKeyAuth
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.AdminOverview(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, summary, "")
}

// @Summary customer dashboard overview
// @use own orders, prescriptions and appointments in one response
// @Tags dashboard
// @Produce json
// @Success 200 {object} apiutil.Response{data=service.CustomerSummary} "success"
// @Security     ApiKeyAuth
// @Router /dashboard [get]
func (h *AdminHandler) CustomerDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	summary, err := h.dashboardService.CustomerOverview(ctx, payload.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, summary, "")
}
