package handler

import (
	"encoding/json"
	"net/http"

	"github.com/luxoptic/optistore/internal/api/apiutil"
	"github.com/luxoptic/optistore/internal/api/dto"
	"github.com/luxoptic/optistore/internal/pkg/util"
	"github.com/luxoptic/optistore/internal/service"
)

type AuthHandler struct {
	userService service.IUserService
}

func NewAuthHandler(userService service.IUserService) *AuthHandler {
	if userService == nil {
		panic("userService cannot be nil")
	}
	return &AuthHandler{
		userService: userService,
	}
}

// @Summary register
// @use register a new customer account
// @Tags auth
// @Accept json
// @Produce json
// @Param registerInfo body dto.RegisterDTO true "register info"
// @Success 201 {object} apiutil.Response{data=dto.UserDTO} "created"
// @Failure 409 {object} apiutil.ResponseError{} "ConflictCode"
// @Failure 500 {object} apiutil.ResponseError{} "Internal server error"
// @Router /auth/register [post]
func (a *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var registerDTO dto.RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&registerDTO); err != nil {
		badRequest(w, err)
		return
	}

	ctx := r.Context()

	user, err := a.userService.Register(ctx, service.RegisterParams{
		UserName: registerDTO.UserName,
		Email:    registerDTO.Email,
		Phone:    registerDTO.Phone,
		Address:  registerDTO.Address,
		Password: registerDTO.Password,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.CreatedJSON(w, convertUserModelToDTO(user), "")
}

// @Summary email and password login
// @use email and password to login
// @Tags auth
// @Accept json
// @Produce json
// @Param loginInfo body dto.LoginDTO true "email and password"
// @Success 200 {object} apiutil.Response{data=dto.LoginResponse} "success"
// @Failure 401 {object} apiutil.ResponseError{} "UnauthenticatedCode"
// @Failure 500 {object} apiutil.ResponseError{} "Internal server error"
// @Router /auth/login [post]
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginDTO dto.LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&loginDTO); err != nil {
		badRequest(w, err)
		return
	}

	ctx := r.Context()

	loginRes, err := a.userService.Login(ctx, loginDTO.Email, loginDTO.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, dto.LoginResponse{
		AccessToken: dto.TokenInfo{
			Value:     loginRes.AccessToken,
			ExpiredAt: loginRes.ExpiredAt,
		},
		User: convertUserModelToDTO(loginRes.User),
	}, "")
}

// @Summary get current login user info
// @use get current login user info
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} apiutil.Response{data=dto.UserDTO} "success"
// @Failure 401 {object} apiutil.ResponseError{} "UnauthenticatedCode"
// @Failure 500 {object} apiutil.ResponseError{} "Internal server error"
// @Security     ApiKeyAuth
// @Router /auth/me [get]
func (a *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	user, err := a.userService.GetUser(ctx, payload.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, convertUserModelToDTO(user), "")
}

// @Summary update profile
// @use update current user profile fields
// @Tags auth
// @Accept json
// @Produce json
// @Param profile body dto.UpdateProfileDTO true "profile fields"
// @Success 200 {object} apiutil.Response{} "success"
// @Failure 401 {object} apiutil.ResponseError{} "UnauthenticatedCode"
// @Failure 500 {object} apiutil.ResponseError{} "Internal server error"
// @Security     ApiKeyAuth
// @Router /auth/me [patch]
func (a *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var profileDTO dto.UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&profileDTO); err != nil {
		badRequest(w, err)
		return
	}

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	updates := map[string]interface{}{}
	if profileDTO.UserName != "" {
		updates["user_name"] = profileDTO.UserName
	}
	if profileDTO.Phone != "" {
		updates["user_phone"] = profileDTO.Phone
	}
	if profileDTO.Address != "" {
		updates["user_address"] = profileDTO.Address
	}

	if err := a.userService.UpdateProfile(ctx, payload.UserID, updates); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, nil, "")
}

// @Summary update preferences
// @use replace current user preferences blob
// @Tags auth
// @Accept json
// @Produce json
// @Param preferences body dto.UpdatePreferencesDTO true "preferences"
// @Success 200 {object} apiutil.Response{} "success"
// @Failure 401 {object} apiutil.ResponseError{} "UnauthenticatedCode"
// @Failure 500 {object} apiutil.ResponseError{} "Internal server error"
// @Security     ApiKeyAuth
// @Router /auth/me/preferences [put]
func (a *AuthHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var preferencesDTO dto.UpdatePreferencesDTO
	if err := json.NewDecoder(r.Body).Decode(&preferencesDTO); err != nil {
		badRequest(w, err)
		return
	}

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	if err := a.userService.UpdatePreferences(ctx, payload.UserID, preferencesDTO.Preferences); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, nil, "")
}
