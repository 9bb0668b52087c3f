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

type AppointmentHandler struct {
	appointmentService service.IAppointmentService
}

func NewAppointmentHandler(appointmentService service.IAppointmentService) *AppointmentHandler {
	if appointmentService == nil {
		panic("appointmentService cannot be nil")
	}
	return &AppointmentHandler{
		appointmentService: appointmentService,
	}
}

// @Summary create appointment
// @use customer books an eye exam appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointment body dto.CreateAppointmentDTO true "appointment"
// @Success 201 {object} apiutil.Response{data=model.Appointment} "created"
// @Failure 400 {object} apiutil.ResponseError{} "BadRequestCode"
// @Security     ApiKeyAuth
// @Router /appointments [post]
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var createDTO dto.CreateAppointmentDTO
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		badRequest(w, err)
		return
	}

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	appointment := &model.Appointment{
		UserID:      payload.UserID,
		DoctorID:    createDTO.DoctorID,
		ScheduledAt: createDTO.ScheduledAt,
		Reason:      createDTO.Reason,
	}

	if err := h.appointmentService.CreateAppointment(ctx, appointment); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.CreatedJSON(w, appointment, "")
}

// @Summary list own appointments
// @Tags appointments
// @Produce json
// @Success 200 {object} apiutil.Response{data=[]model.Appointment} "success"
// @Security     ApiKeyAuth
// @Router /appointments [get]
func (h *AppointmentHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	appointments, err := h.appointmentService.ListByUser(ctx, payload.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, appointments, "")
}

// @Summary cancel own appointment
// @Tags appointments
// @Produce json
// @Param id path int true "appointment id"
// @Success 200 {object} apiutil.Response{} "success"
// @Failure 403 {object} apiutil.ResponseError{} "UnauthorizedCode"
// @Security     ApiKeyAuth
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) CancelOwn(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, err)
		return
	}

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	if err := h.appointmentService.CancelByUser(ctx, payload.UserID, appointmentID); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, nil, "")
}

// @Summary list doctor appointments
// @Tags doctor
// @Produce json
// @Success 200 {object} apiutil.Response{data=[]model.Appointment} "success"
// @Security     ApiKeyAuth
// @Router /doctor/appointments [get]
func (h *AppointmentHandler) ListByDoctor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	appointments, err := h.appointmentService.ListByDoctor(ctx, payload.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, appointments, "")
}

// @Summary update appointment status
// @use doctor confirms/completes/cancels an appointment
// @Tags doctor
// @Accept json
// @Produce json
// @Param id path int true "appointment id"
// @Param status body dto.UpdateAppointmentStatusDTO true "status"
// @Success 200 {object} apiutil.Response{} "success"
// @Failure 400 {object} apiutil.ResponseError{} "BadRequestCode"
// @Security     ApiKeyAuth
// @Router /doctor/appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, err)
		return
	}

	var statusDTO dto.UpdateAppointmentStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&statusDTO); err != nil {
		badRequest(w, err)
		return
	}

	if err := h.appointmentService.UpdateStatus(r.Context(), appointmentID, model.AppointmentStatus(statusDTO.Status)); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, nil, "")
}
