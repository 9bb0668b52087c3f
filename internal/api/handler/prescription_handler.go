package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/luxoptic/optistore/internal/api/apiutil"
	"github.com/luxoptic/optistore/internal/api/dto"
	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/pkg/util"
	"github.com/luxoptic/optistore/internal/service"
)

type PrescriptionHandler struct {
	prescriptionService service.IPrescriptionService
}

func NewPrescriptionHandler(prescriptionService service.IPrescriptionService) *PrescriptionHandler {
	if prescriptionService == nil {
		panic("prescriptionService cannot be nil")
	}
	return &PrescriptionHandler{
		prescriptionService: prescriptionService,
	}
}

// @Summary list own prescriptions
// @Tags prescriptions
// @Produce json
// @Success 200 {object} apiutil.Response{data=[]dto.PrescriptionDTO} "success"
// @Security     ApiKeyAuth
// @Router /prescriptions [get]
func (h *PrescriptionHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	prescriptions, err := h.prescriptionService.ListByUser(ctx, payload.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, convertPrescriptionsToDTO(prescriptions), "")
}

// @Summary get active prescription
// @use flagged-active first, else first non-expired verified prescription
// @Tags prescriptions
// @Produce json
// @Success 200 {object} apiutil.Response{data=dto.PrescriptionDTO} "success"
// @Failure 404 {object} apiutil.ResponseError{} "NotFoundCode"
// @Security     ApiKeyAuth
// @Router /prescriptions/active [get]
func (h *PrescriptionHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	prescription, err := h.prescriptionService.GetActivePrescription(ctx, payload.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, convertPrescriptionModelToDTO(prescription), "")
}

// @Summary set active prescription
// @Tags prescriptions
// @Produce json
// @Param id path int true "prescription id"
// @Success 200 {object} apiutil.Response{} "success"
// @Failure 403 {object} apiutil.ResponseError{} "UnauthorizedCode"
// @Security     ApiKeyAuth
// @Router /prescriptions/{id}/active [put]
func (h *PrescriptionHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	prescriptionID, err := strconv.Atoi(chi.URLParam(r, "id"))
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

	if err := h.prescriptionService.SetActive(ctx, payload.UserID, prescriptionID); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, nil, "")
}

// @Summary create prescription
// @use doctor creates a prescription for a patient
// @Tags doctor
// @Accept json
// @Produce json
// @Param prescription body dto.CreatePrescriptionDTO true "prescription"
// @Success 201 {object} apiutil.Response{data=dto.PrescriptionDTO} "created"
// @Failure 400 {object} apiutil.ResponseError{} "BadRequestCode"
// @Security     ApiKeyAuth
// @Router /doctor/prescriptions [post]
func (h *PrescriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var createDTO dto.CreatePrescriptionDTO
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

	dateIssued, err := time.Parse("2006-01-02", createDTO.DateIssued)
	if err != nil {
		badRequest(w, err)
		return
	}
	expiryDate, err := time.Parse("2006-01-02", createDTO.ExpiryDate)
	if err != nil {
		badRequest(w, err)
		return
	}

	prescription := &model.Prescription{
		Code:              createDTO.Code,
		UserID:            createDTO.UserID,
		RightSphere:       createDTO.RightSphere,
		RightCylinder:     createDTO.RightCylinder,
		RightAxis:         createDTO.RightAxis,
		LeftSphere:        createDTO.LeftSphere,
		LeftCylinder:      createDTO.LeftCylinder,
		LeftAxis:          createDTO.LeftAxis,
		PupillaryDistance: createDTO.PupillaryDistance,
		DoctorName:        payload.UPN,
		DoctorID:          payload.UserID,
		DateIssued:        dateIssued,
		ExpiryDate:        expiryDate,
	}

	if err := h.prescriptionService.CreatePrescription(ctx, prescription); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.CreatedJSON(w, convertPrescriptionModelToDTO(prescription), "")
}

// @Summary list doctor prescriptions
// @Tags doctor
// @Produce json
// @Success 200 {object} apiutil.Response{data=[]dto.PrescriptionDTO} "success"
// @Security     ApiKeyAuth
// @Router /doctor/prescriptions [get]
func (h *PrescriptionHandler) ListByDoctor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	prescriptions, err := h.prescriptionService.ListByDoctor(ctx, payload.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, convertPrescriptionsToDTO(prescriptions), "")
}

// @Summary update prescription status
// @use doctor verifies or rejects a prescription
// @Tags doctor
// @Accept json
// @Produce json
// @Param id path int true "prescription id"
// @Param status body dto.UpdatePrescriptionStatusDTO true "status"
// @Success 200 {object} apiutil.Response{} "success"
// @Failure 400 {object} apiutil.ResponseError{} "BadRequestCode"
// @Security     ApiKeyAuth
// @Router /doctor/prescriptions/{id}/status [patch]
func (h *PrescriptionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	prescriptionID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, err)
		return
	}

	var statusDTO dto.UpdatePrescriptionStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&statusDTO); err != nil {
		badRequest(w, err)
		return
	}

	status := model.PrescriptionStatus(statusDTO.Status)
	switch status {
	case model.PrescriptionVerified, model.PrescriptionRejected, model.PrescriptionPending:
	default:
		badRequest(w, nil)
		return
	}

	if err := h.prescriptionService.SetStatus(r.Context(), prescriptionID, status); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, nil, "")
}
