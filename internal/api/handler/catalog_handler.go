package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/luxoptic/optistore/internal/api/apiutil"
	"github.com/luxoptic/optistore/internal/api/dto"
	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/service"
)

// CatalogHandler 分類與鏡框類型維護，admin route group使用
type CatalogHandler struct {
	productService service.IProductService
}

func NewCatalogHandler(productService service.IProductService) *CatalogHandler {
	if productService == nil {
		panic("productService cannot be nil")
	}
	return &CatalogHandler{
		productService: productService,
	}
}

// @Summary create category
// @Tags admin
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryDTO true "category"
// @Success 201 {object} apiutil.Response{data=model.Category} "created"
// @Security     ApiKeyAuth
// @Router /admin/categories [post]
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var categoryDTO dto.CreateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&categoryDTO); err != nil {
		badRequest(w, err)
		return
	}

	category := &model.Category{Name: categoryDTO.Name}
	if err := h.productService.CreateCategory(r.Context(), category); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.CreatedJSON(w, category, "")
}

// @Summary delete category
// @Tags admin
// @Produce json
// @Param id path int true "category id"
// @Success 200 {object} apiutil.Response{} "success"
// @Security     ApiKeyAuth
// @Router /admin/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, err)
		return
	}

	if err := h.productService.DeleteCategory(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, nil, "")
}

// @Summary create frame type
// @Tags admin
// @Accept json
// @Produce json
// @Param frameType body dto.CreateFrameTypeDTO true "frame type"
// @Success 201 {object} apiutil.Response{data=model.FrameType} "created"
// @Security     ApiKeyAuth
// @Router /admin/frame-types [post]
func (h *CatalogHandler) CreateFrameType(w http.ResponseWriter, r *http.Request) {
	var frameTypeDTO dto.CreateFrameTypeDTO
	if err := json.NewDecoder(r.Body).Decode(&frameTypeDTO); err != nil {
		badRequest(w, err)
		return
	}

	frameType := &model.FrameType{Name: frameTypeDTO.Name, Description: frameTypeDTO.Description}
	if err := h.productService.CreateFrameType(r.Context(), frameType); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.CreatedJSON(w, frameType, "")
}

// @Summary delete frame type
// @Tags admin
// @Produce json
// @Param id path int true "frame type id"
// @Success 200 {object} apiutil.Response{} "success"
// @Security     ApiKeyAuth
// @Router /admin/frame-types/{id} [delete]
func (h *CatalogHandler) DeleteFrameType(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, err)
		return
	}

	if err := h.productService.DeleteFrameType(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, nil, "")
}
