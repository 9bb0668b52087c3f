package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/luxoptic/optistore/internal/api/apiutil"
	"github.com/luxoptic/optistore/internal/api/dto"
	"github.com/luxoptic/optistore/internal/constants"
	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/pkg/util"
	"github.com/luxoptic/optistore/internal/service"
)

type ProductHandler struct {
	productService service.IProductService
}

func NewProductHandler(productService service.IProductService) *ProductHandler {
	if productService == nil {
		panic("productService cannot be nil")
	}
	return &ProductHandler{
		productService: productService,
	}
}

// @Summary list products
// @use list products with paging and category/frame filters
// @Tags products
// @Accept json
// @Produce json
// @Param page query int false "page"
// @Param page_size query int false "page size"
// @Param category query string false "category"
// @Param frame_shape query string false "frame shape"
// @Success 200 {object} apiutil.Response{data=dto.PagedResponse[dto.ProductDTO]} "success"
// @Failure 500 {object} apiutil.ResponseError{} "Internal server error"
// @Router /products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page := constants.DefaultPaging
	pageSize := constants.DefaultPagingSize
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 {
		pageSize = v
	}

	filters := map[string]interface{}{}
	if category := r.URL.Query().Get("category"); category != "" {
		if !model.IsValidProductCategory(category) {
			badRequest(w, nil)
			return
		}
		filters["category"] = category
	}
	if shape := r.URL.Query().Get("frame_shape"); shape != "" {
		filters["frame_shape"] = shape
	}

	products, total, err := h.productService.ListProducts(r.Context(), page, pageSize, filters)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items := make([]dto.ProductDTO, 0, len(products))
	for i := range products {
		items = append(items, convertProductModelToDTO(&products[i]))
	}

	apiutil.SuccessJSON(w, dto.PagedResponse[dto.ProductDTO]{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, "")
}

// @Summary get product
// @use get single product by id
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "product id"
// @Success 200 {object} apiutil.Response{data=dto.ProductDTO} "success"
// @Failure 404 {object} apiutil.ResponseError{} "NotFoundCode"
// @Failure 500 {object} apiutil.ResponseError{} "Internal server error"
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	product, err := h.productService.GetProduct(r.Context(), productID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, convertProductModelToDTO(product), "")
}

// @Summary list categories
// @Tags products
// @Produce json
// @Success 200 {object} apiutil.Response{data=[]model.Category} "success"
// @Router /categories [get]
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.productService.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	apiutil.SuccessJSON(w, categories, "")
}

// @Summary list frame types
// @Tags products
// @Produce json
// @Success 200 {object} apiutil.Response{data=[]model.FrameType} "success"
// @Router /frame-types [get]
func (h *ProductHandler) ListFrameTypes(w http.ResponseWriter, r *http.Request) {
	frameTypes, err := h.productService.ListFrameTypes(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	apiutil.SuccessJSON(w, frameTypes, "")
}

// @Summary create product
// @use admin/manufacturer create a product
// @Tags products
// @Accept json
// @Produce json
// @Param product body dto.CreateProductDTO true "product"
// @Success 201 {object} apiutil.Response{data=dto.ProductDTO} "created"
// @Failure 400 {object} apiutil.ResponseError{} "BadRequestCode"
// @Failure 500 {object} apiutil.ResponseError{} "Internal server error"
// @Security     ApiKeyAuth
// @Router /products [post]
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var productDTO dto.CreateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&productDTO); err != nil {
		badRequest(w, err)
		return
	}
	if !model.IsValidProductCategory(productDTO.Category) {
		badRequest(w, nil)
		return
	}

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	product := &model.Product{
		ProductID:   uuid.NewString(),
		Code:        productDTO.Code,
		Name:        productDTO.ProductName,
		Description: productDTO.Description,
		Category:    model.ProductCategory(productDTO.Category),
		Price:       productDTO.Price,
		Stock:       productDTO.Stock,
		FrameShape:  productDTO.FrameShape,
		FrameColor:  productDTO.FrameColor,
		Material:    productDTO.FrameMaterial,
		ImageURLs:   strings.Join(productDTO.ImageURLs, ","),
		InStock:     productDTO.Stock > 0,
	}
	if payload.Role == model.RoleManufacturer {
		product.ManufacturerID = payload.UserID
	}

	if err := h.productService.CreateProduct(ctx, product); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.CreatedJSON(w, convertProductModelToDTO(product), "")
}

// @Summary update product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "product id"
// @Param product body dto.CreateProductDTO true "product"
// @Success 200 {object} apiutil.Response{data=dto.ProductDTO} "success"
// @Failure 404 {object} apiutil.ResponseError{} "NotFoundCode"
// @Security     ApiKeyAuth
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	var productDTO dto.CreateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&productDTO); err != nil {
		badRequest(w, err)
		return
	}

	ctx := r.Context()
	product, err := h.productService.GetProduct(ctx, productID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	product.Name = productDTO.ProductName
	product.Description = productDTO.Description
	product.Price = productDTO.Price
	product.FrameShape = productDTO.FrameShape
	product.FrameColor = productDTO.FrameColor
	product.Material = productDTO.FrameMaterial
	product.ImageURLs = strings.Join(productDTO.ImageURLs, ",")
	if productDTO.Category != "" {
		if !model.IsValidProductCategory(productDTO.Category) {
			badRequest(w, nil)
			return
		}
		product.Category = model.ProductCategory(productDTO.Category)
	}

	if err := h.productService.UpdateProduct(ctx, product); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, convertProductModelToDTO(product), "")
}

// @Summary delete product
// @Tags products
// @Produce json
// @Param id path string true "product id"
// @Success 200 {object} apiutil.Response{} "success"
// @Failure 404 {object} apiutil.ResponseError{} "NotFoundCode"
// @Security     ApiKeyAuth
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	if err := h.productService.DeleteProduct(r.Context(), productID); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, nil, "")
}

// @Summary list own products
// @use manufacturer lists own products
// @Tags manufacturer
// @Produce json
// @Success 200 {object} apiutil.Response{data=[]dto.ProductDTO} "success"
// @Security     ApiKeyAuth
// @Router /manufacturer/products [get]
func (h *ProductHandler) ListOwnProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	products, err := h.productService.ListProductsByManufacturer(ctx, payload.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items := make([]dto.ProductDTO, 0, len(products))
	for i := range products {
		items = append(items, convertProductModelToDTO(&products[i]))
	}
	apiutil.SuccessJSON(w, items, "")
}

// @Summary adjust stock
// @use manufacturer adjusts stock of own product
// @Tags manufacturer
// @Accept json
// @Produce json
// @Param id path string true "product id"
// @Param stock body dto.AdjustStockDTO true "stock"
// @Success 200 {object} apiutil.Response{} "success"
// @Failure 403 {object} apiutil.ResponseError{} "UnauthorizedCode"
// @Security     ApiKeyAuth
// @Router /manufacturer/products/{id}/stock [patch]
func (h *ProductHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	var stockDTO dto.AdjustStockDTO
	if err := json.NewDecoder(r.Body).Decode(&stockDTO); err != nil {
		badRequest(w, err)
		return
	}

	ctx := r.Context()
	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		unauthenticated(w)
		return
	}

	if err := h.productService.AdjustStock(ctx, productID, payload.UserID, stockDTO.Stock); err != nil {
		writeServiceError(w, err)
		return
	}

	apiutil.SuccessJSON(w, nil, "")
}
