package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stockroom/stockroom/internal/handler/dto"
	"github.com/stockroom/stockroom/internal/service"
	"github.com/stockroom/stockroom/internal/validation"
)

// Fixed response messages for the product endpoints.
const (
	msgProductsRetrieved = "Products retrieved successfully"
	msgProductCreated    = "Product created successfully"
	msgProductRetrieved  = "Product retrieved successfully"
	msgProductUpdated    = "Product updated successfully"
	msgProductDeleted    = "Product deleted successfully"
	msgProductNotFound   = "Product not found"
)

// ProductHandler handles HTTP requests for product operations.
type ProductHandler struct {
	svc    *service.ProductService
	logger *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := 0
	if p := query.Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			page = parsed
		}
	}

	perPage := 0
	if pp := query.Get("per_page"); pp != "" {
		if parsed, err := strconv.Atoi(pp); err == nil {
			perPage = parsed
		}
	}

	result, err := h.svc.ListProducts(r.Context(), page, perPage)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.Success(msgProductsRetrieved, dto.ProductListData{
		Data:        result.Products,
		CurrentPage: result.CurrentPage,
		PerPage:     result.PerPage,
		Total:       result.Total,
	}))
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Failure("Invalid request body"))
		return
	}

	product, err := h.svc.CreateProduct(r.Context(), fields)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("product_created",
		"product_id", product.ID,
		"slug", product.Slug,
	)

	writeJSON(w, http.StatusCreated, dto.Success(msgProductCreated, dto.ProductData{Product: product}))
}

// Show handles GET /api/products/{product}. The path segment is the
// product slug.
func (h *ProductHandler) Show(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "product")

	product, err := h.svc.GetProductBySlug(r.Context(), slug)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.Success(msgProductRetrieved, dto.ProductData{Product: product}))
}

// Update handles PUT /api/products/{product}. The path segment is the
// product ID.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "product")

	fields, err := decodeFields(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Failure("Invalid request body"))
		return
	}

	product, err := h.svc.UpdateProduct(r.Context(), id, fields)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("product_updated",
		"product_id", product.ID,
		"slug", product.Slug,
	)

	writeJSON(w, http.StatusOK, dto.Success(msgProductUpdated, dto.ProductData{Product: product}))
}

// Delete handles DELETE /api/products/{product}. The path segment is the
// product ID.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "product")

	if err := h.svc.DeleteProduct(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("product_deleted", "product_id", id)

	writeJSON(w, http.StatusOK, dto.Success(msgProductDeleted, nil))
}

// handleServiceError maps service errors to HTTP responses.
func (h *ProductHandler) handleServiceError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeValidationError(w, verr)
	case errors.Is(err, service.ErrProductNotFound):
		writeJSON(w, http.StatusNotFound, dto.Failure(msgProductNotFound))
	default:
		h.logger.Error("internal_error", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.Failure("An internal error occurred"))
	}
}
