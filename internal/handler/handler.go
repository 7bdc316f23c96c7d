// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/stockroom/stockroom/internal/handler/dto"
	"github.com/stockroom/stockroom/internal/service"
	"github.com/stockroom/stockroom/internal/validation"
)

// Handler provides the plain informational endpoints.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Hello is the root info endpoint.
// GET /
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message": "Stockroom API",
		"version": "1.0.0",
	}
	writeJSON(w, http.StatusOK, response)
}

// NotFound handles 404 responses for unmatched routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, dto.Failure("Resource not found"))
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, dto.Failure("Method not allowed"))
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// The status line is already gone; nothing sensible left to do.
		_ = err
	}
}

// writeValidationError writes the fixed 422 envelope with the field map.
func writeValidationError(w http.ResponseWriter, verr *validation.Error) {
	writeJSON(w, http.StatusUnprocessableEntity, dto.ValidationFailure(verr.Fields))
}

// decodeFields decodes a JSON object body preserving numbers as json.Number,
// so the validators can tell a malformed number from a malformed type.
func decodeFields(r *http.Request) (service.Fields, error) {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	fields := service.Fields{}
	if err := decoder.Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			// An empty body is an empty object; the validators report
			// the missing fields with proper 422 field errors.
			return service.Fields{}, nil
		}
		return nil, err
	}
	return fields, nil
}
