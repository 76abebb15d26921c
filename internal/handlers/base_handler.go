// Package handlers exposes the workflows over HTTP
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/notespath/backend/internal/models"
	"go.uber.org/zap"
)

type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// validationErrorResponse is the body of a failed form precondition
type validationErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field"`
}

// respondServiceError maps a workflow error kind to a status code and user-visible message
func (h *BaseHandler) respondServiceError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		h.respondJSON(w, http.StatusBadRequest, validationErrorResponse{
			Error: validationErr.Message,
			Field: validationErr.Field,
		})
		return
	}

	status, message := errorStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	h.respondError(w, status, message)
}

// errorStatus returns the HTTP status and message of an error kind
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest, models.ErrValidation.Error()
	case errors.Is(err, models.ErrAuth):
		return http.StatusUnauthorized, authMessage(err)
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden, models.ErrForbidden.Error()
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, models.ErrNotFound.Error()
	case errors.Is(err, models.ErrUpload):
		return http.StatusInternalServerError, models.ErrUpload.Error()
	case errors.Is(err, models.ErrDelete):
		return http.StatusInternalServerError, models.ErrDelete.Error()
	case errors.Is(err, models.ErrRetrieval):
		return http.StatusInternalServerError, models.ErrRetrieval.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// authMessage keeps the reason of auth failures such as "invalid credentials"
func authMessage(err error) string {
	if errors.Unwrap(err) == models.ErrAuth {
		return err.Error()
	}
	return models.ErrAuth.Error()
}
