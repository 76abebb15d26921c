package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/notespath/backend/internal/middleware"
	"github.com/notespath/backend/internal/models"
	"go.uber.org/zap"
)

// MaterialService is the interface that wraps methods for the material detail view.
type MaterialService interface {
	// Method FetchOne retrieves a material by its ID.
	//
	// If no material matches, a not found error is returned. Other failures are retrieval errors.
	FetchOne(ctx context.Context, id string) (*models.Material, error)
	// Method Delete removes the material blob and record on behalf of "identity".
	//
	// Only the owner may delete a material. Any failure is reported as a delete error.
	Delete(ctx context.Context, identity *models.Identity, material *models.Material) error
	// Method Share returns the copy and WhatsApp links of a material.
	Share(material *models.Material) models.ShareLinks
}

// MaterialHandler handles material detail HTTP requests
type MaterialHandler struct {
	BaseHandler
	service MaterialService
}

// NewMaterialHandler creates a new material handler
func NewMaterialHandler(svc MaterialService, logger *zap.Logger) *MaterialHandler {
	return &MaterialHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all material handler routes
func (h *MaterialHandler) RegisterRoutes(r chi.Router) {
	r.Get("/materials/{id}", h.GetByID)
	r.Get("/materials/{id}/share", h.Share)
	r.With(middleware.RequireSession).Delete("/materials/{id}", h.Delete)
}

// GetByID handles GET /api/v1/materials/{id}
// @Summary Get material
// @Description Get a material by its ID
// @Tags materials
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} models.MaterialView
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /materials/{id} [get]
func (h *MaterialHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	material, err := h.service.FetchOne(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.NewMaterialView(*material, viewerID(r)))
}

// Share handles GET /api/v1/materials/{id}/share
// @Summary Share links
// @Description Get the copy link and WhatsApp link of a material
// @Tags materials
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} models.ShareLinks
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /materials/{id}/share [get]
func (h *MaterialHandler) Share(w http.ResponseWriter, r *http.Request) {
	material, err := h.service.FetchOne(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.service.Share(material))
}

// Delete handles DELETE /api/v1/materials/{id}
// @Summary Delete material
// @Description Delete a material file and record. Only the owner may delete a material.
// @Tags materials
// @Param id path string true "Material ID"
// @Success 204 "Material deleted"
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /materials/{id} [delete]
func (h *MaterialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	material, err := h.service.FetchOne(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), middleware.GetIdentity(r.Context()), material); err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
