package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/notespath/backend/internal/middleware"
	"github.com/notespath/backend/internal/models"
	"go.uber.org/zap"
)

// ProfileHandler handles profile HTTP requests
type ProfileHandler struct {
	BaseHandler
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all profile handler routes
func (h *ProfileHandler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireSession).Get("/profile", h.GetProfile)
}

// GetProfile handles GET /api/v1/profile
// @Summary Get profile
// @Description Get the email and avatar initial of the signed-in user
// @Tags profile
// @Produce json
// @Success 200 {object} models.Profile
// @Failure 401 {object} map[string]string
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	h.respondJSON(w, http.StatusOK, models.NewProfile(*identity))
}
