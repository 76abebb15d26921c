package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/notespath/backend/internal/middleware"
	"github.com/notespath/backend/internal/models"
	"github.com/notespath/backend/internal/services"
	"go.uber.org/zap"
)

// CatalogService is the interface that wraps methods for catalog retrieval.
type CatalogService interface {
	// Method FetchAll retrieves every material, newest first.
	//
	// If the store reports an error, it is returned as a retrieval error together with "nil" value.
	FetchAll(ctx context.Context) ([]models.Material, error)
	// Method Subjects returns the subject suggestions of a branch.
	//
	// Predefined subjects are always returned, even when the store cannot be reached.
	Subjects(ctx context.Context, branch string) []string
	// Method Options returns the branches, semesters and modules offered in dropdowns.
	Options() models.Options
}

// CatalogHandler handles catalog HTTP requests
type CatalogHandler struct {
	BaseHandler
	service CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(svc CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all catalog handler routes.
// The router is expected to be scoped to /api/v1 and to run the session middleware.
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/materials", h.List)
	r.Get("/options", h.Options)
	r.Get("/subjects", h.Subjects)
	r.With(middleware.RequireSession).Get("/dashboard", h.Dashboard)
}

// dashboardResponse is the body of the dashboard view
type dashboardResponse struct {
	User      models.Profile        `json:"user"`
	Materials []models.MaterialView `json:"materials"`
}

// List handles GET /api/v1/materials
// @Summary List materials
// @Description Get all materials, newest first, narrowed by the optional filters
// @Tags materials
// @Produce json
// @Param q query string false "Case-insensitive search over subject, title and uploader name"
// @Param branch query string false "Branch"
// @Param module query string false "Module"
// @Param semester query string false "Semester"
// @Success 200 {array} models.MaterialView
// @Failure 500 {object} map[string]string
// @Router /materials [get]
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.filteredViews(r)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, views)
}

// Dashboard handles GET /api/v1/dashboard
// @Summary Dashboard
// @Description Get the signed-in user together with all materials
// @Tags materials
// @Produce json
// @Param q query string false "Case-insensitive search over subject, title and uploader name"
// @Param branch query string false "Branch"
// @Param module query string false "Module"
// @Param semester query string false "Semester"
// @Success 200 {object} dashboardResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /dashboard [get]
func (h *CatalogHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	views, err := h.filteredViews(r)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	identity := middleware.GetIdentity(r.Context())
	h.respondJSON(w, http.StatusOK, dashboardResponse{
		User:      models.NewProfile(*identity),
		Materials: views,
	})
}

// Options handles GET /api/v1/options
// @Summary Filter options
// @Description Get the branches, semesters and modules offered in filters and the upload form
// @Tags materials
// @Produce json
// @Success 200 {object} models.Options
// @Router /options [get]
func (h *CatalogHandler) Options(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.service.Options())
}

// Subjects handles GET /api/v1/subjects
// @Summary Subject suggestions
// @Description Get predefined and previously used subjects of a branch
// @Tags materials
// @Produce json
// @Param branch query string true "Branch"
// @Success 200 {array} string
// @Failure 400 {object} map[string]string
// @Router /subjects [get]
func (h *CatalogHandler) Subjects(w http.ResponseWriter, r *http.Request) {
	branch := r.URL.Query().Get("branch")
	if branch == "" {
		h.respondError(w, http.StatusBadRequest, "branch parameter is required")
		return
	}

	h.respondJSON(w, http.StatusOK, h.service.Subjects(r.Context(), branch))
}

func (h *CatalogHandler) filteredViews(r *http.Request) ([]models.MaterialView, error) {
	all, err := h.service.FetchAll(r.Context())
	if err != nil {
		return nil, err
	}

	query := r.URL.Query()
	filtered := services.ApplyFilters(all, models.Filter{
		Query:    query.Get("q"),
		Branch:   query.Get("branch"),
		Module:   query.Get("module"),
		Semester: query.Get("semester"),
	})

	return toViews(filtered, viewerID(r)), nil
}

func toViews(materials []models.Material, viewerID string) []models.MaterialView {
	views := make([]models.MaterialView, 0, len(materials))
	for _, m := range materials {
		views = append(views, models.NewMaterialView(m, viewerID))
	}
	return views
}

// viewerID returns the id of the signed-in user, or an empty string
func viewerID(r *http.Request) string {
	if identity := middleware.GetIdentity(r.Context()); identity != nil {
		return identity.ID
	}
	return ""
}
