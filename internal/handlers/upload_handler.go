package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/notespath/backend/internal/middleware"
	"github.com/notespath/backend/internal/models"
	"go.uber.org/zap"
)

const maxUploadMemory = 32 << 20 // 32MB kept in memory, the rest spills to temp files

// UploadService is the interface that wraps the upload workflow.
type UploadService interface {
	// Method Upload validates the form, stores the file and inserts the material record.
	//
	// A missing form field is a validation error and nothing is stored.
	// Storage and insert failures are upload errors.
	Upload(ctx context.Context, identity *models.Identity, form *models.UploadForm) (*models.Material, error)
}

// UploadHandler handles material upload HTTP requests
type UploadHandler struct {
	BaseHandler
	service UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(svc UploadService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all upload handler routes
func (h *UploadHandler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireSession).Post("/materials", h.Upload)
}

// Upload handles POST /api/v1/materials
// @Summary Upload material
// @Description Upload a note file together with its metadata
// @Tags materials
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Material file"
// @Param title formData string true "Title"
// @Param branch formData string true "Branch"
// @Param subject formData string true "Subject"
// @Param semester formData string false "Semester"
// @Param module formData string false "Module"
// @Param college_details formData string false "College details"
// @Param uploader_name formData string false "Uploader name"
// @Success 201 {object} models.MaterialView
// @Failure 400 {object} validationErrorResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /materials [post]
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		h.logger.Info("failed to parse multipart form", zap.Error(err))
		h.respondError(w, http.StatusBadRequest, "failed to parse request")
		return
	}
	defer r.MultipartForm.RemoveAll()

	form := &models.UploadForm{
		Title:          r.FormValue("title"),
		Branch:         r.FormValue("branch"),
		Subject:        r.FormValue("subject"),
		Semester:       r.FormValue("semester"),
		Module:         r.FormValue("module"),
		CollegeDetails: r.FormValue("college_details"),
		UploaderName:   r.FormValue("uploader_name"),
	}

	file, fileHeader, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		// An empty file field counts as no file selected
		if fileHeader.Size > 0 {
			form.File = &models.UploadFile{
				Name:        fileHeader.Filename,
				ContentType: fileHeader.Header.Get("Content-Type"),
				Size:        fileHeader.Size,
				Content:     file,
			}
		}
	case !errors.Is(err, http.ErrMissingFile):
		h.logger.Error("failed to get file from form", zap.Error(err))
		h.respondError(w, http.StatusBadRequest, "failed to process file")
		return
	}

	identity := middleware.GetIdentity(r.Context())
	material, err := h.service.Upload(r.Context(), identity, form)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, models.NewMaterialView(*material, identity.ID))
}
