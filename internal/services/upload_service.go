package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/notespath/backend/internal/config"
	"github.com/notespath/backend/internal/metrics"
	"github.com/notespath/backend/internal/models"
	"github.com/notespath/backend/internal/storage"
	"go.uber.org/zap"
)

// BlobStorage defines the interface for material file storage
type BlobStorage interface {
	// Method Upload stores the content at the object path.
	//
	// "objectPath" is the path inside the bucket, scoped by the owner id.
	// "size" is the content length in bytes, or a non-positive value when unknown.
	//
	// If some error occurs during upload, nothing is guaranteed to be stored.
	Upload(ctx context.Context, objectPath string, content io.Reader, size int64, contentType string) error
	// Method Remove deletes the objects at the given paths.
	Remove(ctx context.Context, objectPaths ...string) error
	// Method PublicURL resolves the public URL of the object.
	PublicURL(objectPath string) string
}

// MaterialWriter is the interface that wraps methods for writing the materials table
type MaterialWriter interface {
	// Method Create inserts a new material, assigning its ID and CreatedAt.
	//
	// If some error occurs during insert, the error will be returned and the material left unchanged.
	Create(ctx context.Context, material *models.Material) error
}

// SubjectInvalidator drops cached subject suggestions of a branch
type SubjectInvalidator interface {
	InvalidateSubjects(branch string)
}

// validationMessages holds the message shown for each missing upload field
var validationMessages = map[string]struct {
	field   string
	message string
}{
	"File":    {field: "file", message: "Please select a file"},
	"Title":   {field: "title", message: "Please enter a title"},
	"Branch":  {field: "branch", message: "Please select a branch"},
	"Subject": {field: "subject", message: "Please enter a subject"},
}

// uploadService implements the upload workflow
type uploadService struct {
	repo     MaterialWriter
	storage  BlobStorage
	subjects SubjectInvalidator
	validate *validator.Validate
	mode     string
	logger   *zap.Logger
	now      func() time.Time
}

// NewUploadService creates a new upload service.
// mode is one of config.ConsistencyBestEffort or config.ConsistencyCompensating.
func NewUploadService(repo MaterialWriter, blobs BlobStorage, subjects SubjectInvalidator, mode string, logger *zap.Logger) *uploadService {
	return &uploadService{
		repo:     repo,
		storage:  blobs,
		subjects: subjects,
		validate: validator.New(),
		mode:     mode,
		logger:   logger,
		now:      time.Now,
	}
}

// ValidateForm checks the upload preconditions in order: file, title, branch, subject.
// The first violation is returned as a *models.ValidationError.
func (s *uploadService) ValidateForm(form *models.UploadForm) error {
	if form == nil {
		return models.NewValidationError("file", validationMessages["File"].message)
	}

	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return fmt.Errorf("failed to validate upload form: %w", err)
	}

	// Errors are reported in field declaration order
	first := fieldErrors[0]
	if msg, ok := validationMessages[first.Field()]; ok {
		return models.NewValidationError(msg.field, msg.message)
	}
	return models.NewValidationError(first.Field(), "is required")
}

// Upload stores the selected file and inserts its material record for the identity.
//
// A blob failure aborts before any record is written. A record failure leaves the blob
// orphaned in best-effort mode and removes it in compensating mode.
func (s *uploadService) Upload(ctx context.Context, identity *models.Identity, form *models.UploadForm) (*models.Material, error) {
	if err := s.ValidateForm(form); err != nil {
		return nil, err
	}

	if identity == nil || identity.ID == "" {
		return nil, errors.Join(models.ErrAuth, errors.New("sign in to upload materials"))
	}

	file := form.File
	fileName := storage.GenerateFileName(storage.FileExtension(file.Name, file.ContentType), s.now())
	objectPath := storage.ObjectPath(identity.ID, fileName)

	// 1. Upload to storage
	if err := s.storage.Upload(ctx, objectPath, file.Content, file.Size, file.ContentType); err != nil {
		s.logger.Error("failed to upload file", zap.String("path", objectPath), zap.Error(err))
		metrics.UploadsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, errors.Join(models.ErrUpload, fmt.Errorf("failed to store file: %w", err))
	}

	// 2. Resolve public URL
	publicURL := s.storage.PublicURL(objectPath)

	// 3. Insert into database
	college := form.CollegeDetails
	material := &models.Material{
		Title:          form.Title,
		Description:    &college,
		FileURL:        publicURL,
		UserID:         identity.ID,
		Subject:        form.Subject,
		Branch:         form.Branch,
		Semester:       form.Semester,
		Module:         form.Module,
		CollegeDetails: form.CollegeDetails,
		UploaderName:   form.UploaderName,
	}

	if err := s.repo.Create(ctx, material); err != nil {
		s.logger.Error("failed to save material", zap.String("path", objectPath), zap.Error(err))
		s.handleOrphan(ctx, objectPath)
		metrics.UploadsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, errors.Join(models.ErrUpload, fmt.Errorf("failed to save material: %w", err))
	}

	if s.subjects != nil {
		s.subjects.InvalidateSubjects(form.Branch)
	}

	metrics.UploadsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	s.logger.Info("material uploaded",
		zap.String("id", material.ID),
		zap.String("user_id", identity.ID),
		zap.String("path", objectPath),
	)

	return material, nil
}

// handleOrphan deals with a stored blob whose record could not be inserted
func (s *uploadService) handleOrphan(ctx context.Context, objectPath string) {
	if s.mode != config.ConsistencyCompensating {
		metrics.OrphanedBlobsTotal.Inc()
		s.logger.Warn("stored file left without material record", zap.String("path", objectPath))
		return
	}

	if err := s.storage.Remove(ctx, objectPath); err != nil {
		metrics.OrphanedBlobsTotal.Inc()
		s.logger.Error("failed to remove file after insert failure", zap.String("path", objectPath), zap.Error(err))
	}
}
