package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/notespath/backend/internal/config"
	"github.com/notespath/backend/internal/metrics"
	"github.com/notespath/backend/internal/models"
	"github.com/notespath/backend/internal/storage"
	"go.uber.org/zap"
)

// MaterialRepository is the interface that wraps methods for single material access
type MaterialRepository interface {
	// Method GetByID retrieves a material by ID.
	//
	// If no material has such ID, an error matching models.ErrNotFound will be returned.
	GetByID(ctx context.Context, id string) (*models.Material, error)
	// Method DeleteByID deletes a material by ID.
	//
	// Deleting a material that does not exist is not an error.
	DeleteByID(ctx context.Context, id string) error
}

// BlobRemover removes stored material files
type BlobRemover interface {
	Remove(ctx context.Context, objectPaths ...string) error
}

// materialService implements the material detail and delete workflows
type materialService struct {
	repo    MaterialRepository
	storage BlobRemover
	mode    string
	logger  *zap.Logger
}

// NewMaterialService creates a new material service
func NewMaterialService(repo MaterialRepository, blobs BlobRemover, mode string, logger *zap.Logger) *materialService {
	return &materialService{
		repo:    repo,
		storage: blobs,
		mode:    mode,
		logger:  logger,
	}
}

// FetchOne retrieves exactly one material by ID
func (s *materialService) FetchOne(ctx context.Context, id string) (*models.Material, error) {
	material, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		s.logger.Error("error fetching material", zap.String("id", id), zap.Error(err))
		return nil, errors.Join(models.ErrRetrieval, err)
	}
	return material, nil
}

// Delete removes the stored file of the material and then its record.
// Only the owner may delete a material.
//
// In best-effort mode both steps are attempted independently and any failure is reported.
// In compensating mode the record is deleted only once the file is gone.
func (s *materialService) Delete(ctx context.Context, identity *models.Identity, material *models.Material) error {
	if identity == nil || identity.ID == "" {
		return errors.Join(models.ErrAuth, errors.New("sign in to delete materials"))
	}
	if !material.IsOwnedBy(identity.ID) {
		return models.ErrForbidden
	}

	objectPath, err := storage.ObjectPathFromURL(material.UserID, material.FileURL)
	if err != nil {
		metrics.DeletesTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return errors.Join(models.ErrDelete, err)
	}

	var errs []error

	removeErr := s.storage.Remove(ctx, objectPath)
	if removeErr != nil {
		s.logger.Error("failed to remove file", zap.String("path", objectPath), zap.Error(removeErr))
		errs = append(errs, fmt.Errorf("failed to remove file: %w", removeErr))
	}

	if removeErr == nil || s.mode != config.ConsistencyCompensating {
		if err := s.repo.DeleteByID(ctx, material.ID); err != nil {
			s.logger.Error("failed to delete material record", zap.String("id", material.ID), zap.Error(err))
			errs = append(errs, fmt.Errorf("failed to delete material record: %w", err))
		}
	}

	if len(errs) > 0 {
		metrics.DeletesTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return errors.Join(append([]error{models.ErrDelete}, errs...)...)
	}

	metrics.DeletesTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	s.logger.Info("material deleted", zap.String("id", material.ID), zap.String("user_id", identity.ID))
	return nil
}

// Share builds the ways of sharing a material
func (s *materialService) Share(material *models.Material) models.ShareLinks {
	return ShareLinks(material)
}

// ShareLinks returns the copy link and the WhatsApp share link of a material
func ShareLinks(material *models.Material) models.ShareLinks {
	title := material.Title
	if title == "" {
		title = "Note"
	}

	text := fmt.Sprintf("Check out this note: %s - %s", title, material.FileURL)

	return models.ShareLinks{
		CopyLink:     material.FileURL,
		WhatsAppLink: "https://wa.me/?text=" + escapeComponent(text),
	}
}

// escapeComponent percent-encodes a query value, spaces included
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
