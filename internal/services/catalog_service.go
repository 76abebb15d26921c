package services

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/notespath/backend/internal/metrics"
	"github.com/notespath/backend/internal/models"
	"go.uber.org/zap"
)

// CatalogRepository is the interface that wraps methods for reading the materials table
type CatalogRepository interface {
	// Method List retrieves every material ordered by creation time, newest first.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	List(ctx context.Context) ([]models.Material, error)
	// Method SubjectsByBranch retrieves the distinct subjects stored for a branch.
	//
	// "branch" parameter is the branch the subjects are looked up for.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	SubjectsByBranch(ctx context.Context, branch string) ([]string, error)
}

// catalogService implements catalog retrieval and subject suggestions
type catalogService struct {
	repo     CatalogRepository
	subjects *expirable.LRU[string, []string]
	logger   *zap.Logger
}

// NewCatalogService creates a new catalog service.
// Subject suggestions are cached per branch for at most cacheTTL.
func NewCatalogService(repo CatalogRepository, cacheSize int, cacheTTL time.Duration, logger *zap.Logger) *catalogService {
	if cacheSize <= 0 {
		cacheSize = 1
	}
	return &catalogService{
		repo:     repo,
		subjects: expirable.NewLRU[string, []string](cacheSize, nil, cacheTTL),
		logger:   logger,
	}
}

// FetchAll retrieves every material, newest first
func (s *catalogService) FetchAll(ctx context.Context) ([]models.Material, error) {
	materials, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("error fetching materials", zap.Error(err))
		return nil, errors.Join(models.ErrRetrieval, err)
	}
	return materials, nil
}

// Subjects returns the subject suggestions of a branch: the predefined subjects
// together with those already used by uploaded materials, sorted and without duplicates.
// When the store cannot be read the predefined subjects are still returned.
func (s *catalogService) Subjects(ctx context.Context, branch string) []string {
	if branch == "" {
		return []string{}
	}

	if cached, ok := s.subjects.Get(branch); ok {
		metrics.SubjectCacheHitsTotal.Inc()
		return slices.Clone(cached)
	}
	metrics.SubjectCacheMissesTotal.Inc()

	subjects := slices.Clone(models.PredefinedSubjects[branch])

	stored, err := s.repo.SubjectsByBranch(ctx, branch)
	if err != nil {
		s.logger.Warn("failed to fetch stored subjects", zap.String("branch", branch), zap.Error(err))
	} else {
		subjects = append(subjects, stored...)
	}

	slices.Sort(subjects)
	subjects = slices.Compact(subjects)
	if subjects == nil {
		subjects = []string{}
	}

	// Only complete results are cached
	if err == nil {
		s.subjects.Add(branch, subjects)
	}

	return slices.Clone(subjects)
}

// InvalidateSubjects drops the cached suggestions of a branch
func (s *catalogService) InvalidateSubjects(branch string) {
	s.subjects.Remove(branch)
}

// Options returns the values offered by the filter and upload dropdowns
func (s *catalogService) Options() models.Options {
	return models.Options{
		Branches:  slices.Clone(models.Branches),
		Semesters: slices.Clone(models.Semesters),
		Modules:   slices.Clone(models.Modules),
	}
}
