// Package app wires the stores, blob storage and workflows from configuration
package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/notespath/backend/internal/auth"
	"github.com/notespath/backend/internal/config"
	"github.com/notespath/backend/internal/database"
	"github.com/notespath/backend/internal/gateway"
	"github.com/notespath/backend/internal/models"
	"github.com/notespath/backend/internal/repositories"
	"github.com/notespath/backend/internal/services"
	"github.com/notespath/backend/internal/storage"
	"go.uber.org/zap"
)

// CatalogService retrieves materials and filter suggestions
type CatalogService interface {
	FetchAll(ctx context.Context) ([]models.Material, error)
	Subjects(ctx context.Context, branch string) []string
	Options() models.Options
}

// MaterialService reads, deletes and shares single materials
type MaterialService interface {
	FetchOne(ctx context.Context, id string) (*models.Material, error)
	Delete(ctx context.Context, identity *models.Identity, material *models.Material) error
	Share(material *models.Material) models.ShareLinks
}

// UploadService runs the upload workflow
type UploadService interface {
	Upload(ctx context.Context, identity *models.Identity, form *models.UploadForm) (*models.Material, error)
}

// LocalFiles gives read access to blobs kept on the local filesystem
type LocalFiles interface {
	Bucket() string
	Open(objectPath string) (*os.File, error)
}

// App holds the wired workflows
type App struct {
	DB        *sql.DB
	Auth      gateway.AuthProvider
	Catalog   CatalogService
	Materials MaterialService
	Uploads   UploadService
	// Files is nil unless blobs are stored locally
	Files LocalFiles
}

// New connects to the database, runs migrations and wires the workflows
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	db, err := database.Connect(cfg.Database.Driver, cfg.DSN())
	if err != nil {
		return nil, err
	}

	if err := database.RunMigrations(db, cfg.Database.Driver); err != nil {
		db.Close()
		return nil, err
	}

	blobs, files, err := newBlobStorage(ctx, cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	tokenGenerator := auth.NewTokenGenerator(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger)
	userTokenRepo := repositories.NewUserTokenRepository(db)
	materialRepo := repositories.NewMaterialRepository(db, logger)

	// Initialize services
	catalog := services.NewCatalogService(materialRepo, cfg.SubjectCache.Size, cfg.SubjectCache.TTL, logger)

	return &App{
		DB:        db,
		Auth:      services.NewAuthService(userRepo, userTokenRepo, tokenGenerator, logger),
		Catalog:   catalog,
		Materials: services.NewMaterialService(materialRepo, blobs, cfg.ConsistencyMode, logger),
		Uploads:   services.NewUploadService(materialRepo, blobs, catalog, cfg.ConsistencyMode, logger),
		Files:     files,
	}, nil
}

// Close releases the database connection
func (a *App) Close() error {
	return a.DB.Close()
}

// newBlobStorage creates the configured blob backend. files is set only for the local backend.
func newBlobStorage(ctx context.Context, cfg *config.Config) (services.BlobStorage, LocalFiles, error) {
	switch cfg.Blob.Driver {
	case config.BlobDriverLocal:
		local := storage.NewLocalStorage(cfg.Blob.BasePath, cfg.Blob.Bucket, cfg.Blob.PublicBaseURL)
		return local, local, nil
	case config.BlobDriverMinIO:
		minioStorage, err := storage.NewMinIOStorage(ctx, cfg.MinIO, cfg.Blob.Bucket)
		if err != nil {
			return nil, nil, err
		}
		return minioStorage, nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported blob driver: %s", cfg.Blob.Driver)
	}
}
