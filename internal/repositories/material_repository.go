package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/notespath/backend/internal/models"
	"go.uber.org/zap"
)

const materialColumns = `id, title, description, file_url, user_id, created_at,
	subject, branch, semester, module, college_details, uploader_name`

// materialRepository implements the materials row store
type materialRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMaterialRepository creates a new material repository
func NewMaterialRepository(db *sql.DB, logger *zap.Logger) *materialRepository {
	return &materialRepository{
		db:     db,
		logger: logger,
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanMaterial reads a material row selected with materialColumns
func scanMaterial(row rowScanner) (*models.Material, error) {
	var m models.Material
	var description, subject, branch, semester, module, collegeDetails, uploader sql.NullString

	if err := row.Scan(
		&m.ID,
		&m.Title,
		&description,
		&m.FileURL,
		&m.UserID,
		&m.CreatedAt,
		&subject,
		&branch,
		&semester,
		&module,
		&collegeDetails,
		&uploader,
	); err != nil {
		return nil, err
	}

	if description.Valid {
		m.Description = &description.String
	}
	m.Subject = subject.String
	m.Branch = branch.String
	m.Semester = semester.String
	m.Module = module.String
	m.CollegeDetails = collegeDetails.String
	m.UploaderName = uploader.String

	return &m, nil
}

// nullString stores empty optional fields as NULL
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// List retrieves every material, newest first
func (r *materialRepository) List(ctx context.Context) ([]models.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query materials", zap.Error(err))
		return nil, fmt.Errorf("failed to query materials: %w", err)
	}
	defer rows.Close()

	materials := []models.Material{}
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			r.logger.Error("failed to scan material", zap.Error(err))
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		materials = append(materials, *m)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating materials", zap.Error(err))
		return nil, fmt.Errorf("error iterating materials: %w", err)
	}

	return materials, nil
}

// GetByID retrieves a material by ID. A missing row is reported as models.ErrNotFound.
func (r *materialRepository) GetByID(ctx context.Context, id string) (*models.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = ? LIMIT 1`

	m, err := scanMaterial(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get material by id: %w", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get material by id", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to get material by id: %w", err)
	}

	return m, nil
}

// Create inserts a new material. ID and CreatedAt are assigned here.
func (r *materialRepository) Create(ctx context.Context, material *models.Material) error {
	query := `
		INSERT INTO materials (` + materialColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	id := uuid.New().String()
	createdAt := time.Now().UTC()

	var description sql.NullString
	if material.Description != nil {
		description = sql.NullString{String: *material.Description, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		id,
		material.Title,
		description,
		material.FileURL,
		material.UserID,
		createdAt,
		nullString(material.Subject),
		nullString(material.Branch),
		nullString(material.Semester),
		nullString(material.Module),
		nullString(material.CollegeDetails),
		nullString(material.UploaderName),
	)
	if err != nil {
		r.logger.Error("failed to create material", zap.Error(err))
		return fmt.Errorf("failed to create material: %w", err)
	}

	material.ID = id
	material.CreatedAt = createdAt
	return nil
}

// DeleteByID deletes a material by ID. Deleting a missing row is not an error.
func (r *materialRepository) DeleteByID(ctx context.Context, id string) error {
	query := `DELETE FROM materials WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("failed to delete material", zap.Error(err), zap.String("id", id))
		return fmt.Errorf("failed to delete material: %w", err)
	}

	return nil
}

// SubjectsByBranch retrieves the distinct non-empty subjects stored for a branch
func (r *materialRepository) SubjectsByBranch(ctx context.Context, branch string) ([]string, error) {
	query := `
		SELECT DISTINCT subject
		FROM materials
		WHERE branch = ? AND subject IS NOT NULL AND subject <> ''
	`

	rows, err := r.db.QueryContext(ctx, query, branch)
	if err != nil {
		return nil, fmt.Errorf("failed to query subjects: %w", err)
	}
	defer rows.Close()

	var subjects []string
	for rows.Next() {
		var subject string
		if err := rows.Scan(&subject); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, subject)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subjects: %w", err)
	}

	return subjects, nil
}
