package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/notespath/backend/internal/config"
	"github.com/notespath/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockMaterialRepository is a mock implementation of MaterialRepository
type mockMaterialRepository struct {
	material   *models.Material
	getErr     error
	deleteErr  error
	deletedIDs []string
}

func (m *mockMaterialRepository) GetByID(ctx context.Context, id string) (*models.Material, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.material, nil
}

func (m *mockMaterialRepository) DeleteByID(ctx context.Context, id string) error {
	m.deletedIDs = append(m.deletedIDs, id)
	return m.deleteErr
}

func ownedMaterial() *models.Material {
	return &models.Material{
		ID:      "m1",
		Title:   "DSA notes",
		FileURL: "http://localhost:8080/storage/v1/object/public/materials/user-1/abc_1.pdf",
		UserID:  "user-1",
	}
}

func TestMaterialService_FetchOne(t *testing.T) {
	tests := []struct {
		name         string
		repo         *mockMaterialRepository
		expectedKind error
	}{
		{name: "success", repo: &mockMaterialRepository{material: ownedMaterial()}},
		{name: "not found", repo: &mockMaterialRepository{getErr: fmt.Errorf("failed to get material by id: %w", models.ErrNotFound)}, expectedKind: models.ErrNotFound},
		{name: "retrieval failure", repo: &mockMaterialRepository{getErr: errors.New("timeout")}, expectedKind: models.ErrRetrieval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMaterialService(tt.repo, &mockBlobStorage{}, config.ConsistencyBestEffort, zap.NewNop())

			material, err := svc.FetchOne(context.Background(), "m1")

			if tt.expectedKind != nil {
				assert.ErrorIs(t, err, tt.expectedKind)
				assert.Nil(t, material)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "m1", material.ID)
		})
	}
}

func TestMaterialService_FetchOne_NotFoundIsNotRetrievalError(t *testing.T) {
	repo := &mockMaterialRepository{getErr: models.ErrNotFound}
	svc := NewMaterialService(repo, &mockBlobStorage{}, config.ConsistencyBestEffort, zap.NewNop())

	_, err := svc.FetchOne(context.Background(), "m1")

	assert.False(t, errors.Is(err, models.ErrRetrieval))
}

func TestMaterialService_Delete(t *testing.T) {
	tests := []struct {
		name            string
		identity        *models.Identity
		material        func() *models.Material
		repo            *mockMaterialRepository
		blobs           *mockBlobStorage
		mode            string
		expectedKind    error
		expectedRemoved []string
		expectedDeleted []string
	}{
		{
			name:            "success removes blob then record",
			identity:        testIdentity,
			material:        ownedMaterial,
			repo:            &mockMaterialRepository{},
			blobs:           &mockBlobStorage{},
			mode:            config.ConsistencyBestEffort,
			expectedRemoved: []string{"user-1/abc_1.pdf"},
			expectedDeleted: []string{"m1"},
		},
		{
			name:         "not signed in",
			identity:     nil,
			material:     ownedMaterial,
			repo:         &mockMaterialRepository{},
			blobs:        &mockBlobStorage{},
			mode:         config.ConsistencyBestEffort,
			expectedKind: models.ErrAuth,
		},
		{
			name:         "not the owner",
			identity:     &models.Identity{ID: "someone-else"},
			material:     ownedMaterial,
			repo:         &mockMaterialRepository{},
			blobs:        &mockBlobStorage{},
			mode:         config.ConsistencyBestEffort,
			expectedKind: models.ErrForbidden,
		},
		{
			name:     "unparseable url makes no calls",
			identity: testIdentity,
			material: func() *models.Material {
				m := ownedMaterial()
				m.FileURL = "not a url"
				return m
			},
			repo:         &mockMaterialRepository{},
			blobs:        &mockBlobStorage{},
			mode:         config.ConsistencyBestEffort,
			expectedKind: models.ErrDelete,
		},
		{
			name:            "blob failure still deletes record in best-effort mode",
			identity:        testIdentity,
			material:        ownedMaterial,
			repo:            &mockMaterialRepository{},
			blobs:           &mockBlobStorage{removeErr: errors.New("storage down")},
			mode:            config.ConsistencyBestEffort,
			expectedKind:    models.ErrDelete,
			expectedRemoved: []string{"user-1/abc_1.pdf"},
			expectedDeleted: []string{"m1"},
		},
		{
			name:            "blob failure keeps record in compensating mode",
			identity:        testIdentity,
			material:        ownedMaterial,
			repo:            &mockMaterialRepository{},
			blobs:           &mockBlobStorage{removeErr: errors.New("storage down")},
			mode:            config.ConsistencyCompensating,
			expectedKind:    models.ErrDelete,
			expectedRemoved: []string{"user-1/abc_1.pdf"},
		},
		{
			name:            "record failure",
			identity:        testIdentity,
			material:        ownedMaterial,
			repo:            &mockMaterialRepository{deleteErr: errors.New("locked")},
			blobs:           &mockBlobStorage{},
			mode:            config.ConsistencyBestEffort,
			expectedKind:    models.ErrDelete,
			expectedRemoved: []string{"user-1/abc_1.pdf"},
			expectedDeleted: []string{"m1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMaterialService(tt.repo, tt.blobs, tt.mode, zap.NewNop())

			err := svc.Delete(context.Background(), tt.identity, tt.material())

			if tt.expectedKind != nil {
				assert.ErrorIs(t, err, tt.expectedKind)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedRemoved, tt.blobs.removedPaths)
			assert.Equal(t, tt.expectedDeleted, tt.repo.deletedIDs)
		})
	}
}

func TestShareLinks(t *testing.T) {
	tests := []struct {
		name         string
		material     *models.Material
		expectedText string
	}{
		{
			name:         "with title",
			material:     &models.Material{Title: "DSA & Algo", FileURL: "https://cdn.example.com/u1/a.pdf"},
			expectedText: "Check out this note: DSA & Algo - https://cdn.example.com/u1/a.pdf",
		},
		{
			name:         "empty title falls back to Note",
			material:     &models.Material{FileURL: "https://cdn.example.com/u1/a.pdf"},
			expectedText: "Check out this note: Note - https://cdn.example.com/u1/a.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links := ShareLinks(tt.material)

			assert.Equal(t, tt.material.FileURL, links.CopyLink)
			require.True(t, strings.HasPrefix(links.WhatsAppLink, "https://wa.me/?text="))
			assert.NotContains(t, links.WhatsAppLink, " ")

			parsed, err := url.Parse(links.WhatsAppLink)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedText, parsed.Query().Get("text"))
		})
	}
}
