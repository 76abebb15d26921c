package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/notespath/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockUploadService is a mock implementation of UploadService
type mockUploadService struct {
	err      error
	form     *models.UploadForm
	content  []byte
	identity *models.Identity
}

func (m *mockUploadService) Upload(ctx context.Context, identity *models.Identity, form *models.UploadForm) (*models.Material, error) {
	m.form = form
	m.identity = identity
	if form.File != nil {
		m.content, _ = io.ReadAll(form.File.Content)
	}
	if m.err != nil {
		return nil, m.err
	}
	return &models.Material{
		ID:      "new-id",
		Title:   form.Title,
		FileURL: "https://files.example.com/materials/" + identity.ID + "/x_1.pdf",
		UserID:  identity.ID,
		Branch:  form.Branch,
		Subject: form.Subject,
	}, nil
}

// multipartBody builds an upload request body. An empty fileName omits the file part.
func multipartBody(t *testing.T, fields map[string]string, fileName, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if fileName != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func uploadRequest(router http.Handler, body io.Reader, contentType, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/materials", body)
	req.Header.Set("Content-Type", contentType)
	if userID != "" {
		req.Header.Set("Authorization", "Bearer token-"+userID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUploadHandler_Upload(t *testing.T) {
	fullFields := map[string]string{
		"title":           "Graph Notes",
		"branch":          "Computer Science",
		"subject":         "Algorithms",
		"semester":        "Semester 3",
		"module":          "Module 1",
		"college_details": "MIT",
		"uploader_name":   "Ada",
	}

	t.Run("success", func(t *testing.T) {
		svc := &mockUploadService{}
		router := newTestRouter(&mockAuthProvider{}, NewUploadHandler(svc, zap.NewNop()))
		body, ct := multipartBody(t, fullFields, "notes.pdf", "application/pdf", []byte("%PDF-1.4"))

		rec := uploadRequest(router, body, ct, "user-1")

		require.Equal(t, http.StatusCreated, rec.Code)
		var view models.MaterialView
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
		assert.Equal(t, "new-id", view.ID)
		assert.True(t, view.CanDelete)

		require.NotNil(t, svc.form.File)
		assert.Equal(t, "notes.pdf", svc.form.File.Name)
		assert.Equal(t, "application/pdf", svc.form.File.ContentType)
		assert.Equal(t, int64(8), svc.form.File.Size)
		assert.Equal(t, []byte("%PDF-1.4"), svc.content)
		assert.Equal(t, "MIT", svc.form.CollegeDetails)
		assert.Equal(t, "Ada", svc.form.UploaderName)
		assert.Equal(t, "Semester 3", svc.form.Semester)
		assert.Equal(t, "user-1", svc.identity.ID)
	})

	t.Run("no file passes nil file to validation", func(t *testing.T) {
		svc := &mockUploadService{err: models.NewValidationError("file", "Please select a file")}
		router := newTestRouter(&mockAuthProvider{}, NewUploadHandler(svc, zap.NewNop()))
		body, ct := multipartBody(t, fullFields, "", "", nil)

		rec := uploadRequest(router, body, ct, "user-1")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, svc.form.File)
		assert.JSONEq(t, `{"error":"Please select a file","field":"file"}`, rec.Body.String())
	})

	t.Run("empty file counts as missing", func(t *testing.T) {
		svc := &mockUploadService{err: models.NewValidationError("file", "Please select a file")}
		router := newTestRouter(&mockAuthProvider{}, NewUploadHandler(svc, zap.NewNop()))
		body, ct := multipartBody(t, fullFields, "empty.pdf", "application/pdf", nil)

		rec := uploadRequest(router, body, ct, "user-1")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, svc.form.File)
	})

	t.Run("upload failure", func(t *testing.T) {
		svc := &mockUploadService{err: errors.Join(models.ErrUpload, errors.New("bucket missing"))}
		router := newTestRouter(&mockAuthProvider{}, NewUploadHandler(svc, zap.NewNop()))
		body, ct := multipartBody(t, fullFields, "notes.pdf", "application/pdf", []byte("x"))

		rec := uploadRequest(router, body, ct, "user-1")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"failed to upload material"}`, rec.Body.String())
	})

	t.Run("not multipart", func(t *testing.T) {
		svc := &mockUploadService{}
		router := newTestRouter(&mockAuthProvider{}, NewUploadHandler(svc, zap.NewNop()))

		rec := uploadRequest(router, strings.NewReader(`{"title":"x"}`), "application/json", "user-1")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, svc.form)
	})

	t.Run("requires session", func(t *testing.T) {
		svc := &mockUploadService{}
		router := newTestRouter(&mockAuthProvider{}, NewUploadHandler(svc, zap.NewNop()))
		body, ct := multipartBody(t, fullFields, "notes.pdf", "application/pdf", []byte("x"))

		rec := uploadRequest(router, body, ct, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, svc.form)
	})
}
