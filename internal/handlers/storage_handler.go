package handlers

import (
	"errors"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BlobFiles gives read access to locally stored blobs
type BlobFiles interface {
	// Method Bucket returns the bucket the blobs belong to.
	Bucket() string
	// Method Open opens the blob at the object path.
	Open(objectPath string) (*os.File, error)
}

// StorageHandler serves public URLs of the local blob storage
type StorageHandler struct {
	BaseHandler
	files BlobFiles
}

// NewStorageHandler creates a new storage handler
func NewStorageHandler(files BlobFiles, logger *zap.Logger) *StorageHandler {
	return &StorageHandler{
		BaseHandler: BaseHandler{logger: logger},
		files:       files,
	}
}

// RegisterRoutes registers the public object route at the router root
func (h *StorageHandler) RegisterRoutes(r chi.Router) {
	r.Get("/storage/v1/object/public/{bucket}/*", h.ServeObject)
}

// ServeObject handles GET /storage/v1/object/public/{bucket}/*
func (h *StorageHandler) ServeObject(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "bucket") != h.files.Bucket() {
		h.respondError(w, http.StatusNotFound, "file not found")
		return
	}

	objectPath := chi.URLParam(r, "*")
	if objectPath == "" || strings.Contains(objectPath, "..") {
		h.respondError(w, http.StatusBadRequest, "invalid path")
		return
	}

	file, err := h.files.Open(objectPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			h.respondError(w, http.StatusNotFound, "file not found")
			return
		}
		h.logger.Error("failed to open file", zap.String("path", objectPath), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to open file")
		return
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		h.logger.Error("failed to get file info", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get file info")
		return
	}
	if fileInfo.IsDir() {
		h.respondError(w, http.StatusNotFound, "file not found")
		return
	}

	// Content type is detected from the extension, then from the content
	http.ServeContent(w, r, path.Base(objectPath), fileInfo.ModTime(), file)
}
