// Package storage provides blob storage backends for material files
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// PublicPathPrefix is the URL path under which local blobs are served
const PublicPathPrefix = "/storage/v1/object/public"

// localStorage stores blobs on the local filesystem under basePath/bucket
type localStorage struct {
	basePath      string
	bucket        string
	publicBaseURL string
}

// NewLocalStorage creates a new localStorage instance
func NewLocalStorage(basePath, bucket, publicBaseURL string) *localStorage {
	return &localStorage{
		basePath:      basePath,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Bucket returns the bucket served by the storage
func (s *localStorage) Bucket() string {
	return s.bucket
}

// resolvePath maps an object path to a file path, rejecting paths that escape the bucket
func (s *localStorage) resolvePath(objectPath string) (string, error) {
	cleaned := filepath.Clean("/" + filepath.FromSlash(objectPath))
	if cleaned == string(filepath.Separator) {
		return "", fmt.Errorf("invalid object path %q", objectPath)
	}
	return filepath.Join(s.basePath, s.bucket, cleaned), nil
}

// Upload writes the content to the object path
func (s *localStorage) Upload(ctx context.Context, objectPath string, content io.Reader, size int64, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath, err := s.resolvePath(objectPath)
	if err != nil {
		return err
	}

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(file, content); err != nil {
		file.Close()
		os.Remove(fullPath)
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(fullPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	return nil
}

// Remove deletes the objects. Objects that do not exist are skipped.
func (s *localStorage) Remove(ctx context.Context, objectPaths ...string) error {
	var errs []error
	for _, objectPath := range objectPaths {
		fullPath, err := s.resolvePath(objectPath)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", objectPath, err))
		}
	}
	return errors.Join(errs...)
}

// PublicURL returns the URL the object is served at
func (s *localStorage) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s%s/%s/%s", s.publicBaseURL, PublicPathPrefix, s.bucket, strings.TrimLeft(objectPath, "/"))
}

// Open opens an object for reading
func (s *localStorage) Open(objectPath string) (*os.File, error) {
	fullPath, err := s.resolvePath(objectPath)
	if err != nil {
		return nil, err
	}
	return os.Open(fullPath)
}
