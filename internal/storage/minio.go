package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/notespath/backend/internal/config"
)

// minioStorage stores blobs in a MinIO or S3 compatible bucket
type minioStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinIOStorage connects to MinIO and makes sure the bucket exists
func NewMinIOStorage(ctx context.Context, cfg config.MinIOConfig, bucket string) (*minioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return newMinIOStorage(client, bucket, publicEndpoint(cfg)), nil
}

func newMinIOStorage(client *minio.Client, bucket, publicURL string) *minioStorage {
	return &minioStorage{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// publicEndpoint returns the base URL objects are publicly reachable at
func publicEndpoint(cfg config.MinIOConfig) string {
	if cfg.PublicURL != "" {
		return cfg.PublicURL
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + cfg.Endpoint
}

// Bucket returns the bucket the storage writes to
func (s *minioStorage) Bucket() string {
	return s.bucket
}

// Upload puts the content at the object path
func (s *minioStorage) Upload(ctx context.Context, objectPath string, content io.Reader, size int64, contentType string) error {
	if size <= 0 {
		size = -1
	}
	_, err := s.client.PutObject(ctx, s.bucket, objectPath, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file to MinIO: %w", err)
	}
	return nil
}

// Remove deletes the objects from the bucket
func (s *minioStorage) Remove(ctx context.Context, objectPaths ...string) error {
	var errs []error
	for _, objectPath := range objectPaths {
		if err := s.client.RemoveObject(ctx, s.bucket, objectPath, minio.RemoveObjectOptions{}); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove %s from MinIO: %w", objectPath, err))
		}
	}
	return errors.Join(errs...)
}

// PublicURL returns the URL the object is served at
func (s *minioStorage) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, strings.TrimLeft(objectPath, "/"))
}
