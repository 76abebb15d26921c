package gateway

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/notespath/backend/internal/models"
)

// FileStore keeps the session in a TOML file readable only by the owner
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the file at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultSessionFile returns the session file location under the user config directory
func DefaultSessionFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "notespath", "session.toml"), nil
}

func (s *FileStore) Load(ctx context.Context) (*models.Session, error) {
	var session models.Session
	if _, err := toml.DecodeFile(s.path, &session); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	if session.AccessToken == "" && session.RefreshToken == "" {
		return nil, nil
	}
	return &session, nil
}

func (s *FileStore) Save(ctx context.Context, session *models.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp := s.path + ".tmp"
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create session file: %w", err)
	}

	if err := toml.NewEncoder(file).Encode(session); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return os.Rename(tmp, s.path)
}

func (s *FileStore) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
