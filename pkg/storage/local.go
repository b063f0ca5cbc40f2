// Package storage provides the file backends submission artifacts are kept in.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// ErrFileNotFound indicates the referenced file does not exist in the backend.
var ErrFileNotFound = errors.New("file not found")

// Local keeps files on the process's own disk under a single uploads
// directory, served statically at /uploads.
type Local struct {
	dir    string
	logger zerolog.Logger
}

// NewLocal ensures the uploads directory exists and returns the backend.
func NewLocal(dir string, logger zerolog.Logger) (*Local, error) {
	if dir == "" {
		dir = "./uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &Local{
		dir:    dir,
		logger: logger.With().Str("component", "local_storage").Logger(),
	}, nil
}

// Dir returns the directory files are written to, for static serving.
func (l *Local) Dir() string {
	return l.dir
}

// Store writes the file and returns its public /uploads URL.
func (l *Local) Store(_ context.Context, name string, reader io.Reader) (string, error) {
	name = filepath.Base(name)

	target, err := os.Create(filepath.Join(l.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer target.Close()

	if _, err := io.Copy(target, reader); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	url := "/uploads/" + name
	l.logger.Debug().Str("file_url", url).Msg("file written")

	return url, nil
}

// Delete removes the file referenced by a /uploads URL.
func (l *Local) Delete(_ context.Context, fileURL string) error {
	name := filepath.Base(strings.TrimPrefix(fileURL, "/uploads/"))
	if name == "" || name == "." || name == "/" {
		return ErrFileNotFound
	}

	if err := os.Remove(filepath.Join(l.dir, name)); err != nil {
		if os.IsNotExist(err) {
			return ErrFileNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	l.logger.Debug().Str("file_url", fileURL).Msg("file deleted")

	return nil
}
