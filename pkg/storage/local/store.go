package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/electrostorehq/backend/pkg/errors"
)

var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

// Store keeps uploaded images on the local filesystem under a base directory.
type Store struct {
	base string
}

// New returns a Store rooted at base. The directory is created lazily on Save.
func New(base string) *Store {
	if base == "" {
		base = "."
	}
	return &Store{base: base}
}

// Save streams the upload to disk under dir with a random name, keeping the
// original extension. Uploads outside the extension allow-list are rejected.
func (s *Store) Save(ctx context.Context, dir, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", errors.New(errors.CodeValidation, fmt.Sprintf("file type %q is not allowed", ext)).
			WithDetails(map[string]any{"allowed": []string{".png", ".jpg", ".jpeg"}})
	}

	target := filepath.Join(s.base, filepath.Clean(dir))
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("creating image directory: %w", err)
	}

	name := uuid.NewString() + ext
	f, err := os.Create(filepath.Join(target, name))
	if err != nil {
		return "", fmt.Errorf("creating image file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("writing image file: %w", err)
	}
	return name, nil
}

// Open returns the stored object for serving.
func (s *Store) Open(ctx context.Context, dir, name string) (io.ReadCloser, error) {
	clean := filepath.Base(name)
	f, err := os.Open(filepath.Join(s.base, filepath.Clean(dir), clean))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeNotFound, "image not found")
		}
		return nil, fmt.Errorf("opening image file: %w", err)
	}
	return f, nil
}

// Remove deletes the stored object. Missing files are not an error.
func (s *Store) Remove(ctx context.Context, dir, name string) error {
	clean := filepath.Base(name)
	err := os.Remove(filepath.Join(s.base, filepath.Clean(dir), clean))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing image file: %w", err)
	}
	return nil
}
