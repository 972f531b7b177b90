// Package imagestore keeps uploaded storyboard images on local disk.
package imagestore

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/GIVandez/plot-twister/internal/domain"
	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultMaxBytes is the upload limit used when none is configured.
const DefaultMaxBytes = 10 << 20

// ErrTooLarge is returned by Save when the upload exceeds the size limit.
var ErrTooLarge = errors.New("image exceeds upload size limit")

var extensions = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
	"webp": ".webp",
	"bmp":  ".bmp",
}

// Store writes images under one directory.
type Store struct {
	dir      string
	maxBytes int64
}

// New returns a Store rooted at dir. maxBytes <= 0 selects DefaultMaxBytes.
func New(dir string, maxBytes int64) *Store {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Store{dir: dir, maxBytes: maxBytes}
}

// Dir returns the upload directory.
func (s *Store) Dir() string { return s.dir }

// MaxBytes returns the upload size limit.
func (s *Store) MaxBytes() int64 { return s.maxBytes }

// Saved describes a stored upload.
type Saved struct {
	Path   string
	Format string
	Width  int
	Height int
	Size   int64
}

// Save validates r as a supported image and stores it as
// frame_<frameID>_<uuid><ext>.
func (s *Store) Save(frameID string, r io.Reader) (*Saved, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%d byte limit: %w", s.maxBytes, ErrTooLarge)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, domain.NewValidationError("unsupported image format")
	}
	ext, ok := extensions[format]
	if !ok {
		return nil, domain.NewValidationError(fmt.Sprintf("unsupported image format %q", format))
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	path := filepath.Join(s.dir, fmt.Sprintf("frame_%s_%s%s", frameID, uuid.New().String(), ext))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("writing image: %w", err)
	}

	return &Saved{
		Path:   path,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Size:   int64(len(data)),
	}, nil
}

// Owns reports whether path points inside the upload directory.
func (s *Store) Owns(path string) bool {
	if path == "" {
		return false
	}
	dir, err := filepath.Abs(s.dir)
	if err != nil {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		return false
	}
	return rel != "." && !strings.HasPrefix(rel, "..")
}

// Exists reports whether path is a stored image that is still on disk.
func (s *Store) Exists(path string) bool {
	if !s.Owns(path) {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Remove deletes a stored image. Paths outside the upload directory and
// files that are already gone are ignored.
func (s *Store) Remove(path string) error {
	if !s.Owns(path) {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing image: %w", err)
	}
	return nil
}

// PlaceholderPath is the pic_path given to frames created without an image.
// It never resolves to a stored file.
func PlaceholderPath() string {
	return fmt.Sprintf("/uploads/frame_%s.jpg", uuid.New().String())
}
