// Package fs stores uploaded post images on the local filesystem under
// a fixed "posts/" prefix inside the media root.
package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const postsPrefix = "posts"

type Storage struct {
	rootPath string
}

func New(rootPath string) (*Storage, error) {
	p := filepath.Clean(rootPath)
	if err := os.MkdirAll(filepath.Join(p, postsPrefix), 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory %s: %w", p, err)
	}
	return &Storage{rootPath: p}, nil
}

// Root returns the media root directory, for the file server mount.
func (s *Storage) Root() string {
	return s.rootPath
}

// SaveImage writes the image under posts/ with a generated name and
// returns its media-relative path.
func (s *Storage) SaveImage(data io.Reader, ext string) (string, error) {
	filename := uuid.NewString() + filepath.Clean(ext)
	relativePath := filepath.Join(postsPrefix, filename)
	fullPath := filepath.Join(s.rootPath, relativePath)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, data); err != nil {
		os.Remove(fullPath) // best effort
		return "", fmt.Errorf("failed to write image data: %w", err)
	}

	return relativePath, nil
}

// Delete removes a stored file. A missing file is not an error.
func (s *Storage) Delete(relativePath string) error {
	fullPath := filepath.Join(s.rootPath, filepath.Clean(relativePath))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete media file: %w", err)
	}
	return nil
}
