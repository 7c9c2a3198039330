// Package imagestore keeps menu images on an afero filesystem.
package imagestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/Apurer/food-order-api/internal/domains/menus/domain"
	"github.com/Apurer/food-order-api/internal/domains/menus/ports"
)

var _ ports.ImageStore = (*Store)(nil)

// Store writes images into a single flat base directory.
type Store struct {
	fs      afero.Fs
	baseDir string
}

// New roots the store at baseDir on fs, creating the directory when missing.
func New(fs afero.Fs, baseDir string) (*Store, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	baseDir = filepath.Clean(strings.TrimSpace(baseDir))
	if baseDir == "" || baseDir == "." {
		return nil, fmt.Errorf("image base directory is required")
	}
	if err := fs.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}
	return &Store{fs: fs, baseDir: baseDir}, nil
}

// Save writes content under the base name of filename, replacing any file of the same name.
func (s *Store) Save(_ context.Context, filename string, content io.Reader) (string, error) {
	name, err := sanitize(filename)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.baseDir, name)
	f, err := s.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, content); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// Open streams a stored image. Paths outside the base directory are rejected.
func (s *Store) Open(_ context.Context, path string) (io.ReadCloser, error) {
	resolved, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	return s.fs.Open(resolved)
}

func (s *Store) DefaultPath() string {
	return filepath.Join(s.baseDir, domain.DefaultImageName)
}

func (s *Store) List(_ context.Context) ([]ports.ImageFile, error) {
	entries, err := afero.ReadDir(s.fs, s.baseDir)
	if err != nil {
		return nil, err
	}
	files := make([]ports.ImageFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, ports.ImageFile{
			Path:    filepath.Join(s.baseDir, entry.Name()),
			ModTime: entry.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func (s *Store) Remove(_ context.Context, path string) error {
	resolved, err := s.resolve(path)
	if err != nil {
		return err
	}
	return s.fs.Remove(resolved)
}

func (s *Store) resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ports.ErrInvalidImagePath
	}
	cleaned := filepath.Clean(path)
	if filepath.Dir(cleaned) != s.baseDir {
		return "", fmt.Errorf("%w: %s", ports.ErrInvalidImagePath, path)
	}
	return cleaned, nil
}

// sanitize keeps only the final element of an uploaded name so uploads cannot traverse directories.
func sanitize(filename string) (string, error) {
	name := filepath.Base(filepath.Clean("/" + strings.ReplaceAll(filename, "\\", "/")))
	if name == "/" || name == "." || name == ".." || strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: %q", ports.ErrInvalidImagePath, filename)
	}
	return name, nil
}
