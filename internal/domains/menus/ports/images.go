package ports

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrInvalidImagePath is returned for paths that escape the image directory or carry no file name.
var ErrInvalidImagePath = errors.New("invalid image path")

// ImageFile describes one stored image.
type ImageFile struct {
	Path    string
	ModTime time.Time
}

// ImageStore keeps menu images under a configured base directory.
// Files are named after the uploaded file name; saving the same name overwrites.
type ImageStore interface {
	Save(ctx context.Context, filename string, content io.Reader) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	DefaultPath() string
	List(ctx context.Context) ([]ImageFile, error)
	Remove(ctx context.Context, path string) error
}
