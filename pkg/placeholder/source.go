package placeholder

import (
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/vango-dev/vimg/internal/errors"
)

// Source opens source images by key.
// Implement this interface to read from other storage backends.
type Source interface {
	// Open returns the image bytes for key. It returns an error matching
	// ErrNotFound when the key does not exist.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// CleanKey validates a placeholder key and returns it in canonical form:
// slash-separated, relative, with no "." or ".." elements.
func CleanKey(key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", errors.New("E023").WithDetail("empty key")
	}
	if strings.Contains(key, "\\") || strings.ContainsRune(key, 0) {
		return "", errors.New("E023").WithDetail(key)
	}
	clean := path.Clean(key)
	if clean != key || !fs.ValidPath(clean) {
		return "", errors.New("E023").WithDetail(key)
	}
	return clean, nil
}

// DirSource reads images from a directory. Keys are slash-separated paths
// relative to the directory and cannot escape it, symlinks included.
type DirSource struct {
	dir string
}

// NewDirSource creates a DirSource rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Open implements Source.
func (s *DirSource) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	key, err := CleanKey(key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.OpenInRoot(s.dir, key)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.New("E020").WithDetail(key).Wrap(err)
		}
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, errors.New("E020").WithDetail(key + " is a directory")
	}
	return f, nil
}
