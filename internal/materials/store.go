package materials

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"studyquiz/internal/models"
)

// Object is an opened material ready to be streamed.
type Object struct {
	Name string
	Size int64
	Body io.ReadCloser
}

// Store is a flat collection of study PDFs.
type Store interface {
	// List returns every entry named <topic>_<level>.pdf. A missing
	// collection yields an empty list.
	List(ctx context.Context) ([]models.MaterialEntry, error)
	// Open returns ErrInvalidFilename for names failing ValidFilename and
	// ErrNotFound when the file does not exist.
	Open(ctx context.Context, filename string) (*Object, error)
}

// DirStore serves materials from a local directory without recursing.
type DirStore struct {
	dir string
}

// NewDirStore returns a store over dir. The directory need not exist.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// EnsureDir creates the directory when it does not exist yet.
func (s *DirStore) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create materials directory %s: %w", s.dir, err)
	}
	return nil
}

// Dir returns the directory the store reads from.
func (s *DirStore) Dir() string {
	return s.dir
}

// List reads the top level of the directory. Only regular files are listed.
func (s *DirStore) List(ctx context.Context) ([]models.MaterialEntry, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.MaterialEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read materials directory: %w", err)
	}

	out := make([]models.MaterialEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		if entry, ok := ParseFilename(e.Name()); ok {
			out = append(out, entry)
		}
	}
	return out, nil
}

// Open opens filename inside the directory. Symlinks and other non-regular
// files are reported as ErrNotFound.
func (s *DirStore) Open(ctx context.Context, filename string) (*Object, error) {
	if !ValidFilename(filename) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFilename, filename)
	}
	path := filepath.Join(s.dir, filename)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open material %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat material %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return &Object{Name: filename, Size: info.Size(), Body: f}, nil
}
