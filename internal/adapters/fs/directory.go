package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bft-labs/dirfeed/internal/domain"
	"github.com/bft-labs/dirfeed/internal/ports"
)

// Directory implements ports.Directory on the host file system.
type Directory struct {
	dir string
}

// NewDirectory creates a Directory rooted at dir.
func NewDirectory(dir string) *Directory {
	return &Directory{dir: dir}
}

// Path returns the directory path.
func (d *Directory) Path() string {
	return d.dir
}

// List reads the directory without sorting so the result keeps the order the
// file system returns. os.ReadDir is avoided because it sorts by name.
func (d *Directory) List(ctx context.Context) ([]ports.DirEntry, error) {
	f, err := os.Open(d.dir)
	if err != nil {
		return nil, fmt.Errorf("open directory: %w", err)
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	entries := make([]ports.DirEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, ports.DirEntry{Name: name})
	}
	return entries, nil
}

// Inspect follows symlinks, requires a regular file that can be opened for
// reading, and returns its creation time.
func (d *Directory) Inspect(ctx context.Context, name string) (time.Time, error) {
	path := filepath.Join(d.dir, name)

	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	if !fi.Mode().IsRegular() {
		return time.Time{}, fmt.Errorf("%s: %w", name, domain.ErrNotRegular)
	}

	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	f.Close()

	created, err := creationTime(path, fi)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", name, err)
	}
	return created, nil
}
