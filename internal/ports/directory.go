package ports

import (
	"context"
	"time"
)

// DirEntry is one child of a scanned directory.
type DirEntry struct {
	Name string
}

// Directory is the source of feed items.
type Directory interface {
	// Path returns the directory location, for logging.
	Path() string

	// List returns the immediate children in the order the file system
	// reports them. The result is not sorted.
	List(ctx context.Context) ([]DirEntry, error)

	// Inspect resolves the named child and returns its creation time.
	// It fails with domain.ErrNotRegular for anything but a regular file,
	// domain.ErrNoCreationTime when no creation time is available, and any
	// other error when the file cannot be opened for reading.
	Inspect(ctx context.Context, name string) (time.Time, error)
}
