package domain

import "errors"

// Domain errors. They are returned by the builder and the file system adapter
// and can be checked with errors.Is.
var (
	// ErrNoExtension is returned for files whose name carries no extension.
	ErrNoExtension = errors.New("dirfeed: file has no extension")

	// ErrNotRegular is returned for directory entries that are not regular files.
	ErrNotRegular = errors.New("dirfeed: not a regular file")

	// ErrNoCreationTime is returned when the file system cannot report a creation time.
	ErrNoCreationTime = errors.New("dirfeed: creation time unavailable")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("dirfeed: invalid configuration")
)
