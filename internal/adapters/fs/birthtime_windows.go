//go:build windows

package fs

import (
	"os"
	"syscall"
	"time"

	"github.com/bft-labs/dirfeed/internal/domain"
)

func creationTime(_ string, fi os.FileInfo) (time.Time, error) {
	d, ok := fi.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Time{}, domain.ErrNoCreationTime
	}
	return time.Unix(0, d.CreationTime.Nanoseconds()), nil
}
