//go:build linux

package fs

import (
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/bft-labs/dirfeed/internal/domain"
)

// creationTime asks statx(2) for the birth time. File systems that do not
// record it leave STATX_BTIME out of the returned mask.
func creationTime(path string, _ os.FileInfo) (time.Time, error) {
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT, unix.STATX_BTIME, &stx); err != nil {
		if err == unix.ENOSYS {
			return time.Time{}, domain.ErrNoCreationTime
		}
		return time.Time{}, err
	}
	if stx.Mask&unix.STATX_BTIME == 0 {
		return time.Time{}, domain.ErrNoCreationTime
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec)), nil
}
