//go:build darwin

package fs

import (
	"os"
	"syscall"
	"time"

	"github.com/bft-labs/dirfeed/internal/domain"
)

func creationTime(_ string, fi os.FileInfo) (time.Time, error) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, domain.ErrNoCreationTime
	}
	return time.Unix(st.Birthtimespec.Unix()), nil
}
