//go:build !linux && !darwin && !windows

package fs

import (
	"os"
	"time"

	"github.com/bft-labs/dirfeed/internal/domain"
)

func creationTime(_ string, _ os.FileInfo) (time.Time, error) {
	return time.Time{}, domain.ErrNoCreationTime
}
