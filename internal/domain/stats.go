package domain

// SkipReason classifies why a directory entry did not become a feed item.
type SkipReason string

const (
	SkipBadName        SkipReason = "bad_name"
	SkipNoExtension    SkipReason = "no_extension"
	SkipNotRegular     SkipReason = "not_regular"
	SkipUnreadable     SkipReason = "unreadable"
	SkipNoCreationTime SkipReason = "no_creation_time"
)

// BuildStats summarizes one directory scan.
type BuildStats struct {
	Listed   int
	Included int
	Skipped  map[SkipReason]int
}

// Skip records a skipped entry.
func (s *BuildStats) Skip(reason SkipReason) {
	if s.Skipped == nil {
		s.Skipped = make(map[SkipReason]int)
	}
	s.Skipped[reason]++
}

// SkippedTotal returns the number of skipped entries across all reasons.
func (s BuildStats) SkippedTotal() int {
	n := 0
	for _, c := range s.Skipped {
		n += c
	}
	return n
}
