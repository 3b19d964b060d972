package domain

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is a single feed item built from one file.
type Entry struct {
	// Title is the file name without its final extension.
	Title string

	// Link is the configured domain joined with the file name.
	Link string

	// Description embeds the raw listing index and the feed subtitle.
	Description string

	// GUID is a name-based UUID derived from Link.
	GUID string

	// PublishedAt is Created in UTC.
	PublishedAt time.Time

	// Created is the file's creation timestamp. It is only used for ordering.
	Created time.Time
}

// FileInfo is the file system metadata an Entry is built from.
type FileInfo struct {
	// Name is the base name as listed in the directory.
	Name string

	// Index is the zero-based position in the unsorted directory listing.
	Index int

	// Created is the creation timestamp reported by the file system.
	Created time.Time
}

// Extension returns the final extension of name without the leading dot.
// Dot files without a further dot (".profile") and names ending in a dot have
// no extension.
func Extension(name string) string {
	ext := filepath.Ext(name)
	if ext == name || len(ext) <= 1 {
		return ""
	}
	return ext[1:]
}

// NewEntry builds an Entry for a file in a feed published under domain.
func NewEntry(fi FileInfo, domain, subtitle string) (Entry, error) {
	ext := Extension(fi.Name)
	if ext == "" {
		return Entry{}, fmt.Errorf("%s: %w", fi.Name, ErrNoExtension)
	}
	if fi.Created.IsZero() {
		return Entry{}, fmt.Errorf("%s: %w", fi.Name, ErrNoCreationTime)
	}

	link := fmt.Sprintf("%s/%s", domain, fi.Name)
	return Entry{
		Title:       strings.TrimSuffix(fi.Name, "."+ext),
		Link:        link,
		Description: fmt.Sprintf("File %d. %s", fi.Index, subtitle),
		GUID:        uuid.NewSHA1(uuid.NameSpaceURL, []byte(link)).String(),
		PublishedAt: fi.Created.UTC(),
		Created:     fi.Created,
	}, nil
}

// Feed is the channel published by dirfeed.
type Feed struct {
	Title       string
	Link        string
	Description string
	Items       []Entry
}

// NewFeed assembles a Feed and orders its items newest first.
// Items created at the same instant keep their relative order.
func NewFeed(title, link, description string, items []Entry) Feed {
	sorted := make([]Entry, len(items))
	copy(sorted, items)
	SortNewestFirst(sorted)
	return Feed{
		Title:       title,
		Link:        link,
		Description: description,
		Items:       sorted,
	}
}

// SortNewestFirst sorts entries by creation time, descending. The sort is stable.
func SortNewestFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Created.After(entries[j].Created)
	})
}
