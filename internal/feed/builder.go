// Package feed turns a directory snapshot into a rendered RSS document.
package feed

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/bft-labs/dirfeed/internal/domain"
	"github.com/bft-labs/dirfeed/internal/ports"
	"github.com/bft-labs/dirfeed/pkg/log"
)

// Options holds the channel metadata applied to a build.
type Options struct {
	Title    string
	Domain   string
	Subtitle string
}

// Builder scans a directory once and assembles a domain.Feed.
type Builder struct {
	dir    ports.Directory
	opts   Options
	logger log.Logger
}

// NewBuilder creates a Builder. A nil logger discards diagnostics.
func NewBuilder(dir ports.Directory, opts Options, logger log.Logger) *Builder {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Builder{dir: dir, opts: opts, logger: logger}
}

// Build lists the directory and returns the ordered feed. Only a failure to
// list the directory is returned as an error; entries that cannot be turned
// into items are skipped and counted in the returned stats.
func (b *Builder) Build(ctx context.Context) (domain.Feed, domain.BuildStats, error) {
	var stats domain.BuildStats

	listing, err := b.dir.List(ctx)
	if err != nil {
		return domain.Feed{}, stats, fmt.Errorf("list %s: %w", b.dir.Path(), err)
	}
	stats.Listed = len(listing)

	items := make([]domain.Entry, 0, len(listing))
	for index, de := range listing {
		entry, reason, err := b.extract(ctx, index, de)
		if err != nil {
			stats.Skip(reason)
			b.logger.Debug("skipping entry",
				log.String("name", de.Name),
				log.String("reason", string(reason)),
				log.Err(err),
			)
			continue
		}
		items = append(items, entry)
	}
	stats.Included = len(items)

	return domain.NewFeed(b.opts.Title, b.opts.Domain, b.opts.Subtitle, items), stats, nil
}

func (b *Builder) extract(ctx context.Context, index int, de ports.DirEntry) (domain.Entry, domain.SkipReason, error) {
	if de.Name == "" || !utf8.ValidString(de.Name) {
		return domain.Entry{}, domain.SkipBadName, fmt.Errorf("%q: name is not valid UTF-8", de.Name)
	}
	if domain.Extension(de.Name) == "" {
		return domain.Entry{}, domain.SkipNoExtension, fmt.Errorf("%s: %w", de.Name, domain.ErrNoExtension)
	}

	created, err := b.dir.Inspect(ctx, de.Name)
	if err != nil {
		return domain.Entry{}, classify(err), err
	}

	entry, err := domain.NewEntry(domain.FileInfo{
		Name:    de.Name,
		Index:   index,
		Created: created,
	}, b.opts.Domain, b.opts.Subtitle)
	if err != nil {
		return domain.Entry{}, classify(err), err
	}
	return entry, "", nil
}

func classify(err error) domain.SkipReason {
	switch {
	case errors.Is(err, domain.ErrNotRegular):
		return domain.SkipNotRegular
	case errors.Is(err, domain.ErrNoCreationTime):
		return domain.SkipNoCreationTime
	case errors.Is(err, domain.ErrNoExtension):
		return domain.SkipNoExtension
	default:
		return domain.SkipUnreadable
	}
}

// BuildDocument builds the feed and renders it. Any error is fatal to startup.
func (b *Builder) BuildDocument(ctx context.Context) ([]byte, domain.BuildStats, error) {
	f, stats, err := b.Build(ctx)
	if err != nil {
		return nil, stats, err
	}
	doc, err := Render(f)
	if err != nil {
		return nil, stats, err
	}
	return doc, stats, nil
}
