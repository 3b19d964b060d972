// Package app wires the feed builder, the responder and the optional
// directory watcher into one process.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	fsadapter "github.com/bft-labs/dirfeed/internal/adapters/fs"
	"github.com/bft-labs/dirfeed/internal/domain"
	"github.com/bft-labs/dirfeed/internal/feed"
	"github.com/bft-labs/dirfeed/internal/ports"
	"github.com/bft-labs/dirfeed/internal/responder"
	"github.com/bft-labs/dirfeed/internal/watch"
	"github.com/bft-labs/dirfeed/pkg/log"
)

// Config contains everything needed to build and serve a feed.
type Config struct {
	// Dir is the directory whose immediate children become feed items.
	Dir string

	Title    string
	Domain   string
	Subtitle string

	// Addr is the host:port to listen on.
	Addr string

	// MaxConns caps concurrently handled connections (0 = unlimited).
	MaxConns int

	// WriteTimeout bounds each response write (0 = none).
	WriteTimeout time.Duration

	// Watch logs a warning when Dir changes after the feed was built.
	Watch bool
}

// App builds the feed once and serves it until its context ends.
type App struct {
	cfg    Config
	dir    ports.Directory
	logger log.Logger
	stdout io.Writer
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithStdout sets where the startup announcement is written.
func WithStdout(w io.Writer) Option {
	return func(a *App) {
		if w != nil {
			a.stdout = w
		}
	}
}

// WithDirectory replaces the host file system as the item source.
func WithDirectory(d ports.Directory) Option {
	return func(a *App) {
		if d != nil {
			a.dir = d
		}
	}
}

// New creates an App.
func New(cfg Config, opts ...Option) *App {
	a := &App{
		cfg:    cfg,
		dir:    fsadapter.NewDirectory(cfg.Dir),
		logger: log.NewNoopLogger(),
		stdout: os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Build scans the directory and renders the feed document.
func (a *App) Build(ctx context.Context) ([]byte, domain.BuildStats, error) {
	b := feed.NewBuilder(a.dir, feed.Options{
		Title:    a.cfg.Title,
		Domain:   a.cfg.Domain,
		Subtitle: a.cfg.Subtitle,
	}, a.logger)

	start := time.Now()
	doc, stats, err := b.BuildDocument(ctx)
	if err != nil {
		return nil, stats, err
	}

	fields := []log.Field{
		log.String("dir", a.dir.Path()),
		log.Int("listed", stats.Listed),
		log.Int("items", stats.Included),
		log.Int("skipped", stats.SkippedTotal()),
		log.Int("bytes", len(doc)),
		log.Duration("took", time.Since(start)),
	}
	if len(stats.Skipped) > 0 {
		fields = append(fields, log.Any("skip_reasons", stats.Skipped))
	}
	a.logger.Info("feed built", fields...)
	return doc, stats, nil
}

// Run builds the feed, binds the listener and serves until ctx is done.
// Build and bind failures are returned before any connection is accepted.
func (a *App) Run(ctx context.Context) error {
	doc, _, err := a.Build(ctx)
	if err != nil {
		return fmt.Errorf("build feed: %w", err)
	}

	srv := responder.New(doc,
		responder.WithLogger(a.logger),
		responder.WithMaxConns(a.cfg.MaxConns),
		responder.WithWriteTimeout(a.cfg.WriteTimeout),
	)

	ln, err := responder.Listen(ctx, a.cfg.Addr)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Listening on: %s\n", ln.Addr())

	if a.cfg.Watch {
		n, err := watch.New(a.cfg.Dir, watch.DefaultDebounce, a.logger)
		if err != nil {
			a.logger.Warn("directory watch disabled", log.Err(err))
		} else {
			go func() {
				if err := n.Run(ctx); err != nil {
					a.logger.Error("directory watch stopped", log.Err(err))
				}
			}()
		}
	}

	return srv.Serve(ctx, ln)
}
