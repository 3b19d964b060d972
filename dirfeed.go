// Package dirfeed publishes a directory of media files as an RSS feed.
//
// The directory is scanned once; the rendered document is then written to
// every TCP connection as a complete HTTP response.
//
// Example usage:
//
//	cfg := dirfeed.DefaultConfig()
//	cfg.Dir = "/srv/episodes"
//	cfg.Domain = "https://media.example.com"
//	if err := dirfeed.Run(ctx, cfg); err != nil {
//	    log.Fatal(err)
//	}
package dirfeed

import (
	"context"

	"github.com/bft-labs/dirfeed/internal/app"
	"github.com/bft-labs/dirfeed/internal/cliconfig"
	"github.com/bft-labs/dirfeed/pkg/log"
)

// Config holds the settings for building and serving a feed.
type Config = app.Config

// Logger is the structured logger accepted by Run and Build.
type Logger = log.Logger

// DefaultConfig returns a Config with the CLI defaults.
func DefaultConfig() Config {
	d := cliconfig.DefaultConfig()
	return Config{
		Dir:      d.FilePath,
		Title:    d.Title,
		Domain:   d.Domain,
		Subtitle: d.Subdesc,
		Addr:     d.Addr(),
	}
}

// Build scans cfg.Dir and returns the rendered RSS document.
func Build(ctx context.Context, cfg Config, logger Logger) ([]byte, error) {
	doc, _, err := app.New(cfg, app.WithLogger(logger)).Build(ctx)
	return doc, err
}

// Run builds the feed and serves it until ctx is cancelled.
func Run(ctx context.Context, cfg Config, logger Logger) error {
	return app.New(cfg, app.WithLogger(logger)).Run(ctx)
}
