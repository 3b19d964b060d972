package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/dirfeed/internal/app"
	"github.com/bft-labs/dirfeed/internal/cliconfig"
	"github.com/bft-labs/dirfeed/pkg/log"
)

const helpDescription = `
Publish a folder of episodes as an RSS feed.

The directory is scanned once at startup. Every file with an extension becomes
an item, newest (by creation time) first. Every TCP connection then receives the
same pre-rendered feed as an HTTP/1.1 response, whatever it asked for.

Configuration is read from $HOME/.dirfeed/config.toml (or --config), then
DIRFEED_* environment variables, then flags; later sources win.
`

var exampleUsage = strings.TrimSpace(`
  dirfeed --filepath ./episodes --domain https://media.example.com --title "My Show"
  dirfeed -f /srv/audio -b 0.0.0.0 -p 8000 --watch
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func newRootCommand() *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "dirfeed",
		Short:         "Serve a directory of media files as an RSS feed",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			// An explicit --config must exist; the default one is optional.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}
			if cfgFile != "" && (cfgPath != "" || cliconfig.FileExists(cfgFile)) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			level, _ := cfg.Level()
			zl := cliconfig.NewLogger(cmd.ErrOrStderr(), level)
			zl.Debug().Interface("config", cfg).Msg("configuration")

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a := app.New(app.Config{
				Dir:          cfg.FilePath,
				Title:        cfg.Title,
				Domain:       cfg.Domain,
				Subtitle:     cfg.Subdesc,
				Addr:         cfg.Addr(),
				MaxConns:     cfg.MaxConns,
				WriteTimeout: cfg.WriteTimeout,
				Watch:        cfg.Watch,
			},
				app.WithLogger(log.NewZerologAdapterWithLogger(zl)),
				app.WithStdout(cmd.OutOrStdout()),
			)
			return a.Run(ctx)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.dirfeed/config.toml)")

	root.Flags().StringVarP(&cfg.FilePath, "filepath", "f", cfg.FilePath, "path to episodes")
	root.Flags().StringVarP(&cfg.Title, "title", "t", cfg.Title, "title of feed")
	root.Flags().StringVarP(&cfg.Domain, "domain", "d", cfg.Domain, "domain to feed")
	root.Flags().StringVarP(&cfg.Subdesc, "subdesc", "s", cfg.Subdesc, "description")
	root.Flags().StringVarP(&cfg.Bind, "bind", "b", cfg.Bind, "address to bind")
	root.Flags().IntVarP(&cfg.Port, "port", "p", cfg.Port, "port")

	root.Flags().IntVar(&cfg.MaxConns, "max-conns", cfg.MaxConns, "maximum connections handled at once (0 = unlimited)")
	root.Flags().DurationVar(&cfg.WriteTimeout, "write-timeout", cfg.WriteTimeout, "per-connection write deadline (0 = none)")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "log a warning when the directory changes after startup")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	return root
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		l := cliconfig.Logger()
		l.Error().Err(err).Msg("dirfeed")
		os.Exit(1)
	}
}
