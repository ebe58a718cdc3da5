// Package inkctl implements the operator command line: previewing
// recommendations for a page and seeding the local post archive.
package inkctl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/louisbranch/inkwell/internal/feed"
	"github.com/louisbranch/inkwell/internal/feed/backend"
	entrypoint "github.com/louisbranch/inkwell/internal/platform/cmd"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Config holds inkctl configuration loaded from the environment.
type Config struct {
	Feed    backend.Config
	Runtime entrypoint.Runtime
}

// Options injects collaborators into the command tree.
type Options struct {
	Out io.Writer
	// Fetcher replaces the configured feed backend when set.
	Fetcher feed.Fetcher
}

// ParseConfig loads Config from the environment.
func ParseConfig() (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewRootCommand builds the inkctl command tree around cfg.
func NewRootCommand(cfg Config, opts Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	app := &cli{cfg: cfg, opts: opts}

	root := &cobra.Command{
		Use:           "inkctl",
		Short:         "Operate the inkwell blog service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(opts.Out)
	flags := root.PersistentFlags()
	flags.StringVar(&app.cfg.Feed.Kind, "feed-backend", cfg.Feed.Kind, "feed backend: rpc, grpc, or archive")
	flags.StringVar(&app.cfg.Feed.RPCURL, "rpc-url", cfg.Feed.RPCURL, "JSON-RPC node URL")
	flags.StringVar(&app.cfg.Feed.GRPCAddr, "grpc-addr", cfg.Feed.GRPCAddr, "feed gRPC service address")
	flags.StringVar(&app.cfg.Feed.ArchivePath, "archive-path", cfg.Feed.ArchivePath, "SQLite archive path")
	flags.StringVar(&app.cfg.Runtime.Log.Level, "log-level", cfg.Runtime.Log.Level, "log level")

	root.AddCommand(app.recommendCommand())
	root.AddCommand(app.archiveCommand())
	return root
}

// Execute runs inkctl with args against the environment configuration.
func Execute(ctx context.Context, args []string) error {
	cfg, err := ParseConfig()
	if err != nil {
		return err
	}
	root := NewRootCommand(cfg, Options{})
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

type cli struct {
	cfg  Config
	opts Options
}

// run executes fn with the service logger and tracing in place.
func (c *cli) run(ctx context.Context, fn func(context.Context, *zap.Logger) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceInkctl, c.cfg.Runtime, fn)
}

// fetcher returns the injected fetcher or opens the configured backend.
func (c *cli) fetcher(ctx context.Context, logger *zap.Logger) (feed.Fetcher, func() error, error) {
	if c.opts.Fetcher != nil {
		return c.opts.Fetcher, func() error { return nil }, nil
	}
	feedCfg := c.cfg.Feed
	// One-shot commands gain nothing from a cache.
	feedCfg.CacheTTL = 0
	b, err := backend.Open(ctx, feedCfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open feed backend: %w", err)
	}
	return b.Fetcher, b.Close, nil
}

var errUsage = errors.New("invalid arguments")
