// Package web parses web service flags and launches the service.
package web

import (
	"context"
	"flag"
	"fmt"

	"github.com/louisbranch/inkwell/internal/feed/backend"
	entrypoint "github.com/louisbranch/inkwell/internal/platform/cmd"
	"github.com/louisbranch/inkwell/internal/services/web"
	"go.uber.org/zap"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr string `env:"INKWELL_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	Language string `env:"INKWELL_WEB_LANGUAGE"`
	Feed     backend.Config
	Runtime  entrypoint.Runtime
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.Language, "lang", cfg.Language, "Force every page into one locale")
	fs.StringVar(&cfg.Feed.Kind, "feed-backend", cfg.Feed.Kind, "Feed backend: rpc, grpc, or archive")
	fs.StringVar(&cfg.Feed.RPCURL, "rpc-url", cfg.Feed.RPCURL, "JSON-RPC node URL")
	fs.Float64Var(&cfg.Feed.RPCRPS, "rpc-rps", cfg.Feed.RPCRPS, "JSON-RPC requests per second; zero disables limiting")
	fs.StringVar(&cfg.Feed.GRPCAddr, "grpc-addr", cfg.Feed.GRPCAddr, "Feed gRPC service address")
	fs.StringVar(&cfg.Feed.ArchivePath, "archive-path", cfg.Feed.ArchivePath, "SQLite archive path")
	fs.StringVar(&cfg.Feed.RedisAddr, "redis-addr", cfg.Feed.RedisAddr, "Redis address for the feed cache")
	fs.DurationVar(&cfg.Feed.CacheTTL, "cache-ttl", cfg.Feed.CacheTTL, "Feed cache TTL; zero disables caching")
	fs.StringVar(&cfg.Runtime.Log.Level, "log-level", cfg.Runtime.Log.Level, "Log level")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web service and blocks until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, cfg.Runtime, func(ctx context.Context, logger *zap.Logger) error {
		feeds, err := backend.Open(ctx, cfg.Feed, logger)
		if err != nil {
			return fmt.Errorf("init feed backend: %w", err)
		}
		defer func() {
			if err := feeds.Close(); err != nil {
				logger.Warn("close feed backend", zap.Error(err))
			}
		}()

		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr: cfg.HTTPAddr,
			Fetcher:  feeds.Fetcher,
			Logger:   logger,
			Language: cfg.Language,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		logger.Info("feed backend ready", zap.String("backend", cfg.Feed.Kind))
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
