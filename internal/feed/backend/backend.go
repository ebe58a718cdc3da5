// Package backend selects and assembles the feed fetcher a command serves
// from: JSON-RPC node, gRPC feed service, or the local SQLite archive, with
// an optional cache in front.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/louisbranch/inkwell/internal/feed"
	"github.com/louisbranch/inkwell/internal/feed/archive"
	"github.com/louisbranch/inkwell/internal/feed/cache"
	"github.com/louisbranch/inkwell/internal/feed/feedgrpc"
	"github.com/louisbranch/inkwell/internal/feed/steemrpc"
	platformgrpc "github.com/louisbranch/inkwell/internal/platform/grpc"
	"github.com/louisbranch/inkwell/internal/platform/timeouts"
	"go.uber.org/zap"
)

// Backend kinds.
const (
	KindRPC     = "rpc"
	KindGRPC    = "grpc"
	KindArchive = "archive"
)

// Config selects a feed backend. It is embedded by command configs.
type Config struct {
	Kind        string        `env:"INKWELL_FEED_BACKEND" envDefault:"rpc"`
	RPCURL      string        `env:"INKWELL_FEED_RPC_URL" envDefault:"https://api.steemit.com"`
	RPCRPS      float64       `env:"INKWELL_FEED_RPC_RPS" envDefault:"10"`
	GRPCAddr    string        `env:"INKWELL_FEED_GRPC_ADDR" envDefault:"localhost:8090"`
	ArchivePath string        `env:"INKWELL_ARCHIVE_PATH" envDefault:"inkwell.db"`
	RedisAddr   string        `env:"INKWELL_REDIS_ADDR"`
	CacheTTL    time.Duration `env:"INKWELL_FEED_CACHE_TTL" envDefault:"30s"`
}

// Backend is an assembled fetcher plus the resources it holds open.
type Backend struct {
	Fetcher feed.Fetcher
	closers []io.Closer
}

// Close releases backend resources in reverse open order.
func (b *Backend) Close() error {
	if b == nil {
		return nil
	}
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}

// Open builds the fetcher described by cfg. A zero CacheTTL disables caching;
// otherwise results are cached in Redis when RedisAddr is set and in process
// memory when it is not.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (*Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Backend{}
	source, err := b.openSource(ctx, cfg, logger)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	b.Fetcher = source
	if cfg.CacheTTL <= 0 {
		return b, nil
	}

	var store cache.Store
	if addr := strings.TrimSpace(cfg.RedisAddr); addr != "" {
		redisStore, err := cache.Dial(ctx, addr)
		if err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("open feed cache: %w", err)
		}
		b.closers = append(b.closers, redisStore)
		store = redisStore
	} else {
		store = cache.NewMemoryStore()
	}
	cached, err := cache.NewFetcher(source, store, cache.WithTTL(cfg.CacheTTL), cache.WithLogger(logger.Named("cache")))
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	b.Fetcher = cached
	return b, nil
}

func (b *Backend) openSource(ctx context.Context, cfg Config, logger *zap.Logger) (feed.Fetcher, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case KindRPC, "":
		client, err := steemrpc.New(cfg.RPCURL,
			steemrpc.WithRateLimit(cfg.RPCRPS, 5),
			steemrpc.WithLogger(logger.Named("steemrpc")),
		)
		if err != nil {
			return nil, fmt.Errorf("open rpc feed: %w", err)
		}
		return client, nil
	case KindGRPC:
		conn, err := platformgrpc.DialWithHealth(ctx, nil, cfg.GRPCAddr, timeouts.GRPCDial, logger.Named("grpc"),
			platformgrpc.DefaultClientDialOptions()...)
		if err != nil {
			return nil, fmt.Errorf("open grpc feed: %w", err)
		}
		b.closers = append(b.closers, conn)
		return feedgrpc.NewGateway(conn), nil
	case KindArchive:
		store, err := archive.Open(cfg.ArchivePath)
		if err != nil {
			return nil, fmt.Errorf("open archive feed: %w", err)
		}
		b.closers = append(b.closers, store)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown feed backend %q", cfg.Kind)
	}
}
