// Package cache memoizes feed fetches in a TTL store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/inkwell/internal/feed"
	"github.com/louisbranch/inkwell/internal/platform/timeouts"
	"go.uber.org/zap"
)

// DefaultTTL is used when a Fetcher is built with a non-positive TTL.
const DefaultTTL = 30 * time.Second

// Store is a byte-oriented TTL cache.
type Store interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Fetcher serves repeated queries from a Store and delegates misses.
type Fetcher struct {
	next   feed.Fetcher
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithTTL sets how long fetched feeds stay cached.
func WithTTL(ttl time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if ttl > 0 {
			f.ttl = ttl
		}
	}
}

// WithLogger sets the logger used for cache faults.
func WithLogger(logger *zap.Logger) FetcherOption {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFetcher wraps next with store.
func NewFetcher(next feed.Fetcher, store Store, opts ...FetcherOption) (*Fetcher, error) {
	if next == nil {
		return nil, errors.New("next fetcher is required")
	}
	if store == nil {
		return nil, errors.New("cache store is required")
	}
	f := &Fetcher{next: next, store: store, ttl: DefaultTTL, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// FetchUserFeed implements feed.Fetcher. Cache faults are logged and never
// fail the fetch; backend errors are never cached.
func (f *Fetcher) FetchUserFeed(ctx context.Context, q feed.Query) (feed.Result, error) {
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		return feed.Result{}, err
	}
	// The backend sees the same username the key is built from.
	q.Username = strings.ToLower(q.Username)
	key := Key(q)

	if posts, ok := f.lookup(ctx, key); ok {
		return feed.Result{Posts: posts}, nil
	}

	res, err := f.next.FetchUserFeed(ctx, q)
	if err != nil {
		return feed.Result{}, err
	}
	if res.Posts == nil {
		res.Posts = []feed.Post{}
	}
	f.save(ctx, key, res.Posts)
	return res, nil
}

func (f *Fetcher) lookup(ctx context.Context, key string) ([]feed.Post, bool) {
	opCtx, cancel := context.WithTimeout(ctx, timeouts.CacheOp)
	defer cancel()

	raw, ok, err := f.store.Get(opCtx, key)
	if err != nil {
		f.logger.Warn("feed cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	posts := []feed.Post{}
	if err := json.Unmarshal(raw, &posts); err != nil {
		f.logger.Warn("feed cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return posts, true
}

func (f *Fetcher) save(ctx context.Context, key string, posts []feed.Post) {
	raw, err := json.Marshal(posts)
	if err != nil {
		f.logger.Warn("encode feed cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	opCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.CacheOp)
	defer cancel()
	if err := f.store.Set(opCtx, key, raw, f.ttl); err != nil {
		f.logger.Warn("feed cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Key returns the cache key for q. Usernames are case-insensitive.
func Key(q feed.Query) string {
	q = q.Normalize()
	return fmt.Sprintf("feed:%s:%s:%s", q.SortBy, strings.ToLower(q.Username), strconv.Itoa(q.Limit))
}
