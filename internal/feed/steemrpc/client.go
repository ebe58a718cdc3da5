// Package steemrpc fetches user feeds from a condenser-compatible JSON-RPC
// node.
package steemrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/louisbranch/inkwell/internal/feed"
	"github.com/louisbranch/inkwell/internal/platform/otel"
	"github.com/louisbranch/inkwell/internal/platform/timeouts"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 4 << 20

var sortMethods = map[string]string{
	feed.SortBlog:     "condenser_api.get_discussions_by_blog",
	feed.SortFeed:     "condenser_api.get_discussions_by_feed",
	feed.SortCreated:  "condenser_api.get_discussions_by_created",
	feed.SortTrending: "condenser_api.get_discussions_by_trending",
}

// Client calls a JSON-RPC node over HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
	tracer     trace.Tracer
	nextID     atomic.Uint64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithRateLimit caps outbound calls at rps with the given burst. rps <= 0
// disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(cl *Client) {
		if rps <= 0 {
			cl.limiter = nil
			return
		}
		cl.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cl *Client) {
		if logger != nil {
			cl.logger = logger
		}
	}
}

// New returns a client for endpoint.
func New(endpoint string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("rpc endpoint is required")
	}
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeouts.FeedRequest},
		limiter:    rate.NewLimiter(rate.Limit(10), 5),
		logger:     zap.NewNop(),
		tracer:     otel.Tracer("feed/steemrpc"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type discussionQuery struct {
	Tag   string `json:"tag"`
	Limit int    `json:"limit"`
}

// FetchUserFeed implements feed.Fetcher.
func (c *Client) FetchUserFeed(ctx context.Context, q feed.Query) (feed.Result, error) {
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		return feed.Result{}, err
	}
	method := sortMethods[q.SortBy]

	ctx, span := c.tracer.Start(ctx, "steemrpc.FetchUserFeed", trace.WithAttributes(
		attribute.String("rpc.method", method),
		attribute.String("feed.username", q.Username),
		attribute.Int("feed.limit", q.Limit),
	))
	defer span.End()

	result, err := c.call(ctx, method, discussionQuery{Tag: q.Username, Limit: q.Limit})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return feed.Result{}, err
	}
	posts := decodePosts(result)
	span.SetAttributes(attribute.Int("feed.posts", len(posts)))
	return feed.Result{Posts: posts}, nil
}

func (c *Client) call(ctx context.Context, method string, params ...any) (gjson.Result, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return gjson.Result{}, fmt.Errorf("%w: rate limit: %w", feed.ErrUnavailable, err)
		}
	}
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return gjson.Result{}, fmt.Errorf("encode %s request: %w", method, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %s: %w", feed.ErrUnavailable, method, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: read %s response: %w", feed.ErrUnavailable, method, err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("rpc node returned non-200",
			zap.String("method", method),
			zap.Int("status", resp.StatusCode),
		)
		return gjson.Result{}, fmt.Errorf("%w: %s: http status %d", feed.ErrUnavailable, method, resp.StatusCode)
	}
	if !gjson.ValidBytes(payload) {
		return gjson.Result{}, fmt.Errorf("%w: %s: response is not valid JSON", feed.ErrUnavailable, method)
	}
	if rpcErr := gjson.GetBytes(payload, "error"); rpcErr.Exists() && rpcErr.Type != gjson.Null {
		msg := strings.TrimSpace(rpcErr.Get("message").String())
		if msg == "" {
			msg = rpcErr.Raw
		}
		return gjson.Result{}, fmt.Errorf("%w: %s: %s", feed.ErrUnavailable, method, msg)
	}
	return gjson.GetBytes(payload, "result"), nil
}

// decodePosts keeps every object entry of an array result. Anything that is
// not an array yields an empty, non-nil list.
func decodePosts(result gjson.Result) []feed.Post {
	posts := []feed.Post{}
	if !result.IsArray() {
		return posts
	}
	result.ForEach(func(_, value gjson.Result) bool {
		if !value.IsObject() {
			return true
		}
		posts = append(posts, feed.Post{
			ID:       value.Get("id").Int(),
			Title:    value.Get("title").String(),
			Author:   value.Get("author").String(),
			Category: value.Get("category").String(),
			Permlink: value.Get("permlink").String(),
			Children: int(value.Get("children").Int()),
		})
		return true
	})
	return posts
}
