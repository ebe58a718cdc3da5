// Package feed defines the post records and the fetcher contract shared by
// every feed backend.
package feed

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Sort orders understood by feed backends.
const (
	SortBlog     = "blog"
	SortCreated  = "created"
	SortTrending = "trending"
	SortFeed     = "feed"
)

// MaxLimit bounds how many posts one query may request.
const MaxLimit = 100

var (
	// ErrInvalidQuery reports a query a backend refuses to run.
	ErrInvalidQuery = errors.New("invalid feed query")
	// ErrUnavailable reports a backend that could not answer.
	ErrUnavailable = errors.New("feed backend unavailable")
	// ErrNotFound reports an unknown author.
	ErrNotFound = errors.New("feed author not found")
)

// Post is one feed entry. Permlink is unique within a single feed response.
type Post struct {
	ID       int64  `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Author   string `json:"author" yaml:"author"`
	Category string `json:"category" yaml:"category"`
	Permlink string `json:"permlink" yaml:"permlink"`
	// Children is the post's comment count.
	Children int `json:"children" yaml:"children"`
}

// Query selects a user's feed.
type Query struct {
	SortBy   string
	Username string
	Limit    int
}

// Result is a fetched feed. Posts is empty, never an error, when the backend
// answered without a usable post list.
type Result struct {
	Posts []Post
}

// Fetcher loads user feeds.
type Fetcher interface {
	FetchUserFeed(ctx context.Context, q Query) (Result, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, q Query) (Result, error)

// FetchUserFeed implements Fetcher.
func (fn FetcherFunc) FetchUserFeed(ctx context.Context, q Query) (Result, error) {
	return fn(ctx, q)
}

// Normalize trims the query and fills the default sort.
func (q Query) Normalize() Query {
	q.SortBy = strings.ToLower(strings.TrimSpace(q.SortBy))
	if q.SortBy == "" {
		q.SortBy = SortBlog
	}
	q.Username = strings.TrimSpace(q.Username)
	return q
}

// Validate reports whether q can be sent to a backend.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Username) == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidQuery)
	}
	if q.Limit <= 0 || q.Limit > MaxLimit {
		return fmt.Errorf("%w: limit %d out of range 1..%d", ErrInvalidQuery, q.Limit, MaxLimit)
	}
	switch strings.ToLower(strings.TrimSpace(q.SortBy)) {
	case SortBlog, SortCreated, SortTrending, SortFeed:
		return nil
	default:
		return fmt.Errorf("%w: unknown sort %q", ErrInvalidQuery, q.SortBy)
	}
}

// PostPath returns the canonical post address /{category}/@{author}/{permlink}.
func PostPath(category, author, permlink string) string {
	return "/" + url.PathEscape(strings.TrimSpace(category)) +
		"/@" + url.PathEscape(strings.TrimSpace(author)) +
		"/" + url.PathEscape(strings.TrimSpace(permlink))
}

// ProfilePath returns the author profile address /@{author}.
func ProfilePath(author string) string {
	return "/@" + url.PathEscape(strings.TrimSpace(author))
}

// Path returns the post's canonical address.
func (p Post) Path() string {
	return PostPath(p.Category, p.Author, p.Permlink)
}

// CommentsPath returns the address of the post's comment section.
func (p Post) CommentsPath() string {
	return p.Path() + "#comments"
}
