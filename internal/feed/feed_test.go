package feed

import (
	"context"
	"errors"
	"testing"
)

func TestQueryNormalize(t *testing.T) {
	t.Parallel()

	got := Query{SortBy: "  BLOG ", Username: " alice ", Limit: 4}.Normalize()
	if got.SortBy != SortBlog || got.Username != "alice" || got.Limit != 4 {
		t.Fatalf("Normalize() = %+v", got)
	}
	if got := (Query{Username: "alice", Limit: 1}).Normalize(); got.SortBy != SortBlog {
		t.Fatalf("default sort = %q, want %q", got.SortBy, SortBlog)
	}
}

func TestQueryValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		query   Query
		wantErr bool
	}{
		{name: "blog", query: Query{SortBy: SortBlog, Username: "alice", Limit: 4}},
		{name: "trending", query: Query{SortBy: SortTrending, Username: "alice", Limit: 1}},
		{name: "missing user", query: Query{SortBy: SortBlog, Limit: 4}, wantErr: true},
		{name: "zero limit", query: Query{SortBy: SortBlog, Username: "alice"}, wantErr: true},
		{name: "limit too large", query: Query{SortBy: SortBlog, Username: "alice", Limit: MaxLimit + 1}, wantErr: true},
		{name: "unknown sort", query: Query{SortBy: "hot", Username: "alice", Limit: 4}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.query.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidQuery) {
					t.Fatalf("Validate() error = %v, want ErrInvalidQuery", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
		})
	}
}

func TestPostPaths(t *testing.T) {
	t.Parallel()

	post := Post{Category: "travel", Author: "alice", Permlink: "post-1"}
	if got := post.Path(); got != "/travel/@alice/post-1" {
		t.Fatalf("Path() = %q", got)
	}
	if got := post.CommentsPath(); got != "/travel/@alice/post-1#comments" {
		t.Fatalf("CommentsPath() = %q", got)
	}
	if got := ProfilePath("alice"); got != "/@alice" {
		t.Fatalf("ProfilePath() = %q", got)
	}
	if got := PostPath("a b", "alice", "x/y"); got != "/a%20b/@alice/x%2Fy" {
		t.Fatalf("PostPath() escaped = %q", got)
	}
}

func TestFetcherFuncDelegates(t *testing.T) {
	t.Parallel()

	var got Query
	fn := FetcherFunc(func(_ context.Context, q Query) (Result, error) {
		got = q
		return Result{Posts: []Post{{Permlink: "p"}}}, nil
	})
	res, err := fn.FetchUserFeed(context.Background(), Query{Username: "bob"})
	if err != nil {
		t.Fatalf("FetchUserFeed() error = %v", err)
	}
	if got.Username != "bob" || len(res.Posts) != 1 {
		t.Fatalf("delegate got %+v, result %+v", got, res)
	}
}
