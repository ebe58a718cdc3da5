package pages

import (
	"context"
	"fmt"

	"github.com/louisbranch/inkwell/internal/feed"
	"github.com/louisbranch/inkwell/internal/services/web/module"
	apperrors "github.com/louisbranch/inkwell/internal/services/web/platform/errors"
)

// profileFeedLimit bounds the post list shown on a profile page.
const profileFeedLimit = 10

type service struct {
	fetcher feed.Fetcher
}

type unavailableFetcher struct{}

func (unavailableFetcher) FetchUserFeed(context.Context, feed.Query) (feed.Result, error) {
	return feed.Result{}, fmt.Errorf("%w: feed fetcher is not configured", feed.ErrUnavailable)
}

func newService(deps module.Dependencies) service {
	if deps.Fetcher != nil {
		return service{fetcher: deps.Fetcher}
	}
	return service{fetcher: unavailableFetcher{}}
}

func (service) healthBody() string {
	return "ok"
}

func (s service) profilePosts(ctx context.Context, author string) ([]feed.Post, error) {
	res, err := s.fetcher.FetchUserFeed(ctx, feed.Query{
		SortBy:   feed.SortBlog,
		Username: author,
		Limit:    profileFeedLimit,
	})
	if err != nil {
		return nil, apperrors.FromFeed(err)
	}
	return res.Posts, nil
}
