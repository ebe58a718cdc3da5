package sidebar

import (
	"context"
	"fmt"

	"github.com/louisbranch/inkwell/internal/feed"
	"github.com/louisbranch/inkwell/internal/services/web/module"
	"github.com/louisbranch/inkwell/internal/services/web/platform/httpx"
	"github.com/louisbranch/inkwell/internal/services/web/routepath"
	"github.com/louisbranch/inkwell/internal/services/web/templates"
	"github.com/louisbranch/inkwell/internal/widget/recommendation"
	"go.uber.org/zap"
)

type service struct {
	fetcher feed.Fetcher
	logger  *zap.Logger
}

type unavailableFetcher struct{}

func (unavailableFetcher) FetchUserFeed(context.Context, feed.Query) (feed.Result, error) {
	return feed.Result{}, fmt.Errorf("%w: feed fetcher is not configured", feed.ErrUnavailable)
}

func newService(deps module.Dependencies) service {
	s := service{fetcher: deps.Fetcher, logger: deps.LoggerOrNop().Named("sidebar")}
	if s.fetcher == nil {
		s.fetcher = unavailableFetcher{}
	}
	return s
}

func (s service) newWidget(nav *pageNavigation, loc recommendation.Localizer) (*recommendation.Widget, error) {
	current := nav.Path()
	return recommendation.New(recommendation.Config{
		Fetcher:   s.fetcher,
		Router:    nav,
		Scroller:  nav,
		Localizer: loc,
		Logger:    s.logger.With(zap.String("path", current)),
		NavigateURL: func(p feed.Post) string {
			return routepath.OpenRecommendation(p, current)
		},
	})
}

// pageNavigation adapts one HTTP exchange to the widget's Router and
// Scroller: the page path is fixed for the request, and navigation is
// recorded so the handler can answer with an HTMX location.
type pageNavigation struct {
	current   string
	target    string
	scrollTop bool
}

func newPageNavigation(current string) *pageNavigation {
	return &pageNavigation{current: current}
}

func (n *pageNavigation) Path() string {
	if n.target != "" {
		return n.target
	}
	return n.current
}

func (n *pageNavigation) Navigate(path string) {
	n.target = path
}

func (n *pageNavigation) ScrollTo(x, y int) {
	n.scrollTop = x == 0 && y == 0
}

func (n *pageNavigation) location() httpx.Location {
	swap := "innerHTML"
	if n.scrollTop {
		swap += " show:window:top"
	}
	return httpx.Location{Path: n.Path(), Target: "#" + templates.PageTarget, Swap: swap}
}
