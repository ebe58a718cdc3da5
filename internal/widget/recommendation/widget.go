package recommendation

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/louisbranch/inkwell/internal/feed"
	"go.uber.org/zap"
	"golang.org/x/text/message"
)

const (
	// FetchLimit is how many posts the widget asks for. One extra leaves room
	// for the post currently open.
	FetchLimit = 4
	// MaxShown is the most posts ever rendered.
	MaxShown = 3
)

// Router supplies the current location and accepts navigation requests.
type Router interface {
	Path() string
	Navigate(path string)
}

// Scroller resets the viewport.
type Scroller interface {
	ScrollTo(x, y int)
}

// Localizer formats catalog messages. *message.Printer satisfies it.
type Localizer interface {
	Sprintf(key message.Reference, a ...any) string
}

// Config carries the widget's collaborators. Fetcher and Router are required.
type Config struct {
	Fetcher   feed.Fetcher
	Router    Router
	Scroller  Scroller
	Localizer Localizer
	Logger    *zap.Logger
	// NavigateURL is the href of a post title. Defaults to the post address.
	NavigateURL func(feed.Post) string
}

// State is the widget's view state.
type State struct {
	Posts   []feed.Post
	Loading bool
}

// Widget is one mounted recommendation block.
type Widget struct {
	fetcher     feed.Fetcher
	router      Router
	scroller    Scroller
	localizer   Localizer
	logger      *zap.Logger
	navigateURL func(feed.Post) string

	mu         sync.Mutex
	state      State
	started    bool
	generation uint64
	cancel     context.CancelFunc

	inflight sync.WaitGroup
	changes  chan struct{}
}

// New validates cfg and returns an unmounted widget.
func New(cfg Config) (*Widget, error) {
	if cfg.Fetcher == nil {
		return nil, errors.New("feed fetcher is required")
	}
	if cfg.Router == nil {
		return nil, errors.New("router is required")
	}
	w := &Widget{
		fetcher:     cfg.Fetcher,
		router:      cfg.Router,
		scroller:    cfg.Scroller,
		localizer:   cfg.Localizer,
		logger:      cfg.Logger,
		navigateURL: cfg.NavigateURL,
		changes:     make(chan struct{}, 1),
	}
	if w.scroller == nil {
		w.scroller = noopScroller{}
	}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}
	if w.navigateURL == nil {
		w.navigateURL = feed.Post.Path
	}
	return w, nil
}

// Mount starts the single feed fetch in the background. It returns
// immediately; later calls are no-ops.
func (w *Widget) Mount(ctx context.Context) {
	c, ok := w.begin(ctx)
	if !ok {
		return
	}
	w.inflight.Add(1)
	w.notify()

	go func() {
		defer w.inflight.Done()
		defer c.cancel()
		posts, err := w.fetch(c.ctx, c.username)
		w.complete(c.gen, posts, err)
	}()
}

// Load performs the fetch on the calling goroutine. It shares Mount's
// once-per-lifetime gate and returns the fetch error, if any, after the
// widget has already settled into its empty state.
func (w *Widget) Load(ctx context.Context) error {
	c, ok := w.begin(ctx)
	if !ok {
		return nil
	}
	defer c.cancel()

	posts, err := w.fetch(c.ctx, c.username)
	w.complete(c.gen, posts, err)
	return err
}

// claim is one granted fetch: the username to query and the mount
// generation its result belongs to.
type claim struct {
	username string
	gen      uint64
	ctx      context.Context
	cancel   context.CancelFunc
}

// begin claims the fetch slot and resolves the username. ok is false when
// the widget already fetched, the location carries no username, or the
// widget was unmounted while the location was being read.
func (w *Widget) begin(ctx context.Context) (claim, bool) {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return claim{}, false
	}
	w.started = true
	gen := w.generation
	w.mu.Unlock()

	// Router.Path runs without w.mu held.
	location := w.router.Path()
	if location == "/" || location == "" {
		return claim{}, false
	}
	username, ok := UsernameFromPath(location)
	if !ok {
		w.logger.Debug("no username in location", zap.String("path", location))
		return claim{}, false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.generation {
		return claim{}, false
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.state.Loading = true
	return claim{username: username, gen: gen, ctx: fetchCtx, cancel: cancel}, true
}

func (w *Widget) fetch(ctx context.Context, username string) ([]feed.Post, error) {
	res, err := w.fetcher.FetchUserFeed(ctx, feed.Query{
		SortBy:   feed.SortBlog,
		Username: username,
		Limit:    FetchLimit,
	})
	if err != nil {
		return nil, err
	}
	return res.Posts, nil
}

func (w *Widget) complete(gen uint64, posts []feed.Post, err error) {
	w.mu.Lock()
	if gen != w.generation {
		w.mu.Unlock()
		return
	}
	if err != nil {
		w.logger.Warn("fetch recommended posts", zap.Error(err))
		posts = nil
	}
	if posts == nil {
		posts = []feed.Post{}
	}
	w.state = State{Posts: posts}
	w.mu.Unlock()
	w.notify()
}

// Unmount cancels an in-flight fetch and discards state. A fetch that
// completes afterwards is ignored.
func (w *Widget) Unmount() {
	w.mu.Lock()
	w.generation++
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.state = State{}
	w.mu.Unlock()
}

// Wait blocks until a fetch started by Mount has returned.
func (w *Widget) Wait() {
	w.inflight.Wait()
}

// State returns a copy of the current view state.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := State{Loading: w.state.Loading}
	if w.state.Posts != nil {
		out.Posts = append([]feed.Post{}, w.state.Posts...)
	}
	return out
}

// Posts derives the visible list: posts whose permlink differs from the
// current location's, at most MaxShown, in fetch order.
func (w *Widget) Posts() []feed.Post {
	current := PermlinkFromPath(w.router.Path())
	w.mu.Lock()
	defer w.mu.Unlock()
	return filterPosts(w.state.Posts, current)
}

func filterPosts(posts []feed.Post, excluded string) []feed.Post {
	out := make([]feed.Post, 0, MaxShown)
	for _, p := range posts {
		if len(out) == MaxShown {
			break
		}
		if p.Permlink == excluded {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Navigate opens post, scrolls to the top, and signals a re-render so the
// list is derived against the new location.
func (w *Widget) Navigate(post feed.Post) {
	w.router.Navigate(post.Path())
	w.scroller.ScrollTo(0, 0)
	w.notify()
}

// Changes receives a value after any state or location change. Signals
// coalesce while unread.
func (w *Widget) Changes() <-chan struct{} {
	return w.changes
}

func (w *Widget) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// UsernameFromPath returns the second path segment without its leading @.
func UsernameFromPath(location string) (string, bool) {
	seg, ok := segment(location, 2)
	if !ok {
		return "", false
	}
	username := strings.TrimPrefix(seg, "@")
	if username == "" {
		return "", false
	}
	return username, true
}

// PermlinkFromPath returns the fourth path segment, or "" when absent.
func PermlinkFromPath(location string) string {
	seg, _ := segment(location, 3)
	return seg
}

// segment indexes location split on "/", so index 1 is the first segment
// after the leading slash.
func segment(location string, index int) (string, bool) {
	parts := strings.Split(location, "/")
	if index >= len(parts) {
		return "", false
	}
	return parts[index], true
}

type noopScroller struct{}

func (noopScroller) ScrollTo(int, int) {}
