package recommendation

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/inkwell/internal/feed"
	"golang.org/x/text/message"
)

// Message ids and their fallback texts.
const (
	MsgRecommendedPosts = "recommended_posts"
	MsgBy               = "by"
	MsgComment          = "comment"
	MsgComments         = "comments"
	MsgLoading          = "loading"
)

var defaultMessages = map[string]string{
	MsgRecommendedPosts: "Recommended Posts",
	MsgBy:               "By",
	MsgComment:          "Comment",
	MsgComments:         "Comments",
	MsgLoading:          "Loading",
}

// Component renders the widget for its current state and location.
func (w *Widget) Component() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		state := w.State()
		if state.Loading {
			return LoadingIndicator(w.localizer).Render(ctx, out)
		}
		posts := w.Posts()
		if len(posts) == 0 {
			_, err := io.WriteString(out, "<div></div>")
			return err
		}
		return w.renderList(ctx, out, posts)
	})
}

// LoadingIndicator renders the spinner shown while the feed is in flight.
func LoadingIndicator(loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		label := text(loc, MsgLoading)
		_, err := io.WriteString(out, `<div class="Loading" role="status" aria-live="polite">`+
			`<span class="Loading__spinner" aria-hidden="true"></span>`+
			`<span class="Loading__label">`+templ.EscapeString(label)+`</span></div>`)
		return err
	})
}

func (w *Widget) renderList(ctx context.Context, out io.Writer, posts []feed.Post) error {
	if _, err := io.WriteString(out, `<div class="PostRecommendation">`); err != nil {
		return err
	}
	if err := listHeading(text(w.localizer, MsgRecommendedPosts)).Render(ctx, out); err != nil {
		return err
	}
	for _, p := range posts {
		if err := w.postItem(p).Render(ctx, out); err != nil {
			return err
		}
	}
	_, err := io.WriteString(out, `</div>`)
	return err
}

func listHeading(label string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		_, err := io.WriteString(out, `<h4 class="PostRecommendation__title SidebarBlock__content-title">`+
			`<i class="iconfont icon-headlines PostRecommendation__icon"></i> `+
			templ.EscapeString(label)+`</h4>`)
		return err
	})
}

func (w *Widget) postItem(p feed.Post) templ.Component {
	parts := []templ.Component{
		titleLink(p, w.navigateURL(p)),
		authorLine(text(w.localizer, MsgBy), p.Author),
	}
	if p.Children > 0 {
		parts = append(parts, commentsLink(p, CommentLabel(w.localizer, p.Children)))
	}
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		if _, err := io.WriteString(out, `<div class="PostRecommendation__link" id="post-recommendation-`+strconv.FormatInt(p.ID, 10)+`">`); err != nil {
			return err
		}
		for _, c := range parts {
			if err := c.Render(ctx, out); err != nil {
				return err
			}
		}
		_, err := io.WriteString(out, `</div>`)
		return err
	})
}

// titleLink links the post title to nav. Links that leave the post path are
// also wired for an in-place htmx request.
func titleLink(p feed.Post, nav string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		u := href(nav)
		attrs := ""
		if u != href(p.Path()) {
			attrs = ` hx-get="` + u + `" hx-swap="none"`
		}
		_, err := io.WriteString(out, `<a role="presentation" class="PostRecommendation__link-title" href="`+u+`"`+attrs+`>`+
			templ.EscapeString(p.Title)+`</a><br>`)
		return err
	})
}

func authorLine(by, author string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		_, err := io.WriteString(out, templ.EscapeString(by)+` `+
			`<a role="presentation" href="`+href(feed.ProfilePath(author))+`">`+templ.EscapeString(author)+`</a><br>`)
		return err
	})
}

func commentsLink(p feed.Post, label string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		_, err := io.WriteString(out, `<a href="`+href(p.CommentsPath())+`">`+
			strconv.Itoa(p.Children)+` `+templ.EscapeString(label)+`</a>`)
		return err
	})
}

// CommentLabel picks the singular label for exactly one comment.
func CommentLabel(loc Localizer, n int) string {
	if n == 1 {
		return text(loc, MsgComment)
	}
	return text(loc, MsgComments)
}

// Label returns the localized text for one of the Msg ids.
func Label(loc Localizer, id string) string {
	return text(loc, id)
}

// text resolves id through loc, falling back to the built-in English text
// when the catalog has no entry.
func text(loc Localizer, id string) string {
	fallback := defaultMessages[id]
	if loc == nil {
		return fallback
	}
	got := loc.Sprintf(message.Key(id, fallback))
	if got == "" || got == id {
		return fallback
	}
	return got
}

func href(u string) string {
	return templ.EscapeString(string(templ.URL(u)))
}
