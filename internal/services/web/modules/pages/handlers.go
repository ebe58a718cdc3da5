package pages

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/inkwell/internal/feed"
	"github.com/louisbranch/inkwell/internal/services/web/module"
	webi18n "github.com/louisbranch/inkwell/internal/services/web/platform/i18n"
	"github.com/louisbranch/inkwell/internal/services/web/platform/pagerender"
	"github.com/louisbranch/inkwell/internal/services/web/platform/weberror"
	"github.com/louisbranch/inkwell/internal/services/web/routepath"
	"github.com/louisbranch/inkwell/internal/services/web/templates"
)

type handlers struct {
	service service
	deps    module.Dependencies
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{service: s, deps: deps}
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, h.service.healthBody())
}

func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	loc, _ := webi18n.ResolveLocalizer(nil, r, h.deps.ResolveLanguage)
	site := webi18n.Text(loc, "core.site_name", "Inkwell")
	h.writePage(w, r, site, templates.PageBody(templates.Heading(site, ""), nil))
}

func (h handlers) handleProfile(w http.ResponseWriter, r *http.Request) {
	author, ok := routepath.AuthorFromSegment(r.PathValue("profile"))
	if !ok {
		h.handleNotFound(w, r)
		return
	}
	posts, err := h.service.profilePosts(r.Context(), author)
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
		return
	}
	loc, _ := webi18n.ResolveLocalizer(nil, r, h.deps.ResolveLanguage)
	title := webi18n.Text(loc, "core.profile.heading", "Posts by "+author, author)
	main := multi(templates.Heading(title, feed.ProfilePath(author)), postList(posts))
	// Profile paths carry no username segment, so the recommendations widget would render nothing.
	h.writePage(w, r, title, templates.PageBody(main, nil))
}

func (h handlers) handlePost(w http.ResponseWriter, r *http.Request) {
	author, ok := routepath.AuthorFromSegment(r.PathValue("author"))
	category := strings.TrimSpace(r.PathValue("category"))
	permlink := strings.TrimSpace(r.PathValue("permlink"))
	if !ok || category == "" || permlink == "" {
		h.handleNotFound(w, r)
		return
	}
	loc, _ := webi18n.ResolveLocalizer(nil, r, h.deps.ResolveLanguage)
	title := webi18n.Text(loc, "core.post.heading", "Post "+permlink, permlink)
	main := templates.Heading(title, feed.PostPath(category, author, permlink))
	h.writePage(w, r, title, templates.PageBody(main, templates.RecommendationsSlot(r.URL.Path, loc)))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, title string, body templ.Component) {
	if err := pagerender.Write(w, r, h.deps, pagerender.Page{Title: title, Fragment: body}); err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
	}
}

func postList(posts []feed.Post) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<ul class="PostList">`)
		for _, p := range posts {
			b.WriteString(`<li class="PostList__item" id="post-` + strconv.FormatInt(p.ID, 10) + `">`)
			b.WriteString(`<a href="` + templ.EscapeString(string(templ.URL(p.Path()))) + `">` + templ.EscapeString(p.Title) + `</a>`)
			b.WriteString(`</li>`)
		}
		b.WriteString(`</ul>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func multi(components ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, c := range components {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}
