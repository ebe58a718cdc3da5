package sidebar

import (
	"net/http"
	"strings"

	"github.com/louisbranch/inkwell/internal/feed"
	"github.com/louisbranch/inkwell/internal/services/web/module"
	apperrors "github.com/louisbranch/inkwell/internal/services/web/platform/errors"
	"github.com/louisbranch/inkwell/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/inkwell/internal/services/web/platform/i18n"
	"github.com/louisbranch/inkwell/internal/services/web/platform/pagerender"
	"github.com/louisbranch/inkwell/internal/services/web/platform/weberror"
	"github.com/louisbranch/inkwell/internal/services/web/routepath"
	"go.uber.org/zap"
)

type handlers struct {
	service service
	deps    module.Dependencies
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{service: s, deps: deps}
}

func (h handlers) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	current := strings.TrimSpace(r.URL.Query().Get(routepath.ParamPath))
	if !routepath.IsLocalPath(current) {
		h.writeError(w, r, apperrors.EK(apperrors.KindInvalidInput, "core.error.bad_request_title", "path must be a local absolute path"))
		return
	}

	loc, _ := webi18n.ResolveLocalizer(nil, r, h.deps.ResolveLanguage)
	widget, err := h.service.newWidget(newPageNavigation(current), loc)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer widget.Unmount()

	// Fetch failures leave the widget empty; the widget logs them.
	_ = widget.Load(r.Context())

	title := webi18n.Text(loc, "recommended_posts", "Recommended Posts")
	if err := pagerender.Write(w, r, h.deps, pagerender.Page{Title: title, Fragment: widget.Component()}); err != nil {
		h.service.logger.Warn("render recommendations", zap.Error(err))
	}
}

func (h handlers) handleOpen(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	post := feed.Post{
		Category: strings.TrimSpace(q.Get(routepath.ParamCategory)),
		Author:   strings.TrimSpace(q.Get(routepath.ParamAuthor)),
		Permlink: strings.TrimSpace(q.Get(routepath.ParamPermlink)),
	}
	if post.Category == "" || post.Author == "" || post.Permlink == "" {
		h.writeError(w, r, apperrors.EK(apperrors.KindInvalidInput, "core.error.bad_request_title", "category, author, and permlink are required"))
		return
	}
	current := strings.TrimSpace(q.Get(routepath.ParamPath))
	if current == "" {
		current = routepath.Root
	}
	if !routepath.IsLocalPath(current) {
		h.writeError(w, r, apperrors.EK(apperrors.KindInvalidInput, "core.error.bad_request_title", "path must be a local absolute path"))
		return
	}

	nav := newPageNavigation(current)
	widget, err := h.service.newWidget(nav, nil)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	widget.Navigate(post)
	if err := httpx.WriteNavigation(w, r, nav.location()); err != nil {
		h.writeError(w, r, err)
	}
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
}

func (h handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, err, h.deps)
}
