// Package weberror renders shared error responses for web modules.
package weberror

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/inkwell/internal/services/web/module"
	apperrors "github.com/louisbranch/inkwell/internal/services/web/platform/errors"
	"github.com/louisbranch/inkwell/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/inkwell/internal/services/web/platform/i18n"
	"github.com/louisbranch/inkwell/internal/services/web/templates"
	"go.uber.org/zap"
)

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc webi18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	fallback := http.StatusText(statusCode)
	if key := apperrors.LocalizationKey(err); key != "" {
		return webi18n.Text(loc, key, fallback)
	}
	return fallback
}

// WriteAppError writes a localized error page or HTMX fragment for status.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, deps module.Dependencies) {
	if w == nil {
		return
	}
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	loc, lang := webi18n.ResolveLocalizer(w, r, deps.ResolveLanguage)
	fragment := templates.ErrorState(statusCode, loc)
	ctx := httpx.RequestContext(r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	var err error
	if httpx.IsHTMXRequest(r) {
		err = fragment.Render(ctx, w)
	} else {
		layout := templates.Layout(templates.LayoutOptions{Title: templates.ErrorPageTitle(statusCode, loc), Lang: lang, Loc: loc})
		err = layout.Render(templ.WithChildren(ctx, fragment), w)
	}
	if err != nil {
		deps.LoggerOrNop().Warn("render error page", zap.Int("status", statusCode), zap.Error(err))
	}
}

// WriteModuleError maps err to a status, logs server-side failures, and
// renders the matching error response.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, deps module.Dependencies) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode >= http.StatusInternalServerError {
		deps.LoggerOrNop().Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", httpx.RequestIDFrom(r)),
			zap.Error(err),
		)
	}
	WriteAppError(w, r, statusCode, deps)
}
