// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/inkwell/internal/services/web/module"
	"github.com/louisbranch/inkwell/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/inkwell/internal/services/web/platform/i18n"
	"github.com/louisbranch/inkwell/internal/services/web/templates"
)

// Page describes a module response for both full-page and HTMX flows.
type Page struct {
	Title      string
	StatusCode int
	Fragment   templ.Component
}

// Write renders page. HTMX requests receive only the fragment; full requests
// receive it inside the document layout.
func Write(w http.ResponseWriter, r *http.Request, deps module.Dependencies, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = templ.NopComponent
	}

	loc, lang := webi18n.ResolveLocalizer(w, r, deps.ResolveLanguage)
	ctx := httpx.RequestContext(r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Add("Vary", "HX-Request")
	w.WriteHeader(statusCode)
	if httpx.IsHTMXRequest(r) {
		return fragment.Render(ctx, w)
	}
	layout := templates.Layout(templates.LayoutOptions{Title: page.Title, Lang: lang, Loc: loc})
	return layout.Render(templ.WithChildren(ctx, fragment), w)
}
