// Package templates renders the page shells and shared fragments.
package templates

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	webi18n "github.com/louisbranch/inkwell/internal/services/web/platform/i18n"
	"github.com/louisbranch/inkwell/internal/services/web/routepath"
	"github.com/louisbranch/inkwell/internal/widget/recommendation"
)

// HTMXScriptURL is the htmx build loaded by every full page.
const HTMXScriptURL = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// PageTarget is the element id swapped on in-app navigation.
const PageTarget = "page"

// LayoutOptions configures the document shell.
type LayoutOptions struct {
	Title string
	Lang  string
	Loc   webi18n.Localizer
}

// Layout renders the full document around its children.
func Layout(opts LayoutOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		site := webi18n.Text(opts.Loc, "core.site_name", "Inkwell")
		lang := strings.TrimSpace(opts.Lang)
		if lang == "" {
			lang = "en-US"
		}
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="`+templ.EscapeString(lang)+`"><head>`+
			`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>`+templ.EscapeString(ComposePageTitle(opts.Title, site))+`</title>`+
			`<script src="`+HTMXScriptURL+`" defer></script></head><body>`+
			`<header class="Topnav"><a class="Topnav__brand" href="`+routepath.Root+`">`+templ.EscapeString(site)+`</a></header>`+
			`<div id="`+PageTarget+`">`); err != nil {
			return err
		}
		if err := templ.GetChildren(ctx).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></body></html>`)
		return err
	})
}

// ComposePageTitle appends the site name unless title already ends with it.
func ComposePageTitle(title, site string) string {
	title = strings.TrimSpace(title)
	if title == "" || title == site {
		return site
	}
	if strings.HasSuffix(title, " | "+site) {
		return title
	}
	return title + " | " + site
}

// PageBody lays out the main column next to the sidebar.
func PageBody(main templ.Component, sidebar templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="Page"><main id="app-main" class="Page__main">`); err != nil {
			return err
		}
		if main != nil {
			if err := main.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</main><aside class="Page__sidebar">`); err != nil {
			return err
		}
		if sidebar != nil {
			if err := sidebar.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</aside></div>`)
		return err
	})
}

// Heading renders the main column heading with an optional address line.
func Heading(title, address string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		markup := `<h1 class="Page__title">` + templ.EscapeString(title) + `</h1>`
		if address != "" {
			markup += `<p class="Page__address"><code>` + templ.EscapeString(address) + `</code></p>`
		}
		_, err := io.WriteString(w, markup)
		return err
	})
}

// RecommendationsSlot renders the sidebar block in its loading state and
// asks htmx to fetch the recommendations for current once the page loads.
func RecommendationsSlot(current string, loc webi18n.Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		src := templ.EscapeString(routepath.Recommendations(current))
		if _, err := io.WriteString(w, `<div class="SidebarBlock" id="post-recommendations" hx-get="`+src+
			`" hx-trigger="load" hx-swap="innerHTML">`); err != nil {
			return err
		}
		if err := recommendation.LoadingIndicator(loc).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// ErrorState renders the localized error block for status.
func ErrorState(status int, loc webi18n.Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		title, body := errorCopy(status, loc)
		markup := `<section class="ErrorState" data-status="` + strconv.Itoa(status) + `">` +
			`<h1 class="ErrorState__title">` + templ.EscapeString(title) + `</h1>`
		if body != "" {
			markup += `<p class="ErrorState__body">` + templ.EscapeString(body) + `</p>`
		}
		markup += `<a class="ErrorState__home" href="` + routepath.Root + `">` +
			templ.EscapeString(webi18n.Text(loc, "core.nav.home", "Home")) + `</a></section>`
		_, err := io.WriteString(w, markup)
		return err
	})
}

// ErrorPageTitle returns the document title for status.
func ErrorPageTitle(status int, loc webi18n.Localizer) string {
	title, _ := errorCopy(status, loc)
	return title
}

func errorCopy(status int, loc webi18n.Localizer) (string, string) {
	switch {
	case status == http.StatusNotFound:
		return webi18n.Text(loc, "core.error.not_found_title", "Page not found"),
			webi18n.Text(loc, "core.error.not_found_body", "The page you are looking for does not exist.")
	case status == http.StatusServiceUnavailable:
		return webi18n.Text(loc, "core.error.unavailable_title", "Service unavailable"),
			webi18n.Text(loc, "core.error.unavailable_body", "This page is temporarily unavailable. Try again in a moment.")
	case status >= http.StatusBadRequest && status < http.StatusInternalServerError:
		return webi18n.Text(loc, "core.error.bad_request_title", "Invalid request"), ""
	default:
		return webi18n.Text(loc, "core.error.internal_title", "Something went wrong"),
			webi18n.Text(loc, "core.error.internal_body", "An unexpected error occurred.")
	}
}
