// Package i18n resolves the request language and its message printer.
package i18n

import (
	"net/http"
	"strings"
	"time"

	platformi18n "github.com/louisbranch/inkwell/internal/platform/i18n"
	_ "github.com/louisbranch/inkwell/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the reader's language preference.
	LangCookieName = "ink_lang"
)

// Localizer formats catalog messages.
type Localizer interface {
	Sprintf(key message.Reference, a ...any) string
}

// ResolveTag determines the best language tag for the request. persist
// reports whether the tag came from the lang query parameter.
func ResolveTag(r *http.Request) (tag language.Tag, persist bool) {
	if r == nil {
		return platformi18n.DefaultTag(), false
	}
	if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
		if tag, ok := platformi18n.ParseTag(value); ok {
			return tag, true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := platformi18n.ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return platformi18n.MatchTags(tags), false
		}
	}
	return platformi18n.DefaultTag(), false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// ResolveLocalizer returns the request printer and its language string. An
// explicit resolver takes precedence over request negotiation.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request, resolve func(*http.Request) string) (*message.Printer, string) {
	if resolve != nil {
		if tag, ok := platformi18n.ParseTag(resolve(r)); ok {
			return message.NewPrinter(tag), tag.String()
		}
	}
	tag, persist := ResolveTag(r)
	if persist {
		SetLanguageCookie(w, tag)
	}
	return message.NewPrinter(tag), tag.String()
}

// Text returns the localized message for key, or fallback when the catalog
// has no entry.
func Text(loc Localizer, key string, fallback string, args ...any) string {
	if loc == nil {
		return fallback
	}
	got := strings.TrimSpace(loc.Sprintf(key, args...))
	if got == "" || got == key {
		return fallback
	}
	return got
}
