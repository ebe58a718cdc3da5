// Package i18n resolves language tags against the locales shipped in the
// embedded catalogs.
package i18n

import (
	"strings"
	"sync"

	"github.com/louisbranch/inkwell/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
)

var (
	supportedOnce sync.Once
	supported     []language.Tag
	matcher       language.Matcher
)

func loadSupported() {
	supportedOnce.Do(func() {
		base := language.MustParse(catalog.BaseLocale)
		supported = []language.Tag{base}
		for _, locale := range catalog.Default().Locales() {
			tag, err := language.Parse(locale)
			if err != nil || tag == base {
				continue
			}
			supported = append(supported, tag)
		}
		matcher = language.NewMatcher(supported)
	})
}

// DefaultTag returns the base catalog language.
func DefaultTag() language.Tag {
	return language.MustParse(catalog.BaseLocale)
}

// SupportedTags returns the catalog languages with the default first.
func SupportedTags() []language.Tag {
	loadSupported()
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// MatchTags returns the best supported tag for the preference list.
func MatchTags(tags []language.Tag) language.Tag {
	loadSupported()
	if len(tags) == 0 {
		return DefaultTag()
	}
	_, index, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultTag()
	}
	return supported[index]
}

// ParseTag parses value and maps it onto a supported tag. ok is false when
// value is not a tag or matches no supported language.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Und, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und, false
	}
	loadSupported()
	_, index, conf := matcher.Match(tag)
	if conf == language.No {
		return language.Und, false
	}
	return supported[index], true
}
