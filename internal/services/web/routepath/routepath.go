// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"

	"github.com/louisbranch/inkwell/internal/feed"
)

const (
	Root                       = "/"
	Health                     = "/up"
	ProfilePattern             = "/{profile}"
	PostPattern                = "/{category}/{author}/{permlink}"
	SidebarPrefix              = "/sidebar/"
	SidebarRecommendations     = "/sidebar/recommendations"
	SidebarRecommendationsOpen = "/sidebar/recommendations/open"
)

// Query parameter names used by the sidebar endpoints.
const (
	ParamPath     = "path"
	ParamCategory = "category"
	ParamAuthor   = "author"
	ParamPermlink = "permlink"
)

// Recommendations returns the fragment address for the page at current.
func Recommendations(current string) string {
	return SidebarRecommendations + "?" + url.Values{ParamPath: {current}}.Encode()
}

// OpenRecommendation returns the navigation address for opening post from
// the page at current.
func OpenRecommendation(post feed.Post, current string) string {
	q := url.Values{}
	q.Set(ParamCategory, post.Category)
	q.Set(ParamAuthor, post.Author)
	q.Set(ParamPermlink, post.Permlink)
	if current != "" {
		q.Set(ParamPath, current)
	}
	return SidebarRecommendationsOpen + "?" + q.Encode()
}

// IsLocalPath reports whether value is an absolute path on this site.
func IsLocalPath(value string) bool {
	return strings.HasPrefix(value, "/") && !strings.HasPrefix(value, "//") && !strings.ContainsAny(value, "\\\r\n")
}

// AuthorFromSegment strips the @ sigil from a profile or post segment. ok is
// false when the sigil is missing or nothing follows it.
func AuthorFromSegment(segment string) (string, bool) {
	author, found := strings.CutPrefix(segment, "@")
	if !found || strings.TrimSpace(author) == "" {
		return "", false
	}
	return author, true
}
