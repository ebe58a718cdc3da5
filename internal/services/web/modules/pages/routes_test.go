package pages

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/inkwell/internal/feed"
	"github.com/louisbranch/inkwell/internal/services/web/module"
)

func staticFetcher(posts ...feed.Post) feed.Fetcher {
	return feed.FetcherFunc(func(context.Context, feed.Query) (feed.Result, error) {
		return feed.Result{Posts: posts}, nil
	})
}

func newMux(deps module.Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(deps), deps))
	return mux
}

func TestRegisterRoutesHandlesNilMux(t *testing.T) {
	t.Parallel()

	registerRoutes(nil, newHandlers(newService(module.Dependencies{}), module.Dependencies{}))
}

func TestRoutesPathAndMethodContracts(t *testing.T) {
	t.Parallel()

	mux := newMux(module.Dependencies{Fetcher: staticFetcher()})
	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{name: "home", method: http.MethodGet, path: "/", wantStatus: http.StatusOK},
		{name: "health", method: http.MethodGet, path: "/up", wantStatus: http.StatusOK},
		{name: "health head", method: http.MethodHead, path: "/up", wantStatus: http.StatusOK},
		{name: "profile", method: http.MethodGet, path: "/@alice", wantStatus: http.StatusOK},
		{name: "profile without sigil", method: http.MethodGet, path: "/alice", wantStatus: http.StatusNotFound},
		{name: "post", method: http.MethodGet, path: "/travel/@alice/post-1", wantStatus: http.StatusOK},
		{name: "post without sigil", method: http.MethodGet, path: "/travel/alice/post-1", wantStatus: http.StatusNotFound},
		{name: "unknown depth", method: http.MethodGet, path: "/a/b", wantStatus: http.StatusNotFound},
		{name: "post rejected", method: http.MethodPost, path: "/up", wantStatus: http.StatusMethodNotAllowed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
		})
	}
}

func TestPostPageEmbedsRecommendationsSlot(t *testing.T) {
	t.Parallel()

	mux := newMux(module.Dependencies{})
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/travel/@alice/post-1", nil))

	body := rr.Body.String()
	for _, marker := range []string{
		"<!DOCTYPE html>",
		"Post post-1",
		`hx-get="/sidebar/recommendations?path=%2Ftravel%2F%40alice%2Fpost-1"`,
		`hx-trigger="load"`,
	} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q: %q", marker, body)
		}
	}
}

func TestPostPageHTMXReturnsPageBodyOnly(t *testing.T) {
	t.Parallel()

	mux := newMux(module.Dependencies{})
	req := httptest.NewRequest(http.MethodGet, "/travel/@alice/post-1", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	body := rr.Body.String()
	if strings.Contains(body, "<html") || !strings.HasPrefix(body, `<div class="Page">`) {
		t.Fatalf("body = %q, want page body fragment", body)
	}
}

func TestProfilePageListsAuthorPosts(t *testing.T) {
	t.Parallel()

	mux := newMux(module.Dependencies{Fetcher: staticFetcher(
		feed.Post{ID: 3, Title: "Hello <world>", Author: "alice", Category: "travel", Permlink: "hello"},
	)})
	req := httptest.NewRequest(http.MethodGet, "/@alice", nil)
	req.Header.Set("Accept-Language", "pt-BR")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	body := rr.Body.String()
	for _, marker := range []string{
		"Publicações de alice",
		`href="/travel/@alice/hello"`,
		"Hello &lt;world&gt;",
	} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q: %q", marker, body)
		}
	}
	if strings.Contains(body, "/sidebar/recommendations") {
		t.Fatalf("body = %q, want no recommendations slot on profile pages", body)
	}
}

func TestProfilePageWithoutFetcherIsUnavailable(t *testing.T) {
	t.Parallel()

	mux := newMux(module.Dependencies{})
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/@alice", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestHealthBody(t *testing.T) {
	t.Parallel()

	mux := newMux(module.Dependencies{})
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/up", nil))
	if rr.Body.String() != "ok" {
		t.Fatalf("body = %q, want ok", rr.Body.String())
	}
}
