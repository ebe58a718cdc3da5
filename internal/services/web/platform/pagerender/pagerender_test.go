package pagerender

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/louisbranch/inkwell/internal/services/web/module"
)

func fragment(body string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, body)
		return err
	})
}

func TestWriteFullPageIncludesLayout(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/@alice", nil)
	if err := Write(rr, req, module.Dependencies{}, Page{Title: "Posts by alice", Fragment: fragment("<p>body</p>")}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	body := rr.Body.String()
	if rr.Code != http.StatusOK || !strings.Contains(body, "<!DOCTYPE html>") || !strings.Contains(body, "<p>body</p>") {
		t.Fatalf("status = %d body = %q", rr.Code, body)
	}
}

func TestWriteHTMXReturnsFragmentOnly(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/@alice", nil)
	req.Header.Set("HX-Request", "true")
	if err := Write(rr, req, module.Dependencies{}, Page{StatusCode: http.StatusAccepted, Fragment: fragment("<p>body</p>")}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusAccepted)
	}
	if got := rr.Body.String(); got != "<p>body</p>" {
		t.Fatalf("body = %q, want fragment only", got)
	}
}

func TestWriteUsesResolvedLanguage(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	deps := module.Dependencies{ResolveLanguage: func(*http.Request) string { return "pt-BR" }}
	if err := Write(rr, req, deps, Page{}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(rr.Body.String(), `lang="pt-BR"`) {
		t.Fatalf("body = %q, want pt-BR document", rr.Body.String())
	}
}
