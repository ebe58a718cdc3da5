// Package module defines the contract every web module implements.
package module

import (
	"net/http"

	"github.com/louisbranch/inkwell/internal/feed"
	"go.uber.org/zap"
)

// ResolveLanguage returns the language tag to render a request in. An empty
// result defers to request negotiation.
type ResolveLanguage func(*http.Request) string

// Dependencies carries shared collaborators into modules.
type Dependencies struct {
	Fetcher         feed.Fetcher
	Logger          *zap.Logger
	ResolveLanguage ResolveLanguage
}

// Mount is a module's routing contribution.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module is a mountable feature area.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}

// LoggerOrNop returns the dependency logger or a no-op logger.
func (d Dependencies) LoggerOrNop() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
