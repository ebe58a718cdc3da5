// Package pages serves the home, profile, and post page shells.
package pages

import (
	"net/http"

	"github.com/louisbranch/inkwell/internal/services/web/module"
	"github.com/louisbranch/inkwell/internal/services/web/routepath"
)

// Module provides the public page routes.
type Module struct{}

// New returns a pages module.
func New() Module {
	return Module{}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "pages" }

// Mount wires page route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(deps), deps))
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
