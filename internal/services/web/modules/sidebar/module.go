// Package sidebar serves the recommendation widget fragment and its
// navigation endpoint.
package sidebar

import (
	"net/http"

	"github.com/louisbranch/inkwell/internal/services/web/module"
	"github.com/louisbranch/inkwell/internal/services/web/routepath"
)

// Module provides sidebar fragment routes.
type Module struct{}

// New returns a sidebar module.
func New() Module {
	return Module{}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "sidebar" }

// Mount wires sidebar route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(deps), deps))
	return module.Mount{Prefix: routepath.SidebarPrefix, Handler: mux}, nil
}
