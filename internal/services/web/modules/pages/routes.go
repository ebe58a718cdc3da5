package pages

import (
	"net/http"

	"github.com/louisbranch/inkwell/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleHome)
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, h.handleHealth)
	mux.HandleFunc(http.MethodGet+" "+routepath.ProfilePattern, h.handleProfile)
	mux.HandleFunc(http.MethodGet+" "+routepath.PostPattern, h.handlePost)
	mux.HandleFunc(http.MethodGet+" /{rest...}", h.handleNotFound)
}
