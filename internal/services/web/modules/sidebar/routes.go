package sidebar

import (
	"net/http"

	"github.com/louisbranch/inkwell/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.SidebarRecommendations, h.handleRecommendations)
	mux.HandleFunc(http.MethodGet+" "+routepath.SidebarRecommendationsOpen, h.handleOpen)
	mux.HandleFunc(http.MethodGet+" "+routepath.SidebarPrefix+"{rest...}", h.handleNotFound)
}
