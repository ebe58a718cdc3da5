// Package modules lists the web modules mounted by default.
package modules

import (
	"github.com/louisbranch/inkwell/internal/services/web/module"
	"github.com/louisbranch/inkwell/internal/services/web/modules/pages"
	"github.com/louisbranch/inkwell/internal/services/web/modules/sidebar"
)

// Default returns the stable web modules.
func Default() []module.Module {
	return []module.Module{
		pages.New(),
		sidebar.New(),
	}
}
