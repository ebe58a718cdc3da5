package modules

import (
	"testing"

	"github.com/louisbranch/inkwell/internal/services/web/module"
)

func TestDefaultModulesHaveUniqueIDsAndPrefixes(t *testing.T) {
	t.Parallel()

	ids := make(map[string]bool)
	prefixes := make(map[string]bool)
	for _, feature := range Default() {
		if ids[feature.ID()] {
			t.Fatalf("duplicate module id %q", feature.ID())
		}
		ids[feature.ID()] = true

		mount, err := feature.Mount(module.Dependencies{})
		if err != nil {
			t.Fatalf("Mount(%q) error = %v", feature.ID(), err)
		}
		if mount.Handler == nil {
			t.Fatalf("module %q mounted nil handler", feature.ID())
		}
		if prefixes[mount.Prefix] {
			t.Fatalf("duplicate prefix %q", mount.Prefix)
		}
		prefixes[mount.Prefix] = true
	}
	if !ids["pages"] || !ids["sidebar"] {
		t.Fatalf("ids = %v, want pages and sidebar", ids)
	}
}
