// Package engines wires every built-in adapter into one registry.
package engines

import (
	"github.com/koustreak/dbspec/internal/engine"
	"github.com/koustreak/dbspec/internal/engine/mysql"
	"github.com/koustreak/dbspec/internal/engine/redshift"
)

// Default returns a registry holding the built-in adapters in a stable
// order.
func Default() *engine.Registry {
	r, err := engine.NewRegistry(mysql.New(), redshift.New())
	if err != nil {
		// names are constants, a clash is a programming error
		panic(err)
	}
	return r
}

// Names lists the identifiers of the built-in adapters.
func Names() []string {
	specs := Default().Specs()
	out := make([]string, 0, len(specs))
	for _, s := range specs {
		out = append(out, string(s.Name()))
	}
	return out
}
