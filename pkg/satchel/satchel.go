// Package satchel is the runtime surface of the Satchel source exchange:
// the entry points that generated forwarding artifacts link against, plus
// the release version. The exchange machinery itself lives in the internal
// packages; the CLI under cmd/satchel is the supported tooling surface.
// Implements: prd001-exchange-core (runtime surface); prd004-import-resolvers R2.4.
package satchel

import (
	"github.com/mesh-intelligence/satchel/internal/resolve"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Version is the current Satchel release.
const Version = "0.2.0"

// defaultExchange backs the process-wide registration surface that generated
// artifacts call from their init functions.
var defaultExchange = resolve.NewExchange()

// Register records a forwarding artifact with the named unit's registry in
// the process-wide exchange. Generated artifact files call this from init;
// a duplicate key panics there, surfacing the second definition site the
// moment the unit is linked in.
func Register(unit, key, source string) {
	err := defaultExchange.Unit(unit).Register(&resolve.Artifact{Key: key, Source: source})
	if err != nil {
		panic(err)
	}
}

// Reconstruct is the well-known reconstruction continuation that generated
// forwarding calls nominate. See resolve.Reconstruct for the payload shape
// it accepts.
func Reconstruct(args ...any) (*types.Binding, error) {
	return resolve.Reconstruct(args...)
}

// Resolve expands a direct import against the process-wide exchange: the
// artifact named by sourcePath is located and its payload reconstructed
// under the binding identifier. Unqualified paths resolve within the
// caller's own unit, which is why callerUnit is explicit here.
func Resolve(callerUnit, binding string, sourcePath types.NamespacePath) (*types.Binding, error) {
	inv, err := resolve.ResolveDirect(binding, sourcePath)
	if err != nil {
		return nil, err
	}
	return inv.Expand(defaultExchange.Unit(callerUnit), defaultExchange)
}
