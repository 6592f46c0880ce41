// Package exportkey derives the stable lookup identifier for an exported
// item. Keys are case-flattened (snake case) declared names behind a fixed
// prefix, so two spellings that flatten the same way collide loudly instead
// of shadowing each other.
// Implements: prd005-sanitizer-keys R2.
package exportkey

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Prefix keeps generated forwarding identifiers out of the way of ordinary
// declarations in the exporting unit.
const Prefix = "__export_tokens_tt_"

// Flatten converts a declared name to its snake case form.
func Flatten(name string) string {
	return strcase.ToSnake(name)
}

// Derive returns the forwarding artifact key for a declared name.
// Derivation is deterministic: the same name always yields the same key.
// A trailing generic marker ("Pallet<T>") is stripped before flattening,
// so generic and non-generic spellings of one name share a key.
func Derive(name string) string {
	if i := strings.IndexByte(name, '<'); i >= 0 {
		name = name[:i]
	}
	return Prefix + Flatten(name)
}

// ValidateOverride checks that an override name is a bare identifier.
// Paths ("some::path") and generic parameter lists ("Something<T>") are
// rejected with ErrInvalidOverride, matching the export contract.
// Implements: prd003-export-registrar R2.2.
func ValidateOverride(name string) error {
	if !token.IsIdentifier(name) {
		return fmt.Errorf("%w: %q is not a bare identifier", types.ErrInvalidOverride, name)
	}
	return nil
}
