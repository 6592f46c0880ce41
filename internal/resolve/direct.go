package resolve

import (
	"fmt"
	"go/token"

	"github.com/mesh-intelligence/satchel/internal/exportkey"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Invocation is a resolved direct import: the address of a forwarding
// artifact plus the binding name the reconstructed node should land under.
// Expansion is single pass; a failure at either phase is terminal, never
// retried.
// Implements: prd004-import-resolvers R2.
type Invocation struct {
	Binding string // Identifier the caller binds the node to.
	Unit    string // Originating unit; empty for the same-unit case.
	Key     string // Derived forwarding artifact key.
}

// ResolveDirect derives a forwarding invocation from a binding name and a
// source path. The artifact key comes from the path's final segment; paths
// with more than one segment qualify the call with the first segment, the
// originating unit reference.
func ResolveDirect(binding string, sourcePath types.NamespacePath) (Invocation, error) {
	if !token.IsIdentifier(binding) {
		return Invocation{}, fmt.Errorf("%w: binding %q is not a bare identifier",
			types.ErrParseFailed, binding)
	}
	if len(sourcePath) == 0 {
		return Invocation{}, fmt.Errorf("%w: empty source path", types.ErrParseFailed)
	}

	inv := Invocation{
		Binding: binding,
		Key:     exportkey.Derive(sourcePath.Last()),
	}
	if len(sourcePath) > 1 {
		inv.Unit = sourcePath[0]
	}
	return inv, nil
}

// GeneratedCall renders the invocation as the generated forwarding call:
// the named artifact applied to the binding name and the well-known
// reconstruction continuation. Single-segment paths invoke unqualified.
func (inv Invocation) GeneratedCall() string {
	if inv.Unit == "" {
		return fmt.Sprintf("%s(%s, satchel.Reconstruct)", inv.Key, inv.Binding)
	}
	return fmt.Sprintf("%s.%s(%s, satchel.Reconstruct)", inv.Unit, inv.Key, inv.Binding)
}

// Expand performs the two-phase expansion. Phase 1 locates the forwarding
// artifact: in local for the same-unit case, otherwise in the originating
// unit's registry inside ex. Phase 2 has the artifact push its payload to
// the Reconstruct continuation, which reparses the text and produces the
// binding.
func (inv Invocation) Expand(local *Registry, ex *Exchange) (*types.Binding, error) {
	reg := local
	if inv.Unit != "" {
		r, ok := ex.lookupUnit(inv.Unit)
		if !ok {
			return nil, fmt.Errorf("%w: unit %s has no registered exports; check that it participates in this build",
				types.ErrNotFound, inv.Unit)
		}
		reg = r
	}
	if reg == nil {
		return nil, fmt.Errorf("%w: no local registry for unqualified invocation of %s",
			types.ErrNotFound, inv.Key)
	}

	artifact, ok := reg.Lookup(inv.Key)
	if !ok {
		return nil, fmt.Errorf("%w: no forwarding artifact %s in unit %s; check the item was exported under that name",
			types.ErrNotFound, inv.Key, reg.Unit())
	}

	return artifact.Forward(inv.Binding, Reconstruct)
}

// Reconstruct is the fixed, well-known reconstruction continuation. It
// expects exactly two arguments: the binding identifier and the item source
// text. Anything else is an ErrProtocolMismatch; text that no longer parses
// is an ErrParseFailed, which indicates a registrar/resolver version skew.
func Reconstruct(args ...any) (*types.Binding, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: expected 2 arguments, got %d", types.ErrProtocolMismatch, len(args))
	}
	binding, ok := args[0].(string)
	if !ok || !token.IsIdentifier(binding) {
		return nil, fmt.Errorf("%w: first argument must be a binding identifier", types.ErrProtocolMismatch)
	}
	src, ok := args[1].(string)
	if !ok {
		return nil, fmt.Errorf("%w: second argument must be item source text", types.ErrProtocolMismatch)
	}

	item, err := types.ParseItem(src)
	if err != nil {
		return nil, fmt.Errorf("reconstructing %s: %w", binding, err)
	}
	return &types.Binding{Name: binding, Item: item}, nil
}
