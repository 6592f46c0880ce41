package resolve

import (
	"fmt"

	"github.com/mesh-intelligence/satchel/internal/store"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Resolver performs indirect imports against an injected namespace store.
// Both operations are gated by the indirect-read capability; calling them
// with the capability off is a configuration error, not a lookup miss.
// Implements: prd004-import-resolvers R3.
type Resolver struct {
	store *store.Store
	cfg   types.Config
}

// NewResolver creates a Resolver over the given store and configuration.
func NewResolver(s *store.Store, cfg types.Config) *Resolver {
	return &Resolver{store: s, cfg: cfg}
}

// ResolveIndirect reads and reparses the artifact at the given path.
func (r *Resolver) ResolveIndirect(path types.NamespacePath) (*types.Item, error) {
	if !r.cfg.AllowIndirectRead {
		return nil, fmt.Errorf("%w: indirect reads are not enabled in this configuration",
			types.ErrCapabilityDisabled)
	}
	return r.store.ReadOne(path)
}

// ResolveNamespace reads every artifact directly under the given namespace,
// sorted by name.
func (r *Resolver) ResolveNamespace(path types.NamespacePath) ([]store.Entry, error) {
	if !r.cfg.AllowIndirectRead {
		return nil, fmt.Errorf("%w: indirect reads are not enabled in this configuration",
			types.ErrCapabilityDisabled)
	}
	return r.store.ReadNamespace(path)
}
