// Package resolve implements both retrieval forms: the direct two-phase
// forwarding protocol between units in the same process, and the indirect
// resolver over the filesystem namespace store.
// Implements: prd004-import-resolvers;
//
//	docs/ARCHITECTURE § Import Resolvers.
package resolve

import (
	"fmt"
	"sync"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Continuation is the delivery half of the forwarding protocol: an artifact
// pushes its payload (the caller's binding name followed by the item text)
// to a caller-nominated handler. The variadic shape is deliberate; the
// handler validates arity and types and rejects malformed calls with
// ErrProtocolMismatch.
type Continuation func(args ...any) (*types.Binding, error)

// Artifact is a forwarding artifact: a generated in-unit construct whose
// sole job is to re-emit a captured item's source text to a continuation.
// Created once per export, consumed any number of times.
type Artifact struct {
	Key    string // Derived export key (see internal/exportkey).
	Source string // Verbatim source text of the exported item.
}

// Forward delivers the artifact's payload to cont under the given binding
// name. This is phase 2 of the protocol; phase 1 is the lookup that located
// the artifact.
func (a *Artifact) Forward(binding string, cont Continuation) (*types.Binding, error) {
	return cont(binding, a.Source)
}

// Registry holds the forwarding artifacts of one unit, keyed by export key.
// Key collisions surface at registration time, which is the second
// definition site.
// Implements: prd004-import-resolvers R1; prd003-export-registrar R3.2.
type Registry struct {
	unit string

	mu        sync.RWMutex
	artifacts map[string]*Artifact
}

// NewRegistry creates an empty registry for the named unit.
func NewRegistry(unit string) *Registry {
	return &Registry{
		unit:      unit,
		artifacts: make(map[string]*Artifact),
	}
}

// Unit returns the unit name this registry belongs to.
func (r *Registry) Unit() string { return r.unit }

// Register adds an artifact. A duplicate key is an ErrDuplicateKey naming
// both the key and the unit.
func (r *Registry) Register(a *Artifact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.artifacts[a.Key]; ok {
		return fmt.Errorf("%w: %s in unit %s", types.ErrDuplicateKey, a.Key, r.unit)
	}
	r.artifacts[a.Key] = a
	return nil
}

// Lookup returns the artifact registered under key, if any.
func (r *Registry) Lookup(key string) (*Artifact, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.artifacts[key]
	return a, ok
}

// Exchange holds the registries of every unit participating in one build.
// Units are created lazily on first reference.
type Exchange struct {
	mu    sync.Mutex
	units map[string]*Registry
}

// NewExchange creates an empty exchange.
func NewExchange() *Exchange {
	return &Exchange{units: make(map[string]*Registry)}
}

// Unit returns the registry for the named unit, creating it if needed.
func (e *Exchange) Unit(name string) *Registry {
	e.mu.Lock()
	defer e.mu.Unlock()

	reg, ok := e.units[name]
	if !ok {
		reg = NewRegistry(name)
		e.units[name] = reg
	}
	return reg
}

// lookupUnit returns the registry for the named unit without creating it.
func (e *Exchange) lookupUnit(name string) (*Registry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	reg, ok := e.units[name]
	return reg, ok
}
