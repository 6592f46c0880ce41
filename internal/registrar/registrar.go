// Package registrar implements the export side of the exchange: it captures
// an item's exact source, registers a forwarding artifact under a derived
// key, renders the generated artifact source for the exporting unit, and
// optionally persists the text into the namespace store for indirect
// retrieval.
// Implements: prd003-export-registrar;
//
//	docs/ARCHITECTURE § Export Registrar.
package registrar

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/satchel/internal/catalog"
	"github.com/mesh-intelligence/satchel/internal/exportkey"
	"github.com/mesh-intelligence/satchel/internal/resolve"
	"github.com/mesh-intelligence/satchel/internal/store"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Exporter performs export operations for one unit. The registry receives
// the forwarding artifacts; store and catalog are only consulted for
// exports that carry a destination namespace.
type Exporter struct {
	cfg      types.Config
	registry *resolve.Registry
	store    *store.Store
	catalog  *catalog.Catalog
	log      *zap.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithStore attaches the namespace store used for destination writes.
func WithStore(s *store.Store) Option {
	return func(e *Exporter) { e.store = s }
}

// WithCatalog attaches an export catalog; destination writes are recorded
// in it when present.
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Exporter) { e.catalog = c }
}

// WithLogger attaches a logger. Default is a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Exporter) { e.log = log }
}

// New creates an Exporter for the unit named in cfg, registering artifacts
// into registry.
func New(cfg types.Config, registry *resolve.Registry, opts ...Option) *Exporter {
	e := &Exporter{
		cfg:      cfg,
		registry: registry,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of one export operation.
type Result struct {
	Item     *types.Item       // The captured item.
	Artifact *resolve.Artifact // Registered forwarding artifact.
	Name     string            // Resolved item name (override when given).
	Key      string            // Derived export key.

	// Generated holds the rendered artifact source the exporting unit
	// includes alongside the unchanged original item, so the export is
	// non-destructive to normal compilation.
	Generated string
}

// Export captures itemText. The item's own declared name is used unless
// override is non-empty, in which case override must be a bare identifier.
// A non-nil dest additionally persists the text into the namespace store at
// dest + name, which requires the indirect-write capability and an attached
// store; pre-existing targets are a conflict unless overwrite is set.
// Implements: prd003-export-registrar R1-R5.
func (e *Exporter) Export(itemText, override string, dest types.NamespacePath, overwrite bool) (*Result, error) {
	item, err := types.ParseItem(itemText)
	if err != nil {
		return nil, err
	}

	name := item.Name
	if override != "" {
		if err := exportkey.ValidateOverride(override); err != nil {
			return nil, err
		}
		name = override
	}

	// Registration is the last step: a failed render or destination write
	// must not leave the key behind in the long-lived registry, or a
	// corrected retry would report a duplicate. The early lookup keeps the
	// common duplicate failure ahead of any store side effect.
	key := exportkey.Derive(name)
	if _, ok := e.registry.Lookup(key); ok {
		return nil, fmt.Errorf("%w: %s in unit %s", types.ErrDuplicateKey, key, e.registry.Unit())
	}

	generated, err := renderArtifact(e.cfg.Unit, key, item.Source)
	if err != nil {
		return nil, err
	}

	if len(dest) > 0 {
		if err := e.writeIndirect(item, name, key, dest, overwrite); err != nil {
			return nil, err
		}
	}

	artifact := &resolve.Artifact{Key: key, Source: item.Source}
	if err := e.registry.Register(artifact); err != nil {
		return nil, err
	}

	e.log.Debug("item exported",
		zap.String("unit", e.cfg.Unit),
		zap.String("name", name),
		zap.String("key", key),
		zap.String("kind", string(item.Kind)))

	return &Result{
		Item:      item,
		Artifact:  artifact,
		Name:      name,
		Key:       key,
		Generated: generated,
	}, nil
}

// writeIndirect persists the item under dest + name and records it in the
// catalog when one is attached.
func (e *Exporter) writeIndirect(item *types.Item, name string, key string, dest types.NamespacePath, overwrite bool) error {
	if !e.cfg.AllowIndirectWrite {
		return fmt.Errorf("%w: indirect writes are not enabled in this configuration",
			types.ErrCapabilityDisabled)
	}
	if e.store == nil {
		return fmt.Errorf("%w: no namespace store attached", types.ErrCapabilityDisabled)
	}

	target := dest.Child(name)
	if err := e.store.Write(target, item.Source, overwrite); err != nil {
		return err
	}

	if e.catalog != nil {
		if _, err := e.catalog.Record(catalog.Export{
			Key:       key,
			Name:      name,
			Kind:      string(item.Kind),
			Namespace: dest.String(),
			Size:      len(item.Source),
		}); err != nil {
			return err
		}
	}
	return nil
}
