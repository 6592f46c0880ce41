package registrar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/satchel/internal/catalog"
	"github.com/mesh-intelligence/satchel/internal/resolve"
	"github.com/mesh-intelligence/satchel/internal/store"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

const addSource = "func AddStuff(a, b int) int { return a + b }"

func newTestExporter(t *testing.T, indirectWrite bool, opts ...Option) (*Exporter, *resolve.Registry) {
	t.Helper()
	cfg := types.Config{
		Unit:               "mathlib",
		StoreDir:           t.TempDir(),
		AllowIndirectWrite: indirectWrite,
		AllowIndirectRead:  true,
	}
	require.NoError(t, cfg.Validate())

	reg := resolve.NewRegistry(cfg.Unit)
	return New(cfg, reg, opts...), reg
}

func TestExportNoOverride(t *testing.T) {
	e, reg := newTestExporter(t, false)

	res, err := e.Export(addSource, "", nil, false)
	require.NoError(t, err)

	// Key is the case-flattened declared name behind the fixed prefix.
	assert.Equal(t, "__export_tokens_tt_add_stuff", res.Key)
	assert.Equal(t, "AddStuff", res.Item.Name)
	assert.Equal(t, types.KindFunc, res.Item.Kind)
	assert.Equal(t, addSource, res.Artifact.Source)

	_, ok := reg.Lookup(res.Key)
	assert.True(t, ok)
}

func TestExportAllSupportedKinds(t *testing.T) {
	tests := []struct {
		src  string
		key  string
		kind types.ItemKind
	}{
		{"const MaxRetries = 3", "__export_tokens_tt_max_retries", types.KindConst},
		{"var DefaultTimeout = 30", "__export_tokens_tt_default_timeout", types.KindVar},
		{"func Add(a, b int) int { return a + b }", "__export_tokens_tt_add", types.KindFunc},
		{"type Pair struct{ A, B int }", "__export_tokens_tt_pair", types.KindStruct},
		{"type Adder interface{ Add(a, b int) int }", "__export_tokens_tt_adder", types.KindInterface},
		{"type Rows = []string", "__export_tokens_tt_rows", types.KindTypeAlias},
		{"type Celsius float64", "__export_tokens_tt_celsius", types.KindTypeDef},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			e, _ := newTestExporter(t, false)
			res, err := e.Export(tt.src, "", nil, false)
			require.NoError(t, err)
			assert.Equal(t, tt.key, res.Key)
			assert.Equal(t, tt.kind, res.Item.Kind)
		})
	}
}

func TestExportUnsupportedKinds(t *testing.T) {
	e, _ := newTestExporter(t, false)

	for _, src := range []string{
		"import \"fmt\"",
		"func (p Pair) Sum() int { return p.A + p.B }",
		"const (\n\tA = 1\n\tB = 2\n)",
		"var _ = 3",
	} {
		_, err := e.Export(src, "", nil, false)
		assert.ErrorIs(t, err, types.ErrUnsupportedItem, "source %q", src)
	}
}

func TestExportOverride(t *testing.T) {
	t.Run("valid override replaces name", func(t *testing.T) {
		e, _ := newTestExporter(t, false)
		res, err := e.Export(addSource, "some_name", nil, false)
		require.NoError(t, err)
		assert.Equal(t, "__export_tokens_tt_some_name", res.Key)
	})

	t.Run("path override rejected", func(t *testing.T) {
		e, _ := newTestExporter(t, false)
		_, err := e.Export(addSource, "some::path", nil, false)
		assert.ErrorIs(t, err, types.ErrInvalidOverride)
	})

	t.Run("generic override rejected", func(t *testing.T) {
		e, _ := newTestExporter(t, false)
		_, err := e.Export(addSource, "Something<T>", nil, false)
		assert.ErrorIs(t, err, types.ErrInvalidOverride)
	})
}

func TestExportDuplicateKey(t *testing.T) {
	e, _ := newTestExporter(t, false)

	_, err := e.Export(addSource, "", nil, false)
	require.NoError(t, err)

	// Different item, same flattened name: collision at second definition.
	_, err = e.Export("const add_stuff = 1", "", nil, false)
	assert.ErrorIs(t, err, types.ErrDuplicateKey)
}

func TestExportGeneratedSource(t *testing.T) {
	e, _ := newTestExporter(t, false)

	res, err := e.Export(addSource, "", nil, false)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.Generated, "// Code generated by satchel. DO NOT EDIT."))
	assert.Contains(t, res.Generated, "package mathlib")
	// Original item re-emitted unchanged alongside the artifact.
	assert.Contains(t, res.Generated, addSource)
	assert.Contains(t, res.Generated, "const __export_tokens_tt_add_stuff = ")
	assert.Contains(t, res.Generated, `satchel.Register("mathlib", "__export_tokens_tt_add_stuff", __export_tokens_tt_add_stuff)`)
}

func TestExportWithDestination(t *testing.T) {
	cfg := types.Config{
		Unit:               "mathlib",
		StoreDir:           t.TempDir(),
		AllowIndirectWrite: true,
	}
	s := store.New(cfg.StoreDir)
	e := New(cfg, resolve.NewRegistry(cfg.Unit), WithStore(s))

	dest := types.NamespacePath{"math", "ops"}
	res, err := e.Export(addSource, "", dest, false)
	require.NoError(t, err)

	// Stored under destination + declared name.
	item, err := s.ReadOne(dest.Child(res.Item.Name))
	require.NoError(t, err)
	assert.Equal(t, addSource, item.Source)
}

func TestExportDestinationConflict(t *testing.T) {
	cfg := types.Config{
		Unit:               "mathlib",
		StoreDir:           t.TempDir(),
		AllowIndirectWrite: true,
	}
	s := store.New(cfg.StoreDir)
	dest := types.NamespacePath{"math", "ops"}

	e := New(cfg, resolve.NewRegistry(cfg.Unit), WithStore(s))
	_, err := e.Export(addSource, "", dest, false)
	require.NoError(t, err)

	// A sibling unit exporting the same name into the same namespace hits
	// the no-overwrite guard.
	e2 := New(cfg, resolve.NewRegistry("otherlib"), WithStore(s))
	_, err = e2.Export(addSource, "", dest, false)
	assert.ErrorIs(t, err, types.ErrStoreConflict)
}

func TestExportDestinationCapabilityDisabled(t *testing.T) {
	e, _ := newTestExporter(t, false)

	_, err := e.Export(addSource, "", types.NamespacePath{"math"}, false)
	assert.ErrorIs(t, err, types.ErrCapabilityDisabled)
}

func TestExportFailureLeavesNoRegistryState(t *testing.T) {
	key := "__export_tokens_tt_add_stuff"

	t.Run("retry after capability failure", func(t *testing.T) {
		cfg := types.Config{
			Unit:               "mathlib",
			StoreDir:           t.TempDir(),
			AllowIndirectWrite: true,
		}
		reg := resolve.NewRegistry(cfg.Unit)

		// No store attached, so the destination write half fails.
		_, err := New(cfg, reg).Export(addSource, "", types.NamespacePath{"math"}, false)
		require.ErrorIs(t, err, types.ErrCapabilityDisabled)
		_, ok := reg.Lookup(key)
		assert.False(t, ok, "failed export must not register the key")

		// A corrected exporter over the same registry succeeds.
		e := New(cfg, reg, WithStore(store.New(cfg.StoreDir)))
		res, err := e.Export(addSource, "", types.NamespacePath{"math"}, false)
		require.NoError(t, err)
		assert.Equal(t, key, res.Key)
	})

	t.Run("retry after store conflict", func(t *testing.T) {
		cfg := types.Config{
			Unit:               "mathlib",
			StoreDir:           t.TempDir(),
			AllowIndirectWrite: true,
		}
		s := store.New(cfg.StoreDir)
		dest := types.NamespacePath{"math", "ops"}
		require.NoError(t, s.Write(dest.Child("AddStuff"), "const AddStuff = 0", false))

		reg := resolve.NewRegistry(cfg.Unit)
		e := New(cfg, reg, WithStore(s))
		_, err := e.Export(addSource, "", dest, false)
		require.ErrorIs(t, err, types.ErrStoreConflict)
		_, ok := reg.Lookup(key)
		assert.False(t, ok, "failed export must not register the key")

		res, err := e.Export(addSource, "", dest, true)
		require.NoError(t, err)
		assert.Equal(t, key, res.Key)
	})
}

func TestExportRecordsCatalog(t *testing.T) {
	storeDir := t.TempDir()
	cfg := types.Config{
		Unit:               "mathlib",
		StoreDir:           storeDir,
		AllowIndirectWrite: true,
	}
	s := store.New(storeDir)
	c, err := catalog.Open(storeDir)
	require.NoError(t, err)
	defer c.Close()

	e := New(cfg, resolve.NewRegistry(cfg.Unit), WithStore(s), WithCatalog(c))
	_, err = e.Export(addSource, "", types.NamespacePath{"math", "ops"}, false)
	require.NoError(t, err)

	exports, err := c.List("math::ops")
	require.NoError(t, err)
	require.Len(t, exports, 1)
	assert.Equal(t, "AddStuff", exports[0].Name)
	assert.Equal(t, "func", exports[0].Kind)
}
