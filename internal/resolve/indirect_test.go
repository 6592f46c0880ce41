package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/satchel/internal/store"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

func newTestResolver(t *testing.T, readEnabled bool) (*Resolver, *store.Store) {
	t.Helper()
	s := store.New(t.TempDir())
	cfg := types.Config{
		Unit:               "consumer",
		StoreDir:           s.Root(),
		AllowIndirectRead:  readEnabled,
		AllowIndirectWrite: true,
	}
	return NewResolver(s, cfg), s
}

func TestResolveIndirect(t *testing.T) {
	r, s := newTestResolver(t, true)
	path := types.NamespacePath{"math", "ops", "add"}
	require.NoError(t, s.Write(path, addSource, false))

	item, err := r.ResolveIndirect(path)
	require.NoError(t, err)
	assert.Equal(t, "add", item.Name)
	assert.Equal(t, addSource, item.Source)
}

func TestResolveIndirectNotFound(t *testing.T) {
	r, _ := newTestResolver(t, true)

	_, err := r.ResolveIndirect(types.NamespacePath{"math", "ops", "missing"})
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Contains(t, err.Error(), "math::ops::missing")
}

func TestResolveIndirectCapabilityDisabled(t *testing.T) {
	r, s := newTestResolver(t, false)
	path := types.NamespacePath{"math", "ops", "add"}
	require.NoError(t, s.Write(path, addSource, false))

	_, err := r.ResolveIndirect(path)
	assert.ErrorIs(t, err, types.ErrCapabilityDisabled)

	_, err = r.ResolveNamespace(types.NamespacePath{"math", "ops"})
	assert.ErrorIs(t, err, types.ErrCapabilityDisabled)
}

func TestResolveNamespace(t *testing.T) {
	r, s := newTestResolver(t, true)
	ns := types.NamespacePath{"math", "ops"}
	require.NoError(t, s.Write(ns.Child("sub"), "func sub(a, b int) int { return a - b }", false))
	require.NoError(t, s.Write(ns.Child("add"), addSource, false))

	entries, err := r.ResolveNamespace(ns)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "add", entries[0].Name)
	assert.Equal(t, "sub", entries[1].Name)
	assert.Equal(t, types.KindFunc, entries[0].Item.Kind)
}
