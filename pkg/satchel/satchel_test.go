package satchel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// The default exchange is process-wide, so each test registers under its
// own unit name.

func TestRegisterAndResolve(t *testing.T) {
	Register("geo_a", "__export_tokens_tt_point", "type Point struct {\n\tX, Y int\n}")

	bound, err := Resolve("geo_caller", "LocalPoint", types.NamespacePath{"geo_a", "Point"})
	require.NoError(t, err)
	assert.Equal(t, "LocalPoint", bound.Name)
	assert.Equal(t, types.KindStruct, bound.Item.Kind)
	assert.Equal(t, "Point", bound.Item.Name)
}

func TestResolveUnqualifiedUsesCallerUnit(t *testing.T) {
	Register("geo_b", "__export_tokens_tt_origin", "const Origin = 0")

	bound, err := Resolve("geo_b", "Zero", types.NamespacePath{"Origin"})
	require.NoError(t, err)
	assert.Equal(t, "Zero", bound.Name)
	assert.Equal(t, types.KindConst, bound.Item.Kind)
}

func TestResolveUnknownUnit(t *testing.T) {
	_, err := Resolve("geo_c", "X", types.NamespacePath{"nowhere", "Thing"})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("geo_d", "__export_tokens_tt_once", "var Once = 1")
	assert.Panics(t, func() {
		Register("geo_d", "__export_tokens_tt_once", "var Once = 2")
	})
}

func TestReconstructRejectsBadPayload(t *testing.T) {
	_, err := Reconstruct("only one argument")
	assert.ErrorIs(t, err, types.ErrProtocolMismatch)
}
