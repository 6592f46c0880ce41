package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain segment", "add", "add"},
		{"path separator", "math::ops", "math-ops"},
		{"generic markers", "Pallet<T>", "Pallet_LT_T_GT_"},
		{"spaces removed", "Pallet < T >", "Pallet_LT_T_GT_"},
		{"nested generics", "Map<K, V>", "Map_LT_K,V_GT_"},
		{"full path with generics", "frame::Pallet<T>::call", "frame-Pallet_LT_T_GT_-call"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	// Injective over inputs free of "-", "_LT_", "_GT_", and spaces.
	inputs := []string{
		"add",
		"math::ops",
		"math::ops::add",
		"Pallet<T>",
		"frame::Pallet<T>::call",
		"Map<K,V>",
	}
	for _, in := range inputs {
		assert.Equal(t, in, Unsanitize(Sanitize(in)), "round trip of %q", in)
	}
}

func TestUnsanitize(t *testing.T) {
	assert.Equal(t, "math::ops", Unsanitize("math-ops"))
	assert.Equal(t, "Pallet<T>", Unsanitize("Pallet_LT_T_GT_"))
}
