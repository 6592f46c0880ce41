package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "valid minimal",
			cfg:  Config{Unit: "mathlib"},
		},
		{
			name: "valid with capabilities",
			cfg: Config{
				Unit:               "mathlib",
				StoreDir:           "/tmp/store",
				AllowIndirectWrite: true,
				AllowIndirectRead:  true,
			},
		},
		{
			name:    "empty unit",
			cfg:     Config{},
			wantErr: ErrUnitEmpty,
		},
		{
			name:    "unit with path separator",
			cfg:     Config{Unit: "my::unit"},
			wantErr: ErrUnitInvalid,
		},
		{
			name:    "indirect write without store dir",
			cfg:     Config{Unit: "mathlib", AllowIndirectWrite: true},
			wantErr: ErrStoreDirEmpty,
		},
		{
			name:    "indirect read without store dir",
			cfg:     Config{Unit: "mathlib", AllowIndirectRead: true},
			wantErr: ErrStoreDirEmpty,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestParsePath(t *testing.T) {
	t.Run("multi segment", func(t *testing.T) {
		p, err := ParsePath("math::ops::add")
		assert.NoError(t, err)
		assert.Equal(t, NamespacePath{"math", "ops", "add"}, p)
		assert.Equal(t, "math::ops::add", p.String())
		assert.Equal(t, "add", p.Last())
		assert.Equal(t, NamespacePath{"math", "ops"}, p.Parent())
	})

	t.Run("single segment", func(t *testing.T) {
		p, err := ParsePath("math")
		assert.NoError(t, err)
		assert.Equal(t, NamespacePath{"math"}, p)
		assert.Nil(t, p.Parent())
	})

	t.Run("generic marker segment", func(t *testing.T) {
		p, err := ParsePath("pallets::Pallet<T>")
		assert.NoError(t, err)
		assert.Equal(t, "Pallet<T>", p.Last())
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := ParsePath("")
		assert.ErrorIs(t, err, ErrParseFailed)
	})

	t.Run("empty segment", func(t *testing.T) {
		_, err := ParsePath("math::::add")
		assert.ErrorIs(t, err, ErrParseFailed)
	})

	t.Run("child", func(t *testing.T) {
		p := NamespacePath{"math", "ops"}
		assert.Equal(t, NamespacePath{"math", "ops", "add"}, p.Child("add"))
		// Child must not alias the receiver's backing array.
		assert.Equal(t, NamespacePath{"math", "ops"}, p)
	})
}
