package types

import (
	"errors"
	"go/token"
)

// Config holds store location, unit identity, and capability flags for the
// exchange. Capability flags mirror the build features of the original
// toolchain integration: indirect writes and reads are off unless the build
// configuration turns them on.
// Implements: prd001-exchange-core R4; prd008-configuration-directories R1.5.
type Config struct {
	StoreDir           string `json:"store_dir" yaml:"store_dir"`
	Unit               string `json:"unit" yaml:"unit"`
	AllowIndirectWrite bool   `json:"allow_indirect_write" yaml:"allow_indirect_write"`
	AllowIndirectRead  bool   `json:"allow_indirect_read" yaml:"allow_indirect_read"`
}

// Config validation errors (prd001-exchange-core R4.2).
var (
	ErrUnitEmpty     = errors.New("unit name must not be empty")
	ErrUnitInvalid   = errors.New("unit name must be a bare identifier")
	ErrStoreDirEmpty = errors.New("store_dir must be set when indirect capabilities are enabled")
)

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Unit == "" {
		return ErrUnitEmpty
	}
	if !token.IsIdentifier(c.Unit) {
		return ErrUnitInvalid
	}
	if (c.AllowIndirectWrite || c.AllowIndirectRead) && c.StoreDir == "" {
		return ErrStoreDirEmpty
	}
	return nil
}
