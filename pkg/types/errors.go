package types

import "errors"

// Exchange errors. Every failure in the export/import pipeline wraps one of
// these sentinels so callers can branch with errors.Is while still seeing the
// offending construct or path in the message.
// Implements: prd001-exchange-core R7 (error taxonomy).
var (
	// ErrUnsupportedItem is returned when an item kind carries no usable
	// name and cannot be exported (import declarations, methods, grouped
	// declaration blocks, blank identifier declarations).
	ErrUnsupportedItem = errors.New("unsupported item kind")

	// ErrInvalidOverride is returned when an override name is not a bare
	// identifier (paths and generic parameter lists are rejected).
	ErrInvalidOverride = errors.New("invalid override name")

	// ErrCapabilityDisabled is returned when an indirect read or write is
	// attempted while the corresponding capability is off in the build
	// configuration.
	ErrCapabilityDisabled = errors.New("capability disabled")

	// ErrStoreConflict is returned when a destination write finds the
	// target already occupied and overwrite was not requested.
	ErrStoreConflict = errors.New("destination already occupied")

	// ErrDirCreate is returned when the store cannot create the directory
	// chain for a destination write. Distinct from ErrStoreConflict so a
	// transient filesystem problem is not mistaken for the no-overwrite
	// guard.
	ErrDirCreate = errors.New("cannot create namespace directory")

	// ErrNotFound is returned when no artifact exists at the requested
	// namespace path.
	ErrNotFound = errors.New("artifact not found")

	// ErrParseFailed is returned when source text cannot be parsed back
	// into a declaration.
	ErrParseFailed = errors.New("parse failed")

	// ErrProtocolMismatch is returned when a forwarding continuation is
	// invoked with a payload of the wrong arity or shape.
	ErrProtocolMismatch = errors.New("forwarding protocol mismatch")

	// ErrDuplicateKey is returned when a second export in the same unit
	// derives an export key that is already registered.
	ErrDuplicateKey = errors.New("export key already registered")
)
