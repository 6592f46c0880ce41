package types

import (
	"fmt"
	"strings"
)

// PathSeparator joins namespace path segments in their textual form.
const PathSeparator = "::"

// NamespacePath identifies a logical export destination, independent of the
// exporting unit's own package layout. Segments may carry generic markers
// ("Pallet<T>"); the sanitizer makes them filesystem-safe.
// Implements: prd001-exchange-core R3.
type NamespacePath []string

// ParsePath splits a textual path ("math::ops::add") into its segments.
// Returns an error for empty paths or empty segments.
func ParsePath(s string) (NamespacePath, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty namespace path", ErrParseFailed)
	}
	segments := strings.Split(s, PathSeparator)
	for _, seg := range segments {
		if strings.TrimSpace(seg) == "" {
			return nil, fmt.Errorf("%w: empty segment in namespace path %q", ErrParseFailed, s)
		}
	}
	return NamespacePath(segments), nil
}

// String renders the path in its textual form.
func (p NamespacePath) String() string {
	return strings.Join(p, PathSeparator)
}

// Parent returns the path without its final segment, or nil for paths with
// fewer than two segments.
func (p NamespacePath) Parent() NamespacePath {
	if len(p) < 2 {
		return nil
	}
	return p[:len(p)-1]
}

// Last returns the final segment, or the empty string for an empty path.
func (p NamespacePath) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Child returns a new path with seg appended.
func (p NamespacePath) Child(seg string) NamespacePath {
	out := make(NamespacePath, 0, len(p)+1)
	out = append(out, p...)
	return append(out, seg)
}
