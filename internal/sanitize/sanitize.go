// Package sanitize maps namespace path text to filesystem-safe names and
// back. The mapping is fixed and bidirectional: "::" <-> "-", "<" <-> "_LT_",
// ">" <-> "_GT_", spaces removed. Inputs already containing "-", "_LT_", or
// "_GT_" are outside the round-trip guarantee.
// Implements: prd005-sanitizer-keys R1.
package sanitize

import "strings"

const (
	sepToken      = "-"
	lessToken     = "_LT_"
	greaterToken  = "_GT_"
	pathSep       = "::"
	lessMarker    = "<"
	greaterMarker = ">"
)

// Sanitize converts a namespace path fragment into a filesystem-safe name.
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, pathSep, sepToken)
	s = strings.ReplaceAll(s, lessMarker, lessToken)
	s = strings.ReplaceAll(s, greaterMarker, greaterToken)
	return s
}

// Unsanitize reverses Sanitize. Removed spaces are not recovered.
func Unsanitize(s string) string {
	s = strings.ReplaceAll(s, lessToken, lessMarker)
	s = strings.ReplaceAll(s, greaterToken, greaterMarker)
	s = strings.ReplaceAll(s, sepToken, pathSep)
	return s
}
