package registrar

import (
	"fmt"
	"go/format"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// renderArtifact produces the generated Go source for a forwarding artifact:
// the original item re-emitted unchanged, a constant embedding its verbatim
// text under the derived key, and an init that registers the artifact with
// the unit's registry. The output is gofmt-formatted; failure to format
// means the assembled source is not valid Go, which is a registrar bug
// surfaced as ErrParseFailed.
// Implements: prd003-export-registrar R4 (forwarding artifact emission).
func renderArtifact(unit, key, itemSource string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by satchel. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", unit)
	fmt.Fprintf(&b, "import \"github.com/mesh-intelligence/satchel/pkg/satchel\"\n\n")
	fmt.Fprintf(&b, "%s\n\n", itemSource)
	fmt.Fprintf(&b, "const %s = %s\n\n", key, strconv.Quote(itemSource))
	fmt.Fprintf(&b, "func init() {\n")
	fmt.Fprintf(&b, "\tsatchel.Register(%s, %s, %s)\n", strconv.Quote(unit), strconv.Quote(key), key)
	fmt.Fprintf(&b, "}\n")

	formatted, err := format.Source([]byte(b.String()))
	if err != nil {
		return "", fmt.Errorf("%w: rendering artifact for %s: %v", types.ErrParseFailed, key, err)
	}
	return string(formatted), nil
}
