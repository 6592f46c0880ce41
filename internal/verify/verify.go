// Package verify checks that a reconstructed item is self-contained by
// loading its source into a fresh interpreter session. An item that pulls in
// identifiers from its home unit fails here rather than at the consumer's
// build.
// Implements: prd009-verification R1, R2.
package verify

import (
	"fmt"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// newSession creates an interpreter with the standard library available.
func newSession() (*interp.Interpreter, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("loading stdlib symbols: %w", err)
	}
	return i, nil
}

// Item evaluates the item's source in a fresh session. A nil return means
// the text stands on its own.
func Item(item *types.Item) error {
	i, err := newSession()
	if err != nil {
		return err
	}
	if _, err := i.Eval(item.Source); err != nil {
		return fmt.Errorf("item %s does not evaluate standalone: %w", item.Name, err)
	}
	return nil
}

// Eval loads the item and then evaluates expr against it, returning the
// result's printed form. Useful for spot-checking an exported function
// ("add(1, 2)") without compiling a consumer.
func Eval(item *types.Item, expr string) (string, error) {
	i, err := newSession()
	if err != nil {
		return "", err
	}
	if _, err := i.Eval(item.Source); err != nil {
		return "", fmt.Errorf("item %s does not evaluate standalone: %w", item.Name, err)
	}
	v, err := i.Eval(expr)
	if err != nil {
		return "", fmt.Errorf("evaluating %q against %s: %w", expr, item.Name, err)
	}
	if !v.IsValid() {
		return "", nil
	}
	return fmt.Sprint(v.Interface()), nil
}
