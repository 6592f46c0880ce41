// Package main provides the satchel CLI.
// Implements: prd007-satchel-cli;
//
//	docs/ARCHITECTURE § CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the CLI exit code: user errors (bad paths,
// conflicts, disabled capabilities) exit 1, system errors exit 2.
// Implements: prd007-satchel-cli R8.
func exitCode(err error) int {
	switch {
	case errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrStoreConflict),
		errors.Is(err, types.ErrUnsupportedItem),
		errors.Is(err, types.ErrInvalidOverride),
		errors.Is(err, types.ErrCapabilityDisabled),
		errors.Is(err, types.ErrParseFailed):
		return exitUserError
	default:
		return exitSysError
	}
}
