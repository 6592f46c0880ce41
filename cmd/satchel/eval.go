// Eval command: check that a stored artifact stands on its own.
// Implements: prd007-satchel-cli R9; prd009-verification.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/internal/verify"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

var evalCmd = &cobra.Command{
	Use:   "eval <path> [expr]",
	Short: "Verify a stored artifact evaluates standalone",
	Long: `Eval retrieves the artifact at the given namespace path and loads it
into a fresh interpreter session. An item that references identifiers from
its home unit fails here instead of at a consumer's build. An optional
expression is evaluated against the loaded item and its result printed,
e.g. satchel eval math::ops::add 'add(1, 2)'.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := types.ParsePath(args[0])
		if err != nil {
			return err
		}

		cfg, err := buildConfig()
		if err != nil {
			return err
		}

		item, err := openResolver(cfg).ResolveIndirect(path)
		if err != nil {
			return err
		}

		if len(args) == 1 {
			if err := verify.Item(item); err != nil {
				return err
			}
			fmt.Printf("%s evaluates standalone\n", path)
			return nil
		}

		result, err := verify.Eval(item, args[1])
		if err != nil {
			return err
		}
		fmt.Println(result)
		return nil
	},
}
