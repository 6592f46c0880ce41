// Rm command: remove an artifact from the store and catalog.
// Implements: prd007-satchel-cli R7.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

var rmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Remove an exported artifact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := types.ParsePath(args[0])
		if err != nil {
			return err
		}
		if len(path) < 2 {
			return fmt.Errorf("%w: path must name an artifact inside a namespace", types.ErrParseFailed)
		}

		cfg, err := buildConfig()
		if err != nil {
			return err
		}

		if err := openStore(cfg).Remove(path); err != nil {
			return err
		}

		cat, err := openCatalog(cfg)
		if err != nil {
			return err
		}
		defer cat.Close()

		if err := cat.Remove(path.Parent().String(), path.Last()); err != nil {
			return err
		}

		fmt.Printf("Removed %s\n", path)
		return nil
	},
}
