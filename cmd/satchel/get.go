// Get command: retrieve one artifact from the namespace store.
// Implements: prd007-satchel-cli R5; prd004-import-resolvers R3.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Retrieve an exported item by namespace path",
	Long: `Get resolves a namespace path (for example math::ops::add), reparses
the stored text, and prints the item source. With --json it prints the item
name, kind, and source.`,
	Args: cobra.ExactArgs(1),
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

		if flagJSON {
			return printJSON(item)
		}
		fmt.Println(item.Source)
		return nil
	},
}
