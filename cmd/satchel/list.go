// List command: enumerate artifacts in a namespace.
// Implements: prd007-satchel-cli R6; prd006-export-catalog R3.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

var listCatalog bool

var listCmd = &cobra.Command{
	Use:   "list [namespace]",
	Short: "List exported items",
	Long: `List enumerates the artifacts directly under a namespace, sorted by
name. Without a namespace it lists every export recorded in the catalog.
With --catalog the catalog rows (key, kind, size, timestamp) are shown for
the namespace instead of the store listing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig()
		if err != nil {
			return err
		}

		if len(args) == 0 || listCatalog {
			return listFromCatalog(cfg, args)
		}
		return listFromStore(cfg, args[0])
	},
}

func init() {
	listCmd.Flags().BoolVar(&listCatalog, "catalog", false, "show catalog rows instead of store contents")
}

// listFromStore lists the live store contents of one namespace.
func listFromStore(cfg types.Config, namespace string) error {
	path, err := types.ParsePath(namespace)
	if err != nil {
		return err
	}

	entries, err := openResolver(cfg).ResolveNamespace(path)
	if err != nil {
		return err
	}

	if flagJSON {
		out := make([]map[string]string, 0, len(entries))
		for _, e := range entries {
			out = append(out, map[string]string{
				"name": e.Name,
				"kind": string(e.Item.Kind),
			})
		}
		return printJSON(out)
	}

	for _, e := range entries {
		fmt.Printf("%-12s %s\n", e.Item.Kind, e.Name)
	}
	return nil
}

// listFromCatalog lists catalog rows, optionally filtered to one namespace.
func listFromCatalog(cfg types.Config, args []string) error {
	cat, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer cat.Close()

	namespace := ""
	if len(args) == 1 {
		namespace = args[0]
	}

	exports, err := cat.List(namespace)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(exports)
	}

	for _, e := range exports {
		fmt.Printf("%-24s %-12s %-8s %6dB  %s\n",
			e.Namespace, e.Name, e.Kind, e.Size, e.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
