// Init command: create the configuration and store directories.
// Implements: prd007-satchel-cli R2; prd008-configuration-directories R1.6, R2.4.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configuration and namespace store",
	Long: `Init creates the configuration directory with a default config.yaml,
the namespace store root, and an empty export catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := buildConfig()
		if err != nil {
			return err
		}

		if err := os.MkdirAll(cfg.StoreDir, 0o755); err != nil {
			return fmt.Errorf("%w: %s: %v", types.ErrDirCreate, cfg.StoreDir, err)
		}

		cat, err := openCatalog(cfg)
		if err != nil {
			return err
		}
		defer cat.Close()

		fmt.Printf("Initialized satchel\n  config: %s\n  store:  %s\n", configDir, cfg.StoreDir)
		return nil
	},
}
