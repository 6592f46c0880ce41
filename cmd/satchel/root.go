// Root command for the satchel CLI.
// Implements: prd007-satchel-cli (R1, R6); prd008-configuration-directories (R1, R2, R8).
package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/satchel/internal/paths"
	"github.com/mesh-intelligence/satchel/pkg/satchel"
)

// Exit codes per prd007-satchel-cli R8.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagStoreDir  string
	flagUnit      string
	flagJSON      bool
	flagVerbose   bool
)

// Values loaded from config.yaml by PersistentPreRunE so all subcommands
// can use them.
var (
	configStoreDir      string
	configUnit          string
	configIndirectWrite bool
	configIndirectRead  bool
)

// logger is the process logger; a nop logger unless --verbose is set.
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:     "satchel",
	Short:   "Satchel exchanges Go source fragments between compilation units",
	Version: satchel.Version,
	Long: `Satchel captures the exact source of a named top-level declaration,
registers a forwarding artifact for direct retrieval, and can persist the
text into a filesystem namespace store so that units with no dependency
relationship can reconstruct it at their own build time.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configStoreDir = cfg.GetString(cfgKeyStoreDir)
		configUnit = cfg.GetString(cfgKeyUnit)
		configIndirectWrite = cfg.GetBool(cfgKeyIndirectWrite)
		configIndirectRead = cfg.GetBool(cfgKeyIndirectRead)

		if flagVerbose {
			logger, err = zap.NewDevelopment()
			if err != nil {
				return err
			}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagStoreDir, "store-dir", "", "namespace store root (default: $(CWD)/.satchel-store)")
	rootCmd.PersistentFlags().StringVar(&flagUnit, "unit", "", "exporting unit name (default: from config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(evalCmd)
}

// resolveStoreDir returns the store root following prd008 R2.3 precedence:
// --store-dir flag > config.yaml store_dir > SATCHEL_STORE_DIR env > default.
func resolveStoreDir() (string, error) {
	return paths.ResolveStoreDir(flagStoreDir, configStoreDir)
}

// resolveConfigDir returns the configuration directory following prd008 R1.3
// precedence: --config-dir flag > SATCHEL_CONFIG_DIR env > DefaultConfigDir().
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
