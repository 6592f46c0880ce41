// Config loading for the satchel CLI.
// Implements: prd008-configuration-directories (R1.4, R1.5, R1.6, R8).
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys matching prd008 R1.5.
	cfgKeyStoreDir      = "store_dir"
	cfgKeyUnit          = "unit"
	cfgKeyIndirectWrite = "allow_indirect_write"
	cfgKeyIndirectRead  = "allow_indirect_read"

	// Default unit name per prd008 R1.5.
	defaultUnit = "main"
)

// defaultConfigYAML is the content written to config.yaml on first run
// per prd008 R1.6.
const defaultConfigYAML = `# Satchel CLI configuration
# See prd008-configuration-directories for details.

# Exporting unit name
unit: main

# Indirect exchange capabilities
allow_indirect_write: true
allow_indirect_read: true

# Namespace store root (optional; overridable by --store-dir flag)
# store_dir:
`

// loadConfig reads config.yaml from the resolved config directory using Viper.
// It creates the config directory and a default config.yaml on first run.
// A missing config.yaml is not an error (prd008 R8.2).
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyUnit, defaultUnit)
	v.SetDefault(cfgKeyIndirectWrite, true)
	v.SetDefault(cfgKeyIndirectRead, true)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Missing config.yaml is not an error (prd008 R8.2).
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist (prd008 R1.6).
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory (prd008 R1.6, R8.3).
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
