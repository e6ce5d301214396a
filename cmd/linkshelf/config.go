// Config loading for the linkshelf CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/dmarinov/linkshelf/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileFull = "config.yaml"

	// Config keys.
	cfgKeyDataDir      = "data_dir"
	cfgKeyProbeTimeout = "probe_timeout"
	cfgKeyProbeWorkers = "probe_workers"
	cfgKeyProbeRate    = "probe_rate"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Linkshelf CLI configuration

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Liveness sweep tuning
# probe_timeout: 5s
# probe_workers: 8
# probe_rate: 20
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on first
// run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyProbeTimeout, types.DefaultProbeTimeout)
	v.SetDefault(cfgKeyProbeWorkers, types.DefaultProbeWorkers)
	v.SetDefault(cfgKeyProbeRate, types.DefaultProbeRate)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileFull)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
