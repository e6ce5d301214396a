// Root command and shared wiring for the linkshelf CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmarinov/linkshelf/internal/manager"
	"github.com/dmarinov/linkshelf/internal/paths"
	"github.com/dmarinov/linkshelf/internal/search"
	"github.com/dmarinov/linkshelf/internal/store"
	"github.com/dmarinov/linkshelf/internal/sweep"
	"github.com/dmarinov/linkshelf/pkg/linkshelf"
	"github.com/dmarinov/linkshelf/pkg/types"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagUser      string
	flagJSON      bool
	flagVerbose   bool
)

// shelfConfig holds the effective config loaded by PersistentPreRunE so
// subcommands can open the shelf without re-reading config.yaml.
var shelfConfig types.Config

var rootCmd = &cobra.Command{
	Use:     "linkshelf",
	Short:   "Linkshelf is a per-user bookmark group store",
	Version: linkshelf.Version,
	Long: `Linkshelf organizes web bookmarks into named groups per user, persists
each user's shelf to a human-readable JSON file, keeps stored links free of
dead URLs via a concurrent liveness sweep, and answers searches by owner,
group, tag, and title substring from an invalidate-on-write cache.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()

		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		dataDir, err := paths.ResolveDataDir(flagDataDir, cfg.GetString(cfgKeyDataDir))
		if err != nil {
			return err
		}

		shelfConfig = types.Config{
			DataDir:      dataDir,
			ProbeTimeout: cfg.GetDuration(cfgKeyProbeTimeout),
			ProbeWorkers: cfg.GetInt(cfgKeyProbeWorkers),
			ProbeRate:    cfg.GetFloat64(cfgKeyProbeRate),
		}.WithDefaults()
		return shelfConfig.Validate()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $(CWD)/.linkshelf)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.linkshelf-db)")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "username the command acts for")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(watchCmd)
}

// openShelf builds the full stack for one command invocation: registry over
// the data dir, rehydrated stores, liveness sweeper, search cache, and the
// manager facade tying them together.
func openShelf() (*manager.Manager, error) {
	sweeper := sweep.New(shelfConfig.ProbeWorkers, shelfConfig.ProbeTimeout,
		sweep.WithRate(shelfConfig.ProbeRate))

	registry, err := store.NewRegistry(shelfConfig, sweeper, nil)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	if err := registry.Load(); err != nil {
		return nil, fmt.Errorf("load stores: %w", err)
	}

	finder := search.NewFinder(registry)
	return manager.New(registry, finder), nil
}

// requireUser returns the --user flag value or an error when it is missing.
func requireUser() (string, error) {
	if flagUser == "" {
		return "", fmt.Errorf("--user is required for this command")
	}
	return flagUser, nil
}
