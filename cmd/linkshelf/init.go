// Init command creates the config and data directories.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the linkshelf directories",
	Long: `Init creates the configuration directory with a default config.yaml and
the data directory that will hold one JSON file per registered user.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Config dir and config.yaml already exist by the time we get here;
		// PersistentPreRunE created them. Only the data dir remains.
		if err := os.MkdirAll(shelfConfig.DataDir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		fmt.Printf("Initialized linkshelf data dir at %s\n", shelfConfig.DataDir)
		return nil
	},
}
