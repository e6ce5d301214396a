// Cleanup command runs the liveness sweep for one user.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Probe every bookmark URL and remove confirmed dead links",
	Long: `Cleanup probes every bookmark of the user concurrently and removes the
ones whose servers answer with an HTTP error status (4xx or 5xx). Unreachable
servers are treated as inconclusive and their bookmarks are kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, err := requireUser()
		if err != nil {
			return err
		}
		shelf, err := openShelf()
		if err != nil {
			return err
		}
		if err := shelf.CleanUp(cmd.Context(), username); err != nil {
			return err
		}
		fmt.Printf("Swept dead bookmarks for user %s\n", username)
		return nil
	},
}
