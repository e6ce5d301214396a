// Watch command follows the data directory and reports shelf changes.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmarinov/linkshelf/internal/search"
	"github.com/dmarinov/linkshelf/internal/store"
)

// reportingInvalidator drops the cached view and prints the change, so
// external edits (a sync tool, a restore, a manual fix) are visible as they
// land.
type reportingInvalidator struct {
	finder *search.Finder
}

func (r *reportingInvalidator) Invalidate(username string) {
	r.finder.Invalidate(username)
	fmt.Printf("shelf changed: %s\n", username)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the data directory and report shelf changes",
	Long: `Watch blocks and reports every change to a user's shelf file in the data
directory until interrupted. Changes made by other processes invalidate this
process's search cache as they happen.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := store.NewRegistry(shelfConfig, nil, nil)
		if err != nil {
			return fmt.Errorf("open registry: %w", err)
		}
		if err := registry.Load(); err != nil {
			return fmt.Errorf("load stores: %w", err)
		}
		finder := search.NewFinder(registry)

		w, err := store.NewWatcher(shelfConfig.DataDir, &reportingInvalidator{finder: finder}, nil)
		if err != nil {
			return fmt.Errorf("watch data dir: %w", err)
		}
		defer w.Close()
		w.Start(cmd.Context())

		fmt.Printf("watching %s\n", shelfConfig.DataDir)
		<-cmd.Context().Done()
		return nil
	},
}
