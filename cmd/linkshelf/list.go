// List command prints a user's bookmarks.
package main

import (
	"github.com/spf13/cobra"
)

var listGroup string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's bookmarks, optionally scoped to one group",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, err := requireUser()
		if err != nil {
			return err
		}
		shelf, err := openShelf()
		if err != nil {
			return err
		}

		if listGroup != "" {
			bookmarks, err := shelf.ListGroup(username, listGroup)
			if err != nil {
				return err
			}
			return printBookmarks(bookmarks)
		}
		bookmarks, err := shelf.ListAll(username)
		if err != nil {
			return err
		}
		return printBookmarks(bookmarks)
	},
}

func init() {
	listCmd.Flags().StringVar(&listGroup, "group", "", "restrict to one group")
}
