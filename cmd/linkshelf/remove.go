// Remove command deletes a bookmark from a group.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeGroup string

var removeCmd = &cobra.Command{
	Use:   "remove <title>",
	Short: "Remove a bookmark from a group by title",
	Long: `Remove deletes the bookmark whose title matches the argument
case-insensitively from the named group.

Example:
  linkshelf remove "Go" --group Educational --user ivan`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username, err := requireUser()
		if err != nil {
			return err
		}
		shelf, err := openShelf()
		if err != nil {
			return err
		}
		if err := shelf.RemoveBookmark(username, args[0], removeGroup); err != nil {
			return err
		}
		fmt.Printf("Removed bookmark %s from group %s of user %s\n", args[0], removeGroup, username)
		return nil
	},
}

func init() {
	removeCmd.Flags().StringVar(&removeGroup, "group", "", "group name (required)")
	_ = removeCmd.MarkFlagRequired("group")
}
