// Group commands create and list bookmark groups.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage bookmark groups",
}

var groupAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a new empty bookmark group",
	Long: `Group add creates a named group on the user's shelf.

Example:
  linkshelf group add Educational --user ivan`,
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
		if err := shelf.CreateGroup(username, args[0]); err != nil {
			return err
		}
		fmt.Printf("Created group %s for user %s\n", args[0], username)
		return nil
	},
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the user's group names",
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
		names, err := shelf.GroupNames(username)
		if err != nil {
			return err
		}
		return printStrings(names)
	},
}

func init() {
	groupCmd.AddCommand(groupAddCmd)
	groupCmd.AddCommand(groupListCmd)
}
