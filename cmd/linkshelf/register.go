// Register and users commands manage the set of known users.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Register a new user with an empty shelf",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		shelf, err := openShelf()
		if err != nil {
			return err
		}
		username := args[0]
		if err := shelf.Register(username); err != nil {
			return err
		}
		fmt.Printf("Registered user %s\n", username)
		return nil
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered usernames",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		shelf, err := openShelf()
		if err != nil {
			return err
		}
		return printStrings(shelf.Usernames())
	},
}
