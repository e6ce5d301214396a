// Add command stores a new bookmark in a group.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmarinov/linkshelf/pkg/types"
)

var (
	addGroup string
	addTitle string
	addTags  []string
)

var addCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Add a bookmark to a group",
	Long: `Add stores a bookmark for the given URL in the named group.

Without --title the URL host is used as the title. Adding a title that
already exists in the group is a no-op; the stored bookmark is kept.

Example:
  linkshelf add https://go.dev --group Educational --title "Go" --tags go,lang --user ivan`,
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

		source := types.StaticSource{Title: addTitle, Keywords: addTags}
		b, err := source.Resolve(cmd.Context(), args[0], addGroup)
		if err != nil {
			return err
		}
		if err := shelf.AddBookmark(username, b, addGroup); err != nil {
			return err
		}
		fmt.Printf("Added bookmark %s to group %s of user %s\n", b.Title, addGroup, username)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addGroup, "group", "", "target group name (required)")
	addCmd.Flags().StringVar(&addTitle, "title", "", "bookmark title (default: URL host)")
	addCmd.Flags().StringSliceVar(&addTags, "tags", nil, "comma-separated keywords")
	_ = addCmd.MarkFlagRequired("group")
}
