// Search commands query a user's bookmarks by title substring or tags.
package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search a user's bookmarks",
}

var searchTitleCmd = &cobra.Command{
	Use:   "title <substring>",
	Short: "Find bookmarks whose title contains the substring (case-insensitive)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username, err := requireUser()
		if err != nil {
			return err
		}
		shelf, err := openShelf()
		if err != nil {
			return err
		}
		bookmarks, err := shelf.SearchTitle(username, args[0])
		if err != nil {
			return err
		}
		return printBookmarks(bookmarks)
	},
}

var searchTagsCmd = &cobra.Command{
	Use:   "tags <tag,tag,...>",
	Short: "Find bookmarks whose keywords intersect the given tags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username, err := requireUser()
		if err != nil {
			return err
		}
		shelf, err := openShelf()
		if err != nil {
			return err
		}
		bookmarks, err := shelf.SearchTags(username, strings.Split(args[0], ","))
		if err != nil {
			return err
		}
		return printBookmarks(bookmarks)
	},
}

func init() {
	searchCmd.AddCommand(searchTitleCmd)
	searchCmd.AddCommand(searchTagsCmd)
}
