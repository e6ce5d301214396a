// Shared output helpers for linkshelf CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dmarinov/linkshelf/pkg/types"
)

// printBookmarks writes bookmarks to stdout, as indented JSON under --json
// or as one aligned line per bookmark otherwise.
func printBookmarks(bookmarks []types.Bookmark) error {
	if flagJSON {
		out, err := json.MarshalIndent(bookmarks, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal bookmarks: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	if len(bookmarks) == 0 {
		fmt.Println("No bookmarks found.")
		return nil
	}
	for _, b := range bookmarks {
		line := fmt.Sprintf("[%s] %s  %s", b.GroupName, b.Title, b.URL)
		if len(b.Keywords) > 0 {
			line += "  (" + strings.Join(b.Keywords, ", ") + ")"
		}
		fmt.Println(line)
	}
	return nil
}

// printStrings writes a sorted name list, as JSON under --json.
func printStrings(names []string) error {
	sort.Strings(names)
	if flagJSON {
		out, err := json.MarshalIndent(names, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal names: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}
	if len(names) == 0 {
		fmt.Println("None.")
		return nil
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}
