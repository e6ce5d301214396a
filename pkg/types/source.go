package types

import (
	"context"
	"net/url"
)

// BookmarkSource turns a raw URL into a fully-populated Bookmark for the
// given group. Title and keyword extraction (page fetch, tokenizing,
// stemming) is the concern of implementations outside this module; the store
// only ever consumes the finished value.
type BookmarkSource interface {
	Resolve(ctx context.Context, rawURL, groupName string) (Bookmark, error)
}

// StaticSource is a trivial BookmarkSource that performs no network fetch.
// The title defaults to the URL host when none is supplied. Used by the CLI
// and in tests; production deployments plug in a real extractor.
type StaticSource struct {
	Title    string
	Keywords []string
}

// Resolve implements BookmarkSource.
func (s StaticSource) Resolve(_ context.Context, rawURL, groupName string) (Bookmark, error) {
	title := s.Title
	if title == "" {
		u, err := url.Parse(rawURL)
		if err == nil {
			title = u.Host
		}
	}
	return NewBookmark(title, rawURL, s.Keywords, groupName)
}
