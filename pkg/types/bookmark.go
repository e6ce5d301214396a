package types

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Bookmark is a single stored link. Bookmarks are immutable once created;
// the case-sensitive title is the identity key within the owning group.
// Keywords are stored lower-cased and deduplicated.
type Bookmark struct {
	BookmarkID string    `json:"bookmark_id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Keywords   []string  `json:"keywords,omitempty"`
	GroupName  string    `json:"group_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewBookmark builds a validated Bookmark with a fresh UUIDv7 ID.
func NewBookmark(title, rawURL string, keywords []string, groupName string) (Bookmark, error) {
	b := Bookmark{
		BookmarkID: uuid.Must(uuid.NewV7()).String(),
		Title:      title,
		URL:        rawURL,
		Keywords:   NormalizeKeywords(keywords),
		GroupName:  groupName,
		CreatedAt:  time.Now().UTC(),
	}
	if err := b.Validate(); err != nil {
		return Bookmark{}, err
	}
	return b, nil
}

// Validate checks that the bookmark carries a non-blank title and group name
// and a syntactically valid absolute URL. Returns ErrInvalidArgument wrapped
// with the offending field on failure.
func (b Bookmark) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("%w: bookmark title must not be blank", ErrInvalidArgument)
	}
	if strings.TrimSpace(b.GroupName) == "" {
		return fmt.Errorf("%w: bookmark group name must not be blank", ErrInvalidArgument)
	}
	if strings.TrimSpace(b.URL) == "" {
		return fmt.Errorf("%w: bookmark URL must not be blank", ErrInvalidArgument)
	}
	u, err := url.Parse(b.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: malformed bookmark URL %q", ErrInvalidArgument, b.URL)
	}
	return nil
}

// HasAnyKeyword reports whether the bookmark's keyword set intersects tags.
// Matching is case-insensitive; an empty tag set never matches.
func (b Bookmark) HasAnyKeyword(tags []string) bool {
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		for _, kw := range b.Keywords {
			if kw == tag {
				return true
			}
		}
	}
	return false
}

// MatchesTitle reports whether the bookmark title contains substr,
// case-insensitively. An empty substring matches every bookmark.
func (b Bookmark) MatchesTitle(substr string) bool {
	return strings.Contains(strings.ToLower(b.Title), strings.ToLower(substr))
}

// NormalizeKeywords lower-cases, trims, deduplicates, and sorts keywords.
// Blank entries are dropped. A nil result means no keywords.
func NormalizeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	var out []string
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}
