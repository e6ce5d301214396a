// Package search serves the four bookmark query shapes from an
// invalidate-on-write cache of flattened per-user views.
//
// The cache holds a read-only derived copy of a user's bookmarks; it never
// writes back to the store. An entry is present iff no mutation has been
// observed since the last read. There is no TTL and no partial update: a
// mutation drops the whole entry and the next read rebuilds it.
package search

import (
	"sync"

	"github.com/dmarinov/linkshelf/pkg/types"
)

// Source supplies the flattened, ordered bookmark view for one user.
// Satisfied by store.Registry.
type Source interface {
	ListAll(username string) ([]types.Bookmark, error)
}

// Finder answers bookmark queries for any user against cached flattened
// views. Safe for concurrent use: reads, invalidations, and recomputes for
// different users never block each other, and two racing recomputes for the
// same user are harmless because the rebuild is a pure read (last write
// wins).
type Finder struct {
	source Source

	mu     sync.RWMutex
	cached map[string][]types.Bookmark
}

// NewFinder creates a Finder over the given store source.
func NewFinder(source Source) *Finder {
	return &Finder{
		source: source,
		cached: make(map[string][]types.Bookmark),
	}
}

// ByUser returns all bookmarks for the user, ordered by group name then
// title. A cache hit returns the stored view; a miss rebuilds it from the
// store. Unknown users surface the store's ErrUserNotFound.
func (f *Finder) ByUser(username string) ([]types.Bookmark, error) {
	f.mu.RLock()
	view, ok := f.cached[username]
	f.mu.RUnlock()
	if ok {
		return view, nil
	}

	// Recompute outside any lock; the flatten is a pure read of the store.
	view, err := f.source.ListAll(username)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.cached[username] = view
	f.mu.Unlock()
	return view, nil
}

// ByGroup returns the user's bookmarks whose group name equals groupName
// exactly. An empty result is a slice, not an error.
func (f *Finder) ByGroup(username, groupName string) ([]types.Bookmark, error) {
	return f.filter(username, func(b types.Bookmark) bool {
		return b.GroupName == groupName
	})
}

// ByTags returns the user's bookmarks whose keyword set intersects tags
// (non-empty intersection, not subset).
func (f *Finder) ByTags(username string, tags []string) ([]types.Bookmark, error) {
	return f.filter(username, func(b types.Bookmark) bool {
		return b.HasAnyKeyword(tags)
	})
}

// ByTitle returns the user's bookmarks whose title contains substr,
// case-insensitively.
func (f *Finder) ByTitle(username, substr string) ([]types.Bookmark, error) {
	return f.filter(username, func(b types.Bookmark) bool {
		return b.MatchesTitle(substr)
	})
}

// Invalidate unconditionally drops the cached view for username. Idempotent;
// safe to call when no entry exists. Every mutation for a user must be
// followed by this call before the next read is guaranteed fresh.
func (f *Finder) Invalidate(username string) {
	f.mu.Lock()
	delete(f.cached, username)
	f.mu.Unlock()
}

// Cached reports whether a view is currently cached for username.
func (f *Finder) Cached(username string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.cached[username]
	return ok
}

func (f *Finder) filter(username string, keep func(types.Bookmark) bool) ([]types.Bookmark, error) {
	view, err := f.ByUser(username)
	if err != nil {
		return nil, err
	}
	out := make([]types.Bookmark, 0, len(view))
	for _, b := range view {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out, nil
}
