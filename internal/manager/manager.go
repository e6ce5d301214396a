// Package manager provides the mutate-then-invalidate façade over the store
// registry and the search cache. Callers go through the Manager so the cache
// invalidation that must follow every mutation cannot be forgotten at a call
// site.
//
// Identity is a resolved username string: the session layer that maps a
// connection to a user, and any credential checking, live outside this
// module.
package manager

import (
	"context"

	"github.com/dmarinov/linkshelf/internal/search"
	"github.com/dmarinov/linkshelf/internal/store"
	"github.com/dmarinov/linkshelf/pkg/types"
)

// Manager couples one store registry with one search cache.
type Manager struct {
	registry *store.Registry
	finder   *search.Finder
}

// New creates a Manager over the given registry and finder.
func New(registry *store.Registry, finder *search.Finder) *Manager {
	return &Manager{registry: registry, finder: finder}
}

// Register creates an empty store for a new user.
func (m *Manager) Register(username string) error {
	_, err := m.registry.Create(username)
	return err
}

// CreateGroup creates an empty bookmark group for the user.
func (m *Manager) CreateGroup(username, groupName string) error {
	s, err := m.registry.Get(username)
	if err != nil {
		return err
	}
	if err := s.CreateGroup(groupName); err != nil {
		return err
	}
	m.finder.Invalidate(username)
	return nil
}

// AddBookmark adds a bookmark to the named group of the user.
func (m *Manager) AddBookmark(username string, b types.Bookmark, groupName string) error {
	s, err := m.registry.Get(username)
	if err != nil {
		return err
	}
	if err := s.AddBookmark(b, groupName); err != nil {
		return err
	}
	m.finder.Invalidate(username)
	return nil
}

// RemoveBookmark removes the bookmark with the given title (matched
// case-insensitively) from the named group of the user.
func (m *Manager) RemoveBookmark(username, title, groupName string) error {
	s, err := m.registry.Get(username)
	if err != nil {
		return err
	}
	if err := s.RemoveBookmark(title, groupName); err != nil {
		return err
	}
	m.finder.Invalidate(username)
	return nil
}

// CleanUp runs the liveness sweep over every group of the user, removing
// bookmarks whose URLs answer with an error status. Blocks until the sweep
// completes.
func (m *Manager) CleanUp(ctx context.Context, username string) error {
	s, err := m.registry.Get(username)
	if err != nil {
		return err
	}
	if err := s.CleanUp(ctx); err != nil {
		return err
	}
	m.finder.Invalidate(username)
	return nil
}

// ListAll returns all bookmarks of the user.
func (m *Manager) ListAll(username string) ([]types.Bookmark, error) {
	return m.finder.ByUser(username)
}

// ListGroup returns the user's bookmarks in the exactly named group.
func (m *Manager) ListGroup(username, groupName string) ([]types.Bookmark, error) {
	return m.finder.ByGroup(username, groupName)
}

// SearchTags returns the user's bookmarks whose keywords intersect tags.
func (m *Manager) SearchTags(username string, tags []string) ([]types.Bookmark, error) {
	return m.finder.ByTags(username, tags)
}

// SearchTitle returns the user's bookmarks whose title contains substr.
func (m *Manager) SearchTitle(username, substr string) ([]types.Bookmark, error) {
	return m.finder.ByTitle(username, substr)
}

// GroupNames returns the user's group names in order.
func (m *Manager) GroupNames(username string) ([]string, error) {
	s, err := m.registry.Get(username)
	if err != nil {
		return nil, err
	}
	return s.GroupNames(), nil
}

// Usernames returns the registered usernames.
func (m *Manager) Usernames() []string {
	return m.registry.Usernames()
}
