package types

import (
	"sort"
	"strings"
)

// Group is a named, mutable collection of bookmarks keyed by case-sensitive
// title. A Group is plain data; callers are responsible for synchronization.
type Group struct {
	Name      string              `json:"name"`
	Bookmarks map[string]Bookmark `json:"bookmarks"`
}

// NewGroup returns an empty group with the given name.
func NewGroup(name string) *Group {
	return &Group{
		Name:      name,
		Bookmarks: make(map[string]Bookmark),
	}
}

// Add inserts the bookmark keyed by its title. If a bookmark with the same
// title is already present the call is a no-op and Add returns false; the
// existing entry is never overwritten.
func (g *Group) Add(b Bookmark) bool {
	if _, ok := g.Bookmarks[b.Title]; ok {
		return false
	}
	if g.Bookmarks == nil {
		g.Bookmarks = make(map[string]Bookmark)
	}
	g.Bookmarks[b.Title] = b
	return true
}

// Remove deletes the bookmark with the given exact title.
func (g *Group) Remove(title string) {
	delete(g.Bookmarks, title)
}

// RemoveAll deletes every bookmark whose exact title appears in titles.
func (g *Group) RemoveAll(titles []string) {
	for _, t := range titles {
		delete(g.Bookmarks, t)
	}
}

// FindFold returns the bookmark whose title matches the given title
// case-insensitively, if any.
func (g *Group) FindFold(title string) (Bookmark, bool) {
	for t, b := range g.Bookmarks {
		if strings.EqualFold(t, title) {
			return b, true
		}
	}
	return Bookmark{}, false
}

// Contains reports whether a bookmark with the exact title is present.
func (g *Group) Contains(title string) bool {
	_, ok := g.Bookmarks[title]
	return ok
}

// List returns the group's bookmarks ordered by title.
func (g *Group) List() []Bookmark {
	out := make([]Bookmark, 0, len(g.Bookmarks))
	for _, b := range g.Bookmarks {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

// Clone returns a deep copy of the group.
func (g *Group) Clone() *Group {
	cp := NewGroup(g.Name)
	for t, b := range g.Bookmarks {
		cp.Bookmarks[t] = b
	}
	return cp
}
