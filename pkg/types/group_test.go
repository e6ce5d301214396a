package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBookmark(t *testing.T, title, url string, keywords []string, group string) Bookmark {
	t.Helper()
	b, err := NewBookmark(title, url, keywords, group)
	require.NoError(t, err)
	return b
}

func TestGroupAddIsDeDup(t *testing.T) {
	g := NewGroup("Dev")
	first := mustBookmark(t, "Go", "https://go.dev", []string{"go"}, "Dev")
	second := mustBookmark(t, "Go", "https://golang.org", []string{"other"}, "Dev")

	assert.True(t, g.Add(first))
	assert.False(t, g.Add(second), "same title must be a no-op")

	got, ok := g.FindFold("Go")
	require.True(t, ok)
	assert.Equal(t, "https://go.dev", got.URL, "first add must survive")
	assert.Len(t, g.Bookmarks, 1)
}

func TestGroupFindFold(t *testing.T) {
	g := NewGroup("Dev")
	g.Add(mustBookmark(t, "Github", "https://github.com", nil, "Dev"))

	_, ok := g.FindFold("gItHuB")
	assert.True(t, ok)
	_, ok = g.FindFold("gitlab")
	assert.False(t, ok)
}

func TestGroupRemoveAll(t *testing.T) {
	g := NewGroup("Dev")
	g.Add(mustBookmark(t, "A", "https://a.example.com", nil, "Dev"))
	g.Add(mustBookmark(t, "B", "https://b.example.com", nil, "Dev"))
	g.Add(mustBookmark(t, "C", "https://c.example.com", nil, "Dev"))

	g.RemoveAll([]string{"A", "C", "missing"})

	assert.Len(t, g.Bookmarks, 1)
	assert.True(t, g.Contains("B"))
}

func TestGroupListOrdered(t *testing.T) {
	g := NewGroup("Dev")
	g.Add(mustBookmark(t, "Zebra", "https://z.example.com", nil, "Dev"))
	g.Add(mustBookmark(t, "Alpha", "https://a.example.com", nil, "Dev"))
	g.Add(mustBookmark(t, "Mid", "https://m.example.com", nil, "Dev"))

	list := g.List()
	require.Len(t, list, 3)
	assert.Equal(t, "Alpha", list[0].Title)
	assert.Equal(t, "Mid", list[1].Title)
	assert.Equal(t, "Zebra", list[2].Title)
}

func TestGroupClone(t *testing.T) {
	g := NewGroup("Dev")
	g.Add(mustBookmark(t, "Go", "https://go.dev", nil, "Dev"))

	cp := g.Clone()
	cp.Remove("Go")

	assert.True(t, g.Contains("Go"), "clone mutation must not affect original")
	assert.False(t, cp.Contains("Go"))
}
