package store

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarinov/linkshelf/pkg/types"
)

func setupRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(types.Config{DataDir: t.TempDir()}, nil, nil)
	require.NoError(t, err)
	return r
}

func TestRegistryCreateAndGet(t *testing.T) {
	r := setupRegistry(t)

	s, err := r.Create("ivan")
	require.NoError(t, err)
	assert.Equal(t, "ivan", s.Username())

	got, err := r.Get("ivan")
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = r.Create("ivan")
	assert.ErrorIs(t, err, types.ErrUserExists)

	_, err = r.Get("missing")
	assert.ErrorIs(t, err, types.ErrUserNotFound)
}

func TestRegistryCreatePersistsImmediately(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRegistry(types.Config{DataDir: dir}, nil, nil)
	require.NoError(t, err)

	_, err = r.Create("ivan")
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "ivan.json"))
	assert.NoError(t, statErr, "registered user must exist on disk before any group")
}

func TestRegistryRejectsUnusableUsernames(t *testing.T) {
	r := setupRegistry(t)

	for _, username := range []string{"", "   ", "a/b", `a\b`, "..", ".hidden"} {
		_, err := r.Create(username)
		assert.ErrorIs(t, err, types.ErrInvalidArgument, "username %q", username)
	}
}

func TestRegistryLoad(t *testing.T) {
	dir := t.TempDir()

	// First process: two users with some content.
	first, err := NewRegistry(types.Config{DataDir: dir}, nil, nil)
	require.NoError(t, err)
	ivan, err := first.Create("ivan")
	require.NoError(t, err)
	require.NoError(t, ivan.CreateGroup("Dev"))
	_, err = first.Create("maria")
	require.NoError(t, err)

	// Files the loader must skip.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{oops"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".linkshelf-leftover.tmp"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	// Second process: rehydrate.
	second, err := NewRegistry(types.Config{DataDir: dir}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, second.Load())

	assert.ElementsMatch(t, []string{"ivan", "maria"}, second.Usernames())

	loaded, err := second.Get("ivan")
	require.NoError(t, err)
	assert.Equal(t, []string{"Dev"}, loaded.GroupNames())
}

func TestRegistryListAll(t *testing.T) {
	r := setupRegistry(t)
	s, err := r.Create("ivan")
	require.NoError(t, err)
	require.NoError(t, s.CreateGroup("Dev"))

	b, err := types.NewBookmark("Go", "https://go.dev", nil, "Dev")
	require.NoError(t, err)
	require.NoError(t, s.AddBookmark(b, "Dev"))

	all, err := r.ListAll("ivan")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Go", all[0].Title)

	_, err = r.ListAll("missing")
	assert.ErrorIs(t, err, types.ErrUserNotFound)
}

func TestRegistryConcurrentCreate(t *testing.T) {
	r := setupRegistry(t)

	var wg sync.WaitGroup
	users := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for _, u := range users {
		u := u
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Create(u)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.ElementsMatch(t, users, r.Usernames())
}
