package manager

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarinov/linkshelf/internal/search"
	"github.com/dmarinov/linkshelf/internal/store"
	"github.com/dmarinov/linkshelf/pkg/types"
)

func setupManager(t *testing.T) (*Manager, *search.Finder) {
	t.Helper()
	registry, err := store.NewRegistry(types.Config{DataDir: t.TempDir()}, nil, nil)
	require.NoError(t, err)
	finder := search.NewFinder(registry)
	return New(registry, finder), finder
}

func addBookmark(t *testing.T, m *Manager, user, title, url, group string) {
	t.Helper()
	b, err := types.NewBookmark(title, url, []string{"tag"}, group)
	require.NoError(t, err)
	require.NoError(t, m.AddBookmark(user, b, group))
}

func TestMutationsInvalidateCache(t *testing.T) {
	m, finder := setupManager(t)
	require.NoError(t, m.Register("ivan"))
	require.NoError(t, m.CreateGroup("ivan", "Dev"))

	// Prime the cache.
	_, err := m.ListAll("ivan")
	require.NoError(t, err)
	require.True(t, finder.Cached("ivan"))

	addBookmark(t, m, "ivan", "Go", "https://go.dev", "Dev")
	assert.False(t, finder.Cached("ivan"), "add must drop the cached view")

	got, err := m.ListAll("ivan")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Go", got[0].Title, "next read reflects the mutation")

	require.NoError(t, m.RemoveBookmark("ivan", "go", "Dev"))
	got, err = m.ListAll("ivan")
	require.NoError(t, err)
	assert.Empty(t, got, "removal visible on next read")
}

func TestAddThenByGroupContainsExactlyTheBookmark(t *testing.T) {
	m, _ := setupManager(t)
	require.NoError(t, m.Register("ivan"))
	require.NoError(t, m.CreateGroup("ivan", "Dev"))

	addBookmark(t, m, "ivan", "Go", "https://go.dev", "Dev")
	// Repeated identical add neither duplicates nor overwrites.
	addBookmark(t, m, "ivan", "Go", "https://go.dev", "Dev")

	got, err := m.ListGroup("ivan", "Dev")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Go", got[0].Title)
}

func TestMutationIsolationBetweenUsers(t *testing.T) {
	m, finder := setupManager(t)
	require.NoError(t, m.Register("ivan"))
	require.NoError(t, m.Register("maria"))
	require.NoError(t, m.CreateGroup("ivan", "Dev"))
	require.NoError(t, m.CreateGroup("maria", "Dev"))

	_, err := m.ListAll("maria")
	require.NoError(t, err)
	require.True(t, finder.Cached("maria"))

	addBookmark(t, m, "ivan", "Go", "https://go.dev", "Dev")
	assert.True(t, finder.Cached("maria"), "one user's mutation must not drop another's view")
}

func TestFailedMutationSurfacesError(t *testing.T) {
	m, _ := setupManager(t)
	require.NoError(t, m.Register("ivan"))

	assert.ErrorIs(t, m.CreateGroup("ghost", "Dev"), types.ErrUserNotFound)
	assert.ErrorIs(t, m.RemoveBookmark("ivan", "X", "Nope"), types.ErrGroupNotFound)
	assert.ErrorIs(t, m.CleanUp(context.Background(), "ghost"), types.ErrUserNotFound)

	b, err := types.NewBookmark("Go", "https://go.dev", nil, "Nope")
	require.NoError(t, err)
	assert.ErrorIs(t, m.AddBookmark("ivan", b, "Nope"), types.ErrGroupNotFound)
}

func TestConcurrentReadsAfterMutation(t *testing.T) {
	m, _ := setupManager(t)
	require.NoError(t, m.Register("ivan"))
	require.NoError(t, m.CreateGroup("ivan", "Dev"))
	addBookmark(t, m, "ivan", "Go", "https://go.dev", "Dev")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := m.ListAll("ivan")
			assert.NoError(t, err)
			assert.Len(t, got, 1, "mutation reflected exactly once")
		}()
	}
	wg.Wait()
}
