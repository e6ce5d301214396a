// Package integration exercises the full stack, from the manager façade down
// to the files on disk, the way a deployment wires it: one sweeper, one
// registry over a data directory, one finder caching over the registry.
package integration

import (
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmarinov/linkshelf/internal/manager"
	"github.com/dmarinov/linkshelf/internal/search"
	"github.com/dmarinov/linkshelf/internal/store"
	"github.com/dmarinov/linkshelf/internal/sweep"
	"github.com/dmarinov/linkshelf/pkg/types"
)

// TestEnv provides an isolated environment with its own data directory and a
// fully wired manager.
type TestEnv struct {
	t       *testing.T
	DataDir string
	Manager *manager.Manager
	Finder  *search.Finder
}

// NewTestEnv wires a manager over a fresh temp data directory.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	return NewTestEnvWithClient(t, nil)
}

// NewTestEnvWithClient wires a manager whose sweeper probes through the given
// HTTP client. A nil client uses the default.
func NewTestEnvWithClient(t *testing.T, client *http.Client) *TestEnv {
	t.Helper()

	dataDir := t.TempDir()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	opts := []sweep.Option{sweep.WithLogger(log)}
	if client != nil {
		opts = append(opts, sweep.WithClient(client))
	}
	sweeper := sweep.New(4, 2*time.Second, opts...)

	registry, err := store.NewRegistry(types.Config{DataDir: dataDir}, sweeper, log)
	if err != nil {
		t.Fatalf("failed to create registry: %v", err)
	}
	if err := registry.Load(); err != nil {
		t.Fatalf("failed to load registry: %v", err)
	}
	finder := search.NewFinder(registry)

	return &TestEnv{
		t:       t,
		DataDir: dataDir,
		Manager: manager.New(registry, finder),
		Finder:  finder,
	}
}

// Reopen builds a second manager over the same data directory, simulating a
// process restart.
func (e *TestEnv) Reopen() *manager.Manager {
	e.t.Helper()

	registry, err := store.NewRegistry(types.Config{DataDir: e.DataDir}, nil, nil)
	if err != nil {
		e.t.Fatalf("failed to reopen registry: %v", err)
	}
	if err := registry.Load(); err != nil {
		e.t.Fatalf("failed to reload registry: %v", err)
	}
	return manager.New(registry, search.NewFinder(registry))
}

// MustRegister registers a user and fails the test on error.
func (e *TestEnv) MustRegister(username string) {
	e.t.Helper()
	if err := e.Manager.Register(username); err != nil {
		e.t.Fatalf("failed to register %q: %v", username, err)
	}
}

// MustCreateGroup creates a group and fails the test on error.
func (e *TestEnv) MustCreateGroup(username, groupName string) {
	e.t.Helper()
	if err := e.Manager.CreateGroup(username, groupName); err != nil {
		e.t.Fatalf("failed to create group %q for %q: %v", groupName, username, err)
	}
}

// MustAdd builds a bookmark and adds it to the user's group.
func (e *TestEnv) MustAdd(username, title, url string, tags []string, groupName string) {
	e.t.Helper()
	b, err := types.NewBookmark(title, url, tags, groupName)
	if err != nil {
		e.t.Fatalf("failed to build bookmark %q: %v", title, err)
	}
	if err := e.Manager.AddBookmark(username, b, groupName); err != nil {
		e.t.Fatalf("failed to add bookmark %q: %v", title, err)
	}
}

// StoreFile mirrors the persisted per-user JSON file for assertions.
type StoreFile struct {
	Version  int    `json:"version"`
	Username string `json:"username"`
	Groups   []struct {
		Name      string           `json:"name"`
		Bookmarks []types.Bookmark `json:"bookmarks"`
	} `json:"groups"`
}

// ReadStoreFile reads and parses the persisted file for a username.
func (e *TestEnv) ReadStoreFile(username string) StoreFile {
	e.t.Helper()
	data, err := os.ReadFile(filepath.Join(e.DataDir, username+".json"))
	if err != nil {
		e.t.Fatalf("failed to read store file for %q: %v", username, err)
	}
	var sf StoreFile
	if err := json.Unmarshal(data, &sf); err != nil {
		e.t.Fatalf("failed to parse store file for %q: %v", username, err)
	}
	return sf
}

// DataFiles lists the non-hidden file names in the data directory.
func (e *TestEnv) DataFiles() []string {
	e.t.Helper()
	var names []string
	err := filepath.WalkDir(e.DataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name()[0] != '.' {
			names = append(names, d.Name())
		}
		return nil
	})
	if err != nil {
		e.t.Fatalf("failed to list data dir: %v", err)
	}
	return names
}

// Titles extracts bookmark titles in order.
func Titles(bookmarks []types.Bookmark) []string {
	titles := make([]string, 0, len(bookmarks))
	for _, b := range bookmarks {
		titles = append(titles, b.Title)
	}
	return titles
}
