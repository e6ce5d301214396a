package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dmarinov/linkshelf/pkg/types"
)

// Registry maps usernames to their group stores. It is the single injected
// lookup point for "this user's store"; there is no process-wide singleton.
// Safe for concurrent use by sessions of different users.
type Registry struct {
	dataDir string
	prober  Prober
	log     *slog.Logger

	mu     sync.RWMutex
	stores map[string]*Store
}

// NewRegistry creates a registry rooted at cfg.DataDir. The directory is
// created if missing. Call Load to rehydrate stores persisted by an earlier
// process.
func NewRegistry(cfg types.Config, prober Prober, log *slog.Logger) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &Registry{
		dataDir: cfg.DataDir,
		prober:  prober,
		log:     log,
		stores:  make(map[string]*Store),
	}, nil
}

// Create registers a new user and persists an empty store file immediately,
// so a registered user exists on disk even before the first group.
// Returns ErrInvalidArgument for an unusable username and ErrUserExists for
// a duplicate.
func (r *Registry) Create(username string) (*Store, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	r.mu.Lock()
	if _, ok := r.stores[username]; ok {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: %q", types.ErrUserExists, username)
	}
	s := NewStore(username, storePath(r.dataDir, username), r.prober, r.log)
	r.stores[username] = s
	r.mu.Unlock()

	s.flush()
	return s, nil
}

// Get returns the store owned by username, or ErrUserNotFound.
func (r *Registry) Get(username string) (*Store, error) {
	r.mu.RLock()
	s, ok := r.stores[username]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrUserNotFound, username)
	}
	return s, nil
}

// ListAll returns the flattened bookmark view for username, ordered by group
// name then title. This is the seed for the search cache.
func (r *Registry) ListAll(username string) ([]types.Bookmark, error) {
	s, err := r.Get(username)
	if err != nil {
		return nil, err
	}
	return s.ListAll(), nil
}

// Usernames returns the registered usernames in sorted order.
func (r *Registry) Usernames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.stores))
	for name := range r.stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load scans the data dir and rehydrates one store per persisted user file.
// Unreadable files are logged and skipped; a partially loadable data dir is
// better than refusing to start.
func (r *Registry) Load() error {
	entries, err := os.ReadDir(r.dataDir)
	if err != nil {
		return fmt.Errorf("reading data dir: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, ".") {
			continue
		}
		s, err := LoadStore(filepath.Join(r.dataDir, name), r.prober, r.log)
		if err != nil {
			r.log.Warn("skipping unreadable store file", "file", name, "error", err)
			continue
		}
		r.stores[s.Username()] = s
	}
	return nil
}

// validateUsername rejects blank names and names that would escape the data
// dir when used as a file name.
func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username must not be blank", types.ErrInvalidArgument)
	}
	if strings.ContainsAny(username, `/\`) || username != filepath.Base(username) || strings.HasPrefix(username, ".") {
		return fmt.Errorf("%w: unusable username %q", types.ErrInvalidArgument, username)
	}
	return nil
}
