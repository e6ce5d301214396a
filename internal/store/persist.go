// JSON file persistence for a single user's group store.
//
// Each user owns one pretty-printed JSON file, <data dir>/<username>.json,
// rewritten wholesale after every mutation using the temp-file, fsync,
// rename pattern so a crash mid-write never corrupts the previous state.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dmarinov/linkshelf/pkg/types"
)

// storeFileVersion is the current on-disk format version.
const storeFileVersion = 1

// tempFilePattern names the temporary files used for atomic rewrites. The
// leading dot keeps the registry loader and the watcher from picking them up.
const tempFilePattern = ".linkshelf-*.tmp"

// storeFile is the on-disk shape of one user's groups.
type storeFile struct {
	Version  int           `json:"version"`
	Username string        `json:"username"`
	Groups   []groupRecord `json:"groups"`
}

// groupRecord is the on-disk shape of one group, bookmarks ordered by title.
type groupRecord struct {
	Name      string           `json:"name"`
	Bookmarks []types.Bookmark `json:"bookmarks"`
}

// encodeStoreFile serializes the groups of one user, ordered by group name
// then bookmark title so rewrites are deterministic and diffable.
func encodeStoreFile(username string, groups map[string]*types.Group) ([]byte, error) {
	sf := storeFile{
		Version:  storeFileVersion,
		Username: username,
		Groups:   make([]groupRecord, 0, len(groups)),
	}
	for _, g := range groups {
		sf.Groups = append(sf.Groups, groupRecord{Name: g.Name, Bookmarks: g.List()})
	}
	sort.Slice(sf.Groups, func(i, j int) bool { return sf.Groups[i].Name < sf.Groups[j].Name })

	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding store for %s: %w", username, err)
	}
	return append(data, '\n'), nil
}

// decodeStoreFile parses a persisted store file back into groups.
func decodeStoreFile(data []byte) (username string, groups map[string]*types.Group, err error) {
	var sf storeFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return "", nil, fmt.Errorf("decoding store file: %w", err)
	}
	if sf.Version != storeFileVersion {
		return "", nil, fmt.Errorf("unsupported store file version %d", sf.Version)
	}
	groups = make(map[string]*types.Group, len(sf.Groups))
	for _, rec := range sf.Groups {
		g := types.NewGroup(rec.Name)
		for _, b := range rec.Bookmarks {
			g.Add(b)
		}
		groups[rec.Name] = g
	}
	return sf.Username, groups, nil
}

// writeFileAtomic writes data to path via a temp file in the same directory
// followed by an atomic rename.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// storePath returns the backing file path for a username inside dataDir.
func storePath(dataDir, username string) string {
	return filepath.Join(dataDir, username+".json")
}
