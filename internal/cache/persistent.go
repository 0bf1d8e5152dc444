// Package cache provides a content-digest-keyed store for scan results with
// a fast bounded in-memory tier and a slower persistent file tier.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// persistentTier stores one JSON file per content digest under a fixed
// directory. The filename is the digest, which makes the layout a stable
// contract for external inspection tooling. The tier is effectively
// unbounded; entries leave only by TTL expiry or Clear.
type persistentTier struct {
	dir string
	ttl time.Duration

	// index maps digest -> storage time, rebuilt once at startup.
	index map[string]time.Time
}

// newPersistentTier creates the directory if needed and scans it once,
// indexing fresh entries and purging expired or corrupt ones.
func newPersistentTier(dir string, ttl time.Duration) (*persistentTier, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &StoreError{Message: fmt.Sprintf("failed to create cache directory %s", dir), Cause: err}
	}

	tier := &persistentTier{
		dir:   dir,
		ttl:   ttl,
		index: make(map[string]time.Time),
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &StoreError{Message: fmt.Sprintf("failed to scan cache directory %s", dir), Cause: err}
	}

	now := time.Now()
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || !strings.HasSuffix(dirEntry.Name(), ".json") {
			continue
		}
		digest := strings.TrimSuffix(dirEntry.Name(), ".json")
		entry, err := tier.readEntry(digest)
		if err != nil {
			// Corrupt entries are removed opportunistically
			_ = os.Remove(tier.path(digest))
			continue
		}
		if now.After(entry.ExpiresAt) {
			_ = os.Remove(tier.path(digest))
			continue
		}
		tier.index[digest] = entry.CreatedAt
	}

	return tier, nil
}

// get returns the fresh entry for digest, or absent. An entry whose age
// exceeds the TTL is deleted and treated as absent; an unreadable or
// schema-invalid file is removed and treated as a miss.
func (t *persistentTier) get(digest string) (*Entry, bool) {
	if _, ok := t.index[digest]; !ok {
		return nil, false
	}

	entry, err := t.readEntry(digest)
	if err != nil {
		t.remove(digest)
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		t.remove(digest)
		return nil, false
	}
	return entry, true
}

// put writes the entry to its digest-named file, replacing any previous
// payload for the same digest.
func (t *persistentTier) put(entry *Entry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return &StoreError{Message: "failed to encode cache entry", Cause: err}
	}
	if err := os.WriteFile(t.path(entry.Digest), data, 0644); err != nil {
		return &StoreError{Message: fmt.Sprintf("failed to write cache entry %s", entry.Digest), Cause: err}
	}
	t.index[entry.Digest] = entry.CreatedAt
	return nil
}

// readEntry loads and validates one entry file. The payload is checked
// against the entry schema before being trusted.
func (t *persistentTier) readEntry(digest string) (*Entry, error) {
	data, err := os.ReadFile(t.path(digest))
	if err != nil {
		return nil, &StoreError{Message: fmt.Sprintf("failed to read cache entry %s", digest), Cause: err}
	}
	if err := validateEntryPayload(data); err != nil {
		return nil, err
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, &StoreError{Message: fmt.Sprintf("failed to decode cache entry %s", digest), Cause: err}
	}
	return &entry, nil
}

func (t *persistentTier) remove(digest string) {
	_ = os.Remove(t.path(digest))
	delete(t.index, digest)
}

func (t *persistentTier) len() int {
	return len(t.index)
}

func (t *persistentTier) clear() error {
	for digest := range t.index {
		if err := os.Remove(t.path(digest)); err != nil && !os.IsNotExist(err) {
			return &StoreError{Message: fmt.Sprintf("failed to remove cache entry %s", digest), Cause: err}
		}
	}
	t.index = make(map[string]time.Time)
	return nil
}

func (t *persistentTier) path(digest string) string {
	return filepath.Join(t.dir, digest+".json")
}
