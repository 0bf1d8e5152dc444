// Package cache provides a content-digest-keyed store for scan results with
// a fast bounded in-memory tier and a slower persistent file tier.
package cache

import (
	"sort"
	"time"
)

// memoryTier is the fast bounded in-process map. Entries carry their own
// expiry; capacity overruns evict by ascending access count, then ascending
// last-access time, so the least-used and oldest entries go first.
//
// Eviction resorts the live entries each time it runs. That is O(n log n)
// per prune, fine at the default capacity; an intrusive ordered structure
// would be needed past a few thousand entries.
type memoryTier struct {
	capacity int
	entries  map[string]*Entry
}

func newMemoryTier(capacity int) *memoryTier {
	return &memoryTier{
		capacity: capacity,
		entries:  make(map[string]*Entry),
	}
}

// get returns the entry for digest if present and fresh, bumping its access
// metadata. An expired entry is removed and reported as absent.
func (m *memoryTier) get(digest string, now time.Time) (*Entry, bool) {
	entry, ok := m.entries[digest]
	if !ok {
		return nil, false
	}
	if now.After(entry.ExpiresAt) {
		delete(m.entries, digest)
		return nil, false
	}
	entry.AccessCount++
	entry.LastAccess = now
	return entry, true
}

// put stores an entry and trims the tier back to capacity if needed.
func (m *memoryTier) put(entry *Entry) {
	m.entries[entry.Digest] = entry
	if len(m.entries) <= m.capacity {
		return
	}

	ordered := make([]*Entry, 0, len(m.entries))
	for _, e := range m.entries {
		ordered = append(ordered, e)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].AccessCount != ordered[j].AccessCount {
			return ordered[i].AccessCount < ordered[j].AccessCount
		}
		return ordered[i].LastAccess.Before(ordered[j].LastAccess)
	})

	for _, victim := range ordered[:len(m.entries)-m.capacity] {
		delete(m.entries, victim.Digest)
	}
}

func (m *memoryTier) len() int {
	return len(m.entries)
}

func (m *memoryTier) clear() {
	m.entries = make(map[string]*Entry)
}
