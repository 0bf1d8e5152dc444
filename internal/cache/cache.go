// Package cache provides a content-digest-keyed store for scan results with
// a fast bounded in-memory tier and a slower persistent file tier.
package cache

import (
	"fmt"
	"time"

	"github.com/jonathan/webcheck/internal/types"
)

// Default sizing when an Options field is zero.
const (
	DefaultMemoryCapacity = 100
	DefaultMemoryTTL      = 5 * time.Minute
	DefaultPersistentTTL  = 24 * time.Hour
)

// Options configures a Cache instance.
type Options struct {
	// Dir is the persistent tier directory (one file per content digest).
	Dir string
	// MemoryCapacity bounds the in-memory tier; exceeding it triggers
	// eviction of the least-used, oldest entries.
	MemoryCapacity int
	// MemoryTTL is how long an in-memory entry stays fresh.
	MemoryTTL time.Duration
	// PersistentTTL is how long a persisted entry stays fresh, measured
	// from its storage time.
	PersistentTTL time.Duration
}

func (o Options) withDefaults() Options {
	if o.MemoryCapacity <= 0 {
		o.MemoryCapacity = DefaultMemoryCapacity
	}
	if o.MemoryTTL <= 0 {
		o.MemoryTTL = DefaultMemoryTTL
	}
	if o.PersistentTTL <= 0 {
		o.PersistentTTL = DefaultPersistentTTL
	}
	return o
}

// Entry is one cached scan result with its bookkeeping metadata.
type Entry struct {
	Digest      string            `json:"digest"`
	Result      *types.ScanResult `json:"result"`
	CreatedAt   time.Time         `json:"created_at"`
	LastAccess  time.Time         `json:"last_access"`
	AccessCount int               `json:"access_count"`
	ExpiresAt   time.Time         `json:"expires_at"`
}

// Stats are the cumulative observability counters for one Cache instance.
// SavedTimeMs is a proxy: the wall-clock time spent inside hit-producing Get
// calls, not an estimate of the recomputation each hit avoided.
type Stats struct {
	Hits              int64 `json:"hits"`
	Misses            int64 `json:"misses"`
	SavedTimeMs       int64 `json:"saved_time_ms"`
	MemoryEntries     int   `json:"memory_entries"`
	PersistentEntries int   `json:"persistent_entries"`
}

// Cache is a two-tier result store keyed by content digest. Identical
// content under different paths shares one entry; the stored path is
// rewritten to the caller's path on every retrieval.
//
// Cache provides no cross-call locking: concurrent Set calls for the same
// digest are unordered and the last write observed wins. Callers needing
// cross-goroutine use must serialize externally.
type Cache struct {
	memory     *memoryTier
	persistent *persistentTier
	memoryTTL  time.Duration

	hits   int64
	misses int64
	saved  time.Duration
}

// New constructs a Cache. The persistent directory is created if needed and
// scanned once to rebuild the index, purging entries that expired while the
// process was down.
func New(opts Options) (*Cache, error) {
	opts = opts.withDefaults()
	if opts.Dir == "" {
		return nil, &StoreError{Message: "cache directory is required"}
	}

	persistent, err := newPersistentTier(opts.Dir, opts.PersistentTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize persistent cache tier: %w", err)
	}

	return &Cache{
		memory:     newMemoryTier(opts.MemoryCapacity),
		persistent: persistent,
		memoryTTL:  opts.MemoryTTL,
	}, nil
}

// Get looks up the scan result for raw content, in-memory tier first. A
// persistent hit is promoted into the memory tier before being returned.
// The returned result is a copy with FileName rewritten to path; mutating
// it never affects the stored payload.
func (c *Cache) Get(content, path string) (*types.ScanResult, bool) {
	start := time.Now()
	digest := types.ContentDigest(content)

	if entry, ok := c.memory.get(digest, start); ok {
		return c.hit(entry, path, start), true
	}

	if entry, ok := c.persistent.get(digest); ok {
		// Promote into the memory tier with a fresh memory-side TTL
		promoted := *entry
		promoted.LastAccess = start
		promoted.AccessCount++
		promoted.ExpiresAt = start.Add(c.memoryTTL)
		c.memory.put(&promoted)
		return c.hit(&promoted, path, start), true
	}

	c.misses++
	return nil, false
}

func (c *Cache) hit(entry *Entry, path string, start time.Time) *types.ScanResult {
	c.hits++
	c.saved += time.Since(start)
	result := entry.Result.Clone()
	result.FileName = path
	return result
}

// Set stores a scan result under the content's digest in both tiers. If the
// memory tier then exceeds capacity its eviction policy trims it; eviction
// never touches persistent entries.
func (c *Cache) Set(content string, result *types.ScanResult) error {
	digest := types.ContentDigest(content)
	now := time.Now()

	stored := result.Clone()

	if err := c.persistent.put(&Entry{
		Digest:    digest,
		Result:    stored,
		CreatedAt: now,
		ExpiresAt: now.Add(c.persistent.ttl),
	}); err != nil {
		return fmt.Errorf("failed to persist cache entry: %w", err)
	}

	c.memory.put(&Entry{
		Digest:     digest,
		Result:     stored,
		CreatedAt:  now,
		LastAccess: now,
		ExpiresAt:  now.Add(c.memoryTTL),
	})
	return nil
}

// Metadata returns the cumulative counters for this instance's lifetime.
func (c *Cache) Metadata() Stats {
	return Stats{
		Hits:              c.hits,
		Misses:            c.misses,
		SavedTimeMs:       c.saved.Milliseconds(),
		MemoryEntries:     c.memory.len(),
		PersistentEntries: c.persistent.len(),
	}
}

// Clear empties both tiers. Counters are not reset: they are cumulative for
// the instance's lifetime.
func (c *Cache) Clear() error {
	c.memory.clear()
	if err := c.persistent.clear(); err != nil {
		return fmt.Errorf("failed to clear persistent cache tier: %w", err)
	}
	return nil
}
