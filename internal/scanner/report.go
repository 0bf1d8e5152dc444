// Package scanner orchestrates document scans: content read, cache lookup,
// detection, classification, and cache store.
package scanner

import (
	"time"

	"github.com/jonathan/webcheck/internal/cache"
	"github.com/jonathan/webcheck/internal/types"
)

// DirectoryReport aggregates the results of a directory scan.
type DirectoryReport struct {
	RunID       string              `json:"runId"`
	Root        string              `json:"root"`
	GeneratedAt time.Time           `json:"generatedAt"`
	Results     []*types.ScanResult `json:"results"`
	Skipped     []string            `json:"skipped,omitempty"`
	TotalFiles  int                 `json:"totalFiles"`
	ValidFiles  int                 `json:"validFiles"`
	HighCount   int                 `json:"highCount"`
	MediumCount int                 `json:"mediumCount"`
	LowCount    int                 `json:"lowCount"`
	CacheStats  *cache.Stats        `json:"cacheStats,omitempty"`
}

// finalize fills in the aggregate counters and a cache stats snapshot.
func (r *DirectoryReport) finalize(c *cache.Cache) {
	r.TotalFiles = len(r.Results)
	for _, result := range r.Results {
		if result.IsValid {
			r.ValidFiles++
		}
		high, medium, low := result.CountBySeverity()
		r.HighCount += high
		r.MediumCount += medium
		r.LowCount += low
	}
	if c != nil {
		stats := c.Metadata()
		r.CacheStats = &stats
	}
}
