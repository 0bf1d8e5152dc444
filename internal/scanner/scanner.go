// Package scanner orchestrates document scans: content read, cache lookup,
// detection, classification, and cache store.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/webcheck/internal/cache"
	"github.com/jonathan/webcheck/internal/classifier"
	"github.com/jonathan/webcheck/internal/detector"
	"github.com/jonathan/webcheck/internal/types"
)

// DefaultBatchSize is how many files a directory scan processes per batch.
// Batching only bounds the memory high-watermark; results are identical
// regardless of batch size.
const DefaultBatchSize = 25

// Scanner runs the scan pipeline per document: cache.Get, then on a miss
// detect, classify, and cache.Set. Construct one explicitly per caller;
// concurrent use over overlapping file sets is the caller's problem to
// serialize, matching the cache's locking contract.
type Scanner struct {
	detector  *detector.Detector
	cache     *cache.Cache
	batchSize int
}

// New constructs a Scanner. A nil cache is allowed and disables caching.
func New(det *detector.Detector, c *cache.Cache, batchSize int) *Scanner {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Scanner{detector: det, cache: c, batchSize: batchSize}
}

// ScanContent scans in-memory content for a document. Cache hits skip
// detection entirely; misses run the full detect/classify pipeline and
// store the result in both cache tiers.
func (s *Scanner) ScanContent(doc *types.Document) *types.ScanResult {
	if s.cache != nil {
		if result, ok := s.cache.Get(doc.Content, doc.Path); ok {
			return result
		}
	}

	findings := s.detector.Detect(doc)
	result := classifier.Classify(doc, findings)

	if s.cache != nil {
		// A store failure only costs the next scan a recomputation
		_ = s.cache.Set(doc.Content, result)
	}
	return result
}

// ScanFile reads and scans one file. Unsupported extensions and unreadable
// files return an error; the directory scan skips these, single-file
// callers see them.
func (s *Scanner) ScanFile(path string) (*types.ScanResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ScanError{Message: fmt.Sprintf("failed to read %s", path), Cause: err}
	}

	doc, ok := types.NewDocument(path, string(content))
	if !ok {
		return nil, &ScanError{Message: fmt.Sprintf("unsupported file type: %s", path)}
	}

	return s.ScanContent(doc), nil
}

// ScanDirectory walks a directory tree and scans every supported file in
// traversal order. Unreadable files are skipped and recorded, never fatal;
// only the directory walk itself can fail. Files are processed in batches
// of the configured size.
func (s *Scanner) ScanDirectory(root string) (*DirectoryReport, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := types.FormatForPath(path); ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, &ScanError{Message: fmt.Sprintf("failed to walk directory %s", root), Cause: err}
	}

	report := &DirectoryReport{
		RunID:       uuid.New().String(),
		Root:        root,
		GeneratedAt: time.Now().UTC(),
		Results:     make([]*types.ScanResult, 0, len(paths)),
	}

	for start := 0; start < len(paths); start += s.batchSize {
		end := start + s.batchSize
		if end > len(paths) {
			end = len(paths)
		}
		for _, path := range paths[start:end] {
			result, err := s.ScanFile(path)
			if err != nil {
				report.Skipped = append(report.Skipped, path)
				continue
			}
			report.Results = append(report.Results, result)
		}
	}

	report.finalize(s.cache)
	return report, nil
}
