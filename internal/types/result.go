// Package types provides type definitions for structured data used throughout the webcheck system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Issue categories. Every rule identifier resolves to exactly one of these;
// unclassifiable identifiers default to CategoryStructure.
const (
	CategoryStructure     = "structure"
	CategoryAccessibility = "accessibility"
	CategorySEO           = "seo"
	CategorySecurity      = "security"
	CategoryPerformance   = "performance"
	CategoryLocalization  = "localization"
)

// Result-level severities, derived from the detector's info/warning/error
// vocabulary by a fixed lookup.
const (
	IssueSeverityLow    = "low"
	IssueSeverityMedium = "medium"
	IssueSeverityHigh   = "high"
)

// Issue is a single classified problem in a scan result.
type Issue struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

/// PatchSuggestion is a per-issue fix stub: either detector-supplied fix text
// with its rationale, or a generic templated fallback.
type PatchSuggestion struct {
	Diff      string `json:"diff"`
	Rationale string `json:"rationale"`
}

// ScanResult is the consolidated, classified output of scanning one
// document. The JSON field names are a stable contract consumed by the
// report-rendering and redaction layers downstream.
//
// A ScanResult is created once per (content, format) pair on a cache miss
// and is immutable thereafter, except for FileName, which is rewritten to
// the caller's current path on every cache retrieval.
type ScanResult struct {
	FileName           string            `json:"fileName"`
	FileType           Format            `json:"fileType"`
	IsValid            bool              `json:"isValid"`
	Issues             []Issue           `json:"issues"`
	AISuggestedPatches []PatchSuggestion `json:"aiSuggestedPatches"`
	Rationale          string            `json:"rationale"`
}

// Clone returns a deep copy of the result. The cache hands out clones so a
// caller mutating its copy (or the path rewrite on retrieval) cannot corrupt
// the stored payload.
func (r *ScanResult) Clone() *ScanResult {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Issues = make([]Issue, len(r.Issues))
	copy(cp.Issues, r.Issues)
	cp.AISuggestedPatches = make([]PatchSuggestion, len(r.AISuggestedPatches))
	copy(cp.AISuggestedPatches, r.AISuggestedPatches)
	return &cp
}

// CountBySeverity returns the number of issues at each result severity.
func (r *ScanResult) CountBySeverity() (high, medium, low int) {
	for _, issue := range r.Issues {
		switch issue.Severity {
		case IssueSeverityHigh:
			high++
		case IssueSeverityMedium:
			medium++
		case IssueSeverityLow:
			low++
		}
	}
	return high, medium, low
}
