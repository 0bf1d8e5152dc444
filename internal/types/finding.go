// Package types provides type definitions for structured data used throughout the webcheck system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Severity is the detector-level severity vocabulary.
// It is finer than the result-level low/medium/high ranking and is
// mapped down by the classifier.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Finding represents a single detector-reported issue before classification.
// Findings are ephemeral: produced by the detector, consumed by the
// classifier, and discarded.
type Finding struct {
	RuleID   string   `json:"rule_id"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`

	// SuggestedFix is optional detector-supplied fix text (e.g. an attribute
	// to add). The classifier falls back to a generic template when empty.
	SuggestedFix string `json:"suggested_fix,omitempty"`
	// Rationale is optional detector-supplied explanation for the fix.
	Rationale string `json:"rationale,omitempty"`
}
