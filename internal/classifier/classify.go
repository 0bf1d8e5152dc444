// Package classifier normalizes raw detector findings into consolidated,
// categorized, severity-ranked scan results.
package classifier

import (
	"fmt"
	"strings"

	"github.com/jonathan/webcheck/internal/types"
)

// severityMap is the fixed lookup from detector severity to result severity.
var severityMap = map[types.Severity]string{
	types.SeverityInfo:    types.IssueSeverityLow,
	types.SeverityWarning: types.IssueSeverityMedium,
	types.SeverityError:   types.IssueSeverityHigh,
}

// categoryPrefixes maps rule-identifier prefixes to issue categories.
var categoryPrefixes = map[string]string{
	"structure": types.CategoryStructure,
	"a11y":      types.CategoryAccessibility,
	"seo":       types.CategorySEO,
	"security":  types.CategorySecurity,
	"perf":      types.CategoryPerformance,
	"l10n":      types.CategoryLocalization,
}

// CategoryForRule resolves a rule identifier to its issue category by prefix
// inspection. Every identifier resolves to exactly one category;
// unclassifiable identifiers default to structure rather than being dropped.
func CategoryForRule(ruleID string) string {
	prefix := ruleID
	if idx := strings.Index(ruleID, "-"); idx >= 0 {
		prefix = ruleID[:idx]
	}
	if category, ok := categoryPrefixes[prefix]; ok {
		return category
	}
	return types.CategoryStructure
}

// SeverityForFinding maps a detector severity to the result-level ranking.
// Unknown severities rank low rather than being dropped.
func SeverityForFinding(s types.Severity) string {
	if severity, ok := severityMap[s]; ok {
		return severity
	}
	return types.IssueSeverityLow
}

// Classify consolidates raw findings into the scan result for a document.
// The result is valid iff no issue maps to high severity. Every finding
// yields exactly one issue and one patch-suggestion stub, in finding order.
func Classify(doc *types.Document, findings []types.Finding) *types.ScanResult {
	result := &types.ScanResult{
		FileName:           doc.Path,
		FileType:           doc.Format,
		IsValid:            true,
		Issues:             make([]types.Issue, 0, len(findings)),
		AISuggestedPatches: make([]types.PatchSuggestion, 0, len(findings)),
	}

	for _, f := range findings {
		severity := SeverityForFinding(f.Severity)
		if severity == types.IssueSeverityHigh {
			result.IsValid = false
		}

		result.Issues = append(result.Issues, types.Issue{
			Category:    CategoryForRule(f.RuleID),
			Description: f.Message,
			Severity:    severity,
		})

		suggestion := types.PatchSuggestion{
			Diff:      f.SuggestedFix,
			Rationale: f.Rationale,
		}
		if suggestion.Diff == "" {
			suggestion.Diff = "Suggested fix: " + f.RuleID
		}
		if suggestion.Rationale == "" {
			suggestion.Rationale = "Auto-suggested improvement."
		}
		result.AISuggestedPatches = append(result.AISuggestedPatches, suggestion)
	}

	result.Rationale = overallRationale(result)
	return result
}

// overallRationale summarizes the classified result in one sentence.
func overallRationale(result *types.ScanResult) string {
	if len(result.Issues) == 0 {
		return "No issues detected."
	}
	high, medium, low := result.CountBySeverity()
	return fmt.Sprintf("Found %d issue(s): %d high, %d medium, %d low severity.",
		len(result.Issues), high, medium, low)
}
