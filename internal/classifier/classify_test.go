// Package classifier normalizes raw detector findings into consolidated,
// categorized, severity-ranked scan results.
package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/webcheck/internal/types"
)

func TestCategoryForRule(t *testing.T) {
	tests := []struct {
		ruleID   string
		category string
	}{
		{"structure-duplicate-id", types.CategoryStructure},
		{"a11y-img-alt", types.CategoryAccessibility},
		{"seo-missing-title", types.CategorySEO},
		{"security-target-blank", types.CategorySecurity},
		{"perf-blocking-script", types.CategoryPerformance},
		{"l10n-hardcoded-date", types.CategoryLocalization},
		// Unclassifiable identifiers default to structure, never dropped
		{"mystery-rule", types.CategoryStructure},
		{"noprefix", types.CategoryStructure},
		{"", types.CategoryStructure},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.category, CategoryForRule(tt.ruleID), "rule %q", tt.ruleID)
	}
}

func TestSeverityForFinding(t *testing.T) {
	assert.Equal(t, types.IssueSeverityLow, SeverityForFinding(types.SeverityInfo))
	assert.Equal(t, types.IssueSeverityMedium, SeverityForFinding(types.SeverityWarning))
	assert.Equal(t, types.IssueSeverityHigh, SeverityForFinding(types.SeverityError))
	assert.Equal(t, types.IssueSeverityLow, SeverityForFinding("bogus"))
}

func TestClassify_ValidityEquivalence(t *testing.T) {
	doc, _ := types.NewDocument("page.html", "<html></html>")

	// Mixed severities including an error: invalid
	mixed := Classify(doc, []types.Finding{
		{RuleID: "seo-missing-title", Severity: types.SeverityInfo, Message: "a"},
		{RuleID: "perf-blocking-script", Severity: types.SeverityWarning, Message: "b"},
		{RuleID: "a11y-img-alt", Severity: types.SeverityError, Message: "c"},
	})
	assert.False(t, mixed.IsValid)
	high, _, _ := mixed.CountBySeverity()
	assert.Equal(t, 1, high)

	// All low/medium: valid
	soft := Classify(doc, []types.Finding{
		{RuleID: "seo-missing-canonical", Severity: types.SeverityInfo, Message: "a"},
		{RuleID: "perf-img-lazy-loading", Severity: types.SeverityInfo, Message: "b"},
	})
	assert.True(t, soft.IsValid)
	high, _, _ = soft.CountBySeverity()
	assert.Equal(t, 0, high)
}

func TestClassify_EmptyFindings(t *testing.T) {
	doc, _ := types.NewDocument("page.html", "<html></html>")
	result := Classify(doc, nil)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Issues)
	assert.Empty(t, result.AISuggestedPatches)
	assert.Equal(t, "No issues detected.", result.Rationale)
	assert.Equal(t, "page.html", result.FileName)
	assert.Equal(t, types.FormatMarkup, result.FileType)
}

func TestClassify_PatchStubs(t *testing.T) {
	doc, _ := types.NewDocument("page.html", "<html></html>")
	result := Classify(doc, []types.Finding{
		{
			RuleID:       "security-target-blank",
			Severity:     types.SeverityError,
			Message:      "blank target",
			SuggestedFix: `rel="noopener noreferrer"`,
			Rationale:    "prevents reverse tabnabbing",
		},
		{RuleID: "seo-missing-h1", Severity: types.SeverityWarning, Message: "no h1"},
	})
	require.Len(t, result.AISuggestedPatches, 2)

	// Detector-supplied fix text passes through
	assert.Equal(t, `rel="noopener noreferrer"`, result.AISuggestedPatches[0].Diff)
	assert.Equal(t, "prevents reverse tabnabbing", result.AISuggestedPatches[0].Rationale)

	// Missing fix text falls back to the generic template
	assert.Equal(t, "Suggested fix: seo-missing-h1", result.AISuggestedPatches[1].Diff)
	assert.Equal(t, "Auto-suggested improvement.", result.AISuggestedPatches[1].Rationale)
}

func TestClassify_IssueOrderFollowsFindingOrder(t *testing.T) {
	doc, _ := types.NewDocument("page.html", "<html></html>")
	result := Classify(doc, []types.Finding{
		{RuleID: "a11y-img-alt", Severity: types.SeverityError, Message: "first"},
		{RuleID: "seo-missing-title", Severity: types.SeverityError, Message: "second"},
		{RuleID: "x", Severity: types.SeverityInfo, Message: "third"},
	})
	require.Len(t, result.Issues, 3)
	assert.Equal(t, "first", result.Issues[0].Description)
	assert.Equal(t, "second", result.Issues[1].Description)
	assert.Equal(t, "third", result.Issues[2].Description)
	assert.Equal(t, types.CategoryStructure, result.Issues[2].Category)
	assert.Contains(t, result.Rationale, "3 issue(s)")
}
