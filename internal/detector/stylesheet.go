// Package detector evaluates front-end source documents against per-format
// rule batteries and reports raw findings.
package detector

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/webcheck/internal/types"
)

// stylesheetBattery analyzes CSS. Stylesheets have no element tree, so this
// battery is pattern-only.
type stylesheetBattery struct{}

var (
	cssSelectorRe   = regexp.MustCompile(`(?m)^\s*([^@/{}][^{]*?)\s*\{`)
	cssRuleBlockRe  = regexp.MustCompile(`\{[^{}]*\}`)
	cssImportRe     = regexp.MustCompile(`(?i)@import\b[^;]*;`)
	cssFontFamilyRe = regexp.MustCompile(`(?i)font-family\s*:\s*([^;}]+)`)
	cssFontSizeRe   = regexp.MustCompile(`(?i)font-size\s*:\s*(\d+(?:\.\d+)?)px`)
	cssHTTPURLRe    = regexp.MustCompile(`(?i)url\(\s*["']?(http://[^"')]+)`)
)

// Detect evaluates the stylesheet rule set over raw text. It never fails.
func (b *stylesheetBattery) Detect(doc *types.Document) []types.Finding {
	content := doc.Content
	findings := []types.Finding{}

	// Duplicate selectors
	selectorCounts := make(map[string]int)
	selectorOrder := make([]string, 0)
	for _, m := range cssSelectorRe.FindAllStringSubmatch(content, -1) {
		selector := strings.Join(strings.Fields(m[1]), " ")
		if selector == "" {
			continue
		}
		if selectorCounts[selector] == 0 {
			selectorOrder = append(selectorOrder, selector)
		}
		selectorCounts[selector]++
	}
	for _, selector := range selectorOrder {
		if selectorCounts[selector] > 1 {
			findings = append(findings, types.Finding{
				RuleID:       RuleDuplicateSelector,
				Severity:     types.SeverityInfo,
				Message:      fmt.Sprintf("Selector %q is declared %d times", selector, selectorCounts[selector]),
				SuggestedFix: "Merge the duplicate rule blocks",
			})
		}
	}

	// !important overuse
	if count := strings.Count(content, "!important"); count > maxImportantCount {
		findings = append(findings, types.Finding{
			RuleID:   RuleImportantOveruse,
			Severity: types.SeverityInfo,
			Message:  fmt.Sprintf("%d !important declarations, more than the expected maximum of %d", count, maxImportantCount),
		})
	}

	// Blocking @import
	for range cssImportRe.FindAllString(content, -1) {
		findings = append(findings, types.Finding{
			RuleID:       RuleCSSImport,
			Severity:     types.SeverityWarning,
			Message:      "@import blocks parallel stylesheet downloads",
			SuggestedFix: "Load the stylesheet with a <link> element instead",
		})
	}

	// Distinct font families
	fontSet := make(map[string]bool)
	for _, m := range cssFontFamilyRe.FindAllStringSubmatch(content, -1) {
		family := strings.ToLower(strings.Join(strings.Fields(m[1]), " "))
		fontSet[family] = true
	}
	if len(fontSet) > maxDistinctFonts {
		findings = append(findings, types.Finding{
			RuleID:    RuleExcessiveFonts,
			Severity:  types.SeverityWarning,
			Message:   fmt.Sprintf("%d distinct font-family declarations, more than the recommended maximum of %d", len(fontSet), maxDistinctFonts),
			Rationale: "Every distinct font family is a separate download.",
		})
	}

	// Illegibly small font sizes
	for _, m := range cssFontSizeRe.FindAllStringSubmatch(content, -1) {
		if size, err := strconv.ParseFloat(m[1], 64); err == nil && size < minFontSizePx {
			findings = append(findings, types.Finding{
				RuleID:   RuleSmallFont,
				Severity: types.SeverityInfo,
				Message:  fmt.Sprintf("font-size %spx is below the legible minimum of %.0fpx", m[1], minFontSizePx),
			})
		}
	}

	// Plain-HTTP url() references
	for _, m := range cssHTTPURLRe.FindAllStringSubmatch(content, -1) {
		findings = append(findings, types.Finding{
			RuleID:       RuleInsecureResource,
			Severity:     types.SeverityError,
			Message:      fmt.Sprintf("url(%q) loads over plain HTTP", m[1]),
			SuggestedFix: "Use an https:// URL",
		})
	}

	// Low-contrast color pairs inside a single rule block
	for _, block := range cssRuleBlockRe.FindAllString(content, -1) {
		fg, bg, ok := colorPairFromCSS(block)
		if !ok {
			continue
		}
		if ratio := contrastRatio(fg, bg); ratio < minContrastRatio {
			findings = append(findings, types.Finding{
				RuleID:   RuleLowContrast,
				Severity: types.SeverityWarning,
				Message:  fmt.Sprintf("Rule colors have a contrast ratio of %.1f:1, below %.1f:1", ratio, minContrastRatio),
			})
		}
	}

	return findings
}
