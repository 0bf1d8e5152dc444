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

// componentBattery analyzes component sources (.jsx/.tsx). There is no
// reliable structural parse for markup embedded in program bodies, so this
// battery is pattern-only by design.
type componentBattery struct{}

var (
	jsxImgTagRe        = regexp.MustCompile(`(?i)<img\b[^>]*/?>`)
	jsxAltAttrRe       = regexp.MustCompile(`\balt\s*=`)
	jsxSrcAttrRe       = regexp.MustCompile(`\bsrc\s*=\s*(?:["']([^"']*)["']|\{["']([^"']*)["']\})`)
	jsxTargetBlankRe   = regexp.MustCompile(`\btarget\s*=\s*(?:["']_blank["']|\{["']_blank["']\})`)
	jsxNoopenerRe      = regexp.MustCompile(`\brel\s*=\s*(?:["'][^"']*noopener|\{["'][^"']*noopener)`)
	jsxAnchorTagRe     = regexp.MustCompile(`(?i)<a\b[^>]*>`)
	dangerousHTMLRe    = regexp.MustCompile(`dangerouslySetInnerHTML`)
	jsxTabIndexRe      = regexp.MustCompile(`\btabIndex\s*=\s*\{?["']?(\d+)`)
	jsxJSURLRe         = regexp.MustCompile(`(?i)\bhref\s*=\s*["']\s*javascript:`)
	jsxHTTPRe          = regexp.MustCompile(`["'](http://[^"']+)["']`)
	jsxLoadingAttrRe   = regexp.MustCompile(`\bloading\s*=`)
	jsxLiteralJSXRe    = regexp.MustCompile(`>\s*([A-Za-z][A-Za-z0-9 ,.'!?-]{11,})\s*<`)
	componentDynamicRe = regexp.MustCompile(`\beval\s*\(|\bnew\s+Function\s*\(|document\.write\s*\(`)
)

// Detect evaluates the component rule set. It never fails: component sources
// that are not even valid JSX still get whatever pattern findings apply.
func (c *componentBattery) Detect(doc *types.Document) []types.Finding {
	content := doc.Content
	findings := []types.Finding{}

	// Images: alt text and lazy loading
	for _, tag := range jsxImgTagRe.FindAllString(content, -1) {
		src := ""
		if m := jsxSrcAttrRe.FindStringSubmatch(tag); m != nil {
			if m[1] != "" {
				src = m[1]
			} else {
				src = m[2]
			}
		}
		if !jsxAltAttrRe.MatchString(tag) {
			findings = append(findings, types.Finding{
				RuleID:       RuleImgAlt,
				Severity:     types.SeverityError,
				Message:      fmt.Sprintf("Image %q has no alternative text", src),
				SuggestedFix: "Add a descriptive alt attribute",
				Rationale:    "Screen readers cannot describe images without alt text.",
			})
		}
		if !jsxLoadingAttrRe.MatchString(tag) {
			findings = append(findings, types.Finding{
				RuleID:       RuleImgLazyLoading,
				Severity:     types.SeverityInfo,
				Message:      fmt.Sprintf("Image %q is not lazy loaded", src),
				SuggestedFix: `loading="lazy"`,
			})
		}
	}

	// Blank-target links without a noopener relation
	for _, tag := range jsxAnchorTagRe.FindAllString(content, -1) {
		if jsxTargetBlankRe.MatchString(tag) && !jsxNoopenerRe.MatchString(tag) {
			findings = append(findings, types.Finding{
				RuleID:       RuleTargetBlank,
				Severity:     types.SeverityError,
				Message:      "target=\"_blank\" link without rel=\"noopener\"",
				SuggestedFix: `rel="noopener noreferrer"`,
				Rationale:    "Without noopener the opened page can navigate the opener window.",
			})
		}
	}

	// Raw HTML injection
	for range dangerousHTMLRe.FindAllString(content, -1) {
		findings = append(findings, types.Finding{
			RuleID:       RuleDangerousHTML,
			Severity:     types.SeverityError,
			Message:      "Component injects raw HTML via dangerouslySetInnerHTML",
			SuggestedFix: "Render the content as sanitized elements instead",
		})
	}

	// Dynamic code execution
	if componentDynamicRe.MatchString(content) {
		findings = append(findings, types.Finding{
			RuleID:   RuleDynamicCode,
			Severity: types.SeverityError,
			Message:  "Component uses a dynamic code execution construct",
		})
	}

	// javascript: URLs
	if jsxJSURLRe.MatchString(content) {
		findings = append(findings, types.Finding{
			RuleID:   RuleJSURL,
			Severity: types.SeverityError,
			Message:  "javascript: URL in href",
		})
	}

	// Plain-HTTP references
	for _, m := range jsxHTTPRe.FindAllStringSubmatch(content, -1) {
		findings = append(findings, types.Finding{
			RuleID:       RuleInsecureResource,
			Severity:     types.SeverityError,
			Message:      fmt.Sprintf("Reference to %q over plain HTTP", m[1]),
			SuggestedFix: "Use an https:// URL",
		})
	}

	// Positive tabIndex
	for _, m := range jsxTabIndexRe.FindAllStringSubmatch(content, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			findings = append(findings, types.Finding{
				RuleID:       RulePositiveTabindex,
				Severity:     types.SeverityWarning,
				Message:      fmt.Sprintf("tabIndex=%d overrides natural focus order and risks trapping keyboard users", n),
				SuggestedFix: `tabIndex={0}`,
			})
		}
	}

	// Localization heuristics over the embedded markup
	if translationConventionRe.MatchString(content) {
		for _, m := range jsxLiteralJSXRe.FindAllStringSubmatch(content, -1) {
			text := strings.TrimSpace(m[1])
			findings = append(findings, types.Finding{
				RuleID:       RuleUntranslatedText,
				Severity:     types.SeverityInfo,
				Message:      "Literal text " + quoteSnippet(text) + " in a component that uses translation calls",
				SuggestedFix: "Wrap the text in the component's translation call",
			})
		}
	}
	for _, m := range hardcodedDateRe.FindAllString(content, -1) {
		findings = append(findings, types.Finding{
			RuleID:       RuleHardcodedDate,
			Severity:     types.SeverityWarning,
			Message:      "Hard-coded date literal " + quoteSnippet(m),
			SuggestedFix: "Format dates with a locale-aware formatter",
		})
	}

	return findings
}
