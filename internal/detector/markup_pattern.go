// Package detector evaluates front-end source documents against per-format
// rule batteries and reports raw findings.
package detector

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/webcheck/internal/types"
)

// markupPattern is the text-scanning evaluator for HTML documents. It covers
// the same ground as the structural evaluator with regular expressions over
// raw text, so documents the parser rejects still get meaningful findings.
type markupPattern struct{}

var (
	htmlTagRe       = regexp.MustCompile(`(?i)<html\b[^>]*>`)
	langAttrRe      = regexp.MustCompile(`(?i)\blang\s*=\s*["'][^"']+["']`)
	imgTagRe        = regexp.MustCompile(`(?i)<img\b[^>]*>`)
	altAttrRe       = regexp.MustCompile(`(?i)\balt\s*=`)
	srcAttrRe       = regexp.MustCompile(`(?i)\bsrc\s*=\s*["']([^"']*)["']`)
	loadingAttrRe   = regexp.MustCompile(`(?i)\bloading\s*=`)
	anchorTagRe     = regexp.MustCompile(`(?i)<a\b[^>]*>`)
	targetBlankRe   = regexp.MustCompile(`(?i)\btarget\s*=\s*["']?_blank`)
	noopenerRe      = regexp.MustCompile(`(?i)\brel\s*=\s*["'][^"']*noopener`)
	idAttrRe        = regexp.MustCompile(`(?i)\bid\s*=\s*["']([^"']+)["']`)
	emptyHrefRe     = regexp.MustCompile(`(?i)\bhref\s*=\s*["'](?:#?)["']`)
	onHandlerRe     = regexp.MustCompile(`(?i)\son[a-z]+\s*=\s*["']`)
	httpRefRe       = regexp.MustCompile(`(?i)\b(?:src|href)\s*=\s*["'](http://[^"']+)["']`)
	jsHrefRe        = regexp.MustCompile(`(?i)\bhref\s*=\s*["']\s*javascript:`)
	titleTagRe      = regexp.MustCompile(`(?i)<title\b[^>]*>\s*[^<\s]`)
	descriptionRe   = regexp.MustCompile(`(?i)<meta\b[^>]*name\s*=\s*["']description["']`)
	viewportMetaRe  = regexp.MustCompile(`(?i)<meta\b[^>]*name\s*=\s*["']viewport["']`)
	cspMetaRe       = regexp.MustCompile(`(?i)<meta\b[^>]*http-equiv\s*=\s*["']Content-Security-Policy["']`)
	inlineScriptRe  = regexp.MustCompile(`(?is)<script\b([^>]*)>(.*?)</script>`)
	scriptSrcAttrRe = regexp.MustCompile(`(?i)\bsrc\s*=`)
	ldJSONTypeRe    = regexp.MustCompile(`(?i)type\s*=\s*["']application/ld\+json["']`)
)

// Detect evaluates the pattern rule set over raw text. It never fails.
func (p *markupPattern) Detect(doc *types.Document) []types.Finding {
	content := doc.Content
	fullDoc := isFullDocument(content)
	findings := []types.Finding{}

	// Root language declaration
	if fullDoc {
		if tag := htmlTagRe.FindString(content); tag != "" && !langAttrRe.MatchString(tag) {
			findings = append(findings, types.Finding{
				RuleID:       RuleMissingLang,
				Severity:     types.SeverityError,
				Message:      "Document root lacks a language declaration",
				SuggestedFix: `lang="en"`,
			})
		}
		if !titleTagRe.MatchString(content) {
			findings = append(findings, types.Finding{
				RuleID:   RuleMissingTitle,
				Severity: types.SeverityError,
				Message:  "Document has no title element",
			})
		}
		if !descriptionRe.MatchString(content) {
			findings = append(findings, types.Finding{
				RuleID:   RuleMissingDescription,
				Severity: types.SeverityWarning,
				Message:  "Document has no meta description",
			})
		}
		if !viewportMetaRe.MatchString(content) {
			findings = append(findings, types.Finding{
				RuleID:   RuleMissingViewport,
				Severity: types.SeverityWarning,
				Message:  "Document has no viewport meta tag",
			})
		}
		if !cspMetaRe.MatchString(content) {
			findings = append(findings, types.Finding{
				RuleID:   RuleMissingCSP,
				Severity: types.SeverityInfo,
				Message:  "Document declares no content security policy",
			})
		}
	}

	// Images: alt text and lazy loading
	for _, tag := range imgTagRe.FindAllString(content, -1) {
		src := ""
		if m := srcAttrRe.FindStringSubmatch(tag); m != nil {
			src = m[1]
		}
		if !altAttrRe.MatchString(tag) {
			findings = append(findings, types.Finding{
				RuleID:       RuleImgAlt,
				Severity:     types.SeverityError,
				Message:      fmt.Sprintf("Image %q has no alternative text", src),
				SuggestedFix: "Add a descriptive alt attribute",
			})
		}
		if !loadingAttrRe.MatchString(tag) {
			findings = append(findings, types.Finding{
				RuleID:       RuleImgLazyLoading,
				Severity:     types.SeverityInfo,
				Message:      fmt.Sprintf("Image %q is not lazy loaded", src),
				SuggestedFix: `loading="lazy"`,
			})
		}
	}

	// Anchors: blank targets and placeholder hrefs
	for _, tag := range anchorTagRe.FindAllString(content, -1) {
		if targetBlankRe.MatchString(tag) && !noopenerRe.MatchString(tag) {
			findings = append(findings, types.Finding{
				RuleID:       RuleTargetBlank,
				Severity:     types.SeverityError,
				Message:      "target=\"_blank\" link without rel=\"noopener\"",
				SuggestedFix: `rel="noopener noreferrer"`,
				Rationale:    "Without noopener the opened page can navigate the opener window.",
			})
		}
		if emptyHrefRe.MatchString(tag) {
			findings = append(findings, types.Finding{
				RuleID:   RuleEmptyLink,
				Severity: types.SeverityWarning,
				Message:  "Anchor with an empty or placeholder href",
			})
		}
	}

	// Duplicate ids
	idCounts := make(map[string]int)
	idOrder := make([]string, 0)
	for _, m := range idAttrRe.FindAllStringSubmatch(content, -1) {
		if idCounts[m[1]] == 0 {
			idOrder = append(idOrder, m[1])
		}
		idCounts[m[1]]++
	}
	for _, id := range idOrder {
		if idCounts[id] > 1 {
			findings = append(findings, types.Finding{
				RuleID:   RuleDuplicateID,
				Severity: types.SeverityWarning,
				Message:  fmt.Sprintf("id %q is declared on %d elements", id, idCounts[id]),
			})
		}
	}

	// Inline event handlers
	for range onHandlerRe.FindAllString(content, -1) {
		findings = append(findings, types.Finding{
			RuleID:       RuleInlineEventHandler,
			Severity:     types.SeverityWarning,
			Message:      "Inline event handler attribute",
			SuggestedFix: "Attach the handler with addEventListener",
		})
	}

	// Plain-HTTP references
	for _, m := range httpRefRe.FindAllStringSubmatch(content, -1) {
		findings = append(findings, types.Finding{
			RuleID:       RuleInsecureResource,
			Severity:     types.SeverityError,
			Message:      fmt.Sprintf("Reference to %q over plain HTTP", m[1]),
			SuggestedFix: "Use an https:// URL",
		})
	}

	if jsHrefRe.MatchString(content) {
		findings = append(findings, types.Finding{
			RuleID:   RuleJSURL,
			Severity: types.SeverityError,
			Message:  "javascript: URL in href",
		})
	}

	// Inline scripts and dynamic code
	for _, m := range inlineScriptRe.FindAllStringSubmatch(content, -1) {
		attrs, body := m[1], m[2]
		if ldJSONTypeRe.MatchString(attrs) {
			continue
		}
		if !scriptSrcAttrRe.MatchString(attrs) && strings.TrimSpace(body) != "" {
			findings = append(findings, types.Finding{
				RuleID:   RuleInlineScript,
				Severity: types.SeverityWarning,
				Message:  "Inline script block",
			})
		}
		if dynamicCodeRe.MatchString(body) {
			findings = append(findings, types.Finding{
				RuleID:   RuleDynamicCode,
				Severity: types.SeverityError,
				Message:  "Script uses a dynamic code execution construct",
			})
		}
	}

	return findings
}
