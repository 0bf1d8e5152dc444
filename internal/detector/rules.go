// Package detector evaluates front-end source documents against per-format
// rule batteries and reports raw findings.
package detector

import (
	"regexp"
	"strings"

	"github.com/jonathan/webcheck/internal/types"
)

// Rule identifiers. The prefix before the first hyphen determines the
// category the classifier assigns.
const (
	RuleDuplicateID          = "structure-duplicate-id"
	RuleEmptyLink            = "structure-empty-link"
	RuleEmptyImageSrc        = "structure-empty-image-src"
	RuleInvalidNesting       = "structure-invalid-nesting"
	RuleDeepNesting          = "structure-deep-nesting"
	RuleImportantOveruse     = "structure-important-overuse"
	RuleDuplicateSelector    = "structure-duplicate-selector"
	RuleImgAlt               = "a11y-img-alt"
	RuleMissingLang          = "a11y-missing-lang"
	RuleUnlabeledControl     = "a11y-unlabeled-control"
	RuleUnlabeledButton      = "a11y-unlabeled-button"
	RuleLowContrast          = "a11y-low-contrast"
	RulePositiveTabindex     = "a11y-positive-tabindex"
	RuleMissingDir           = "a11y-missing-dir"
	RuleSmallFont            = "a11y-small-font"
	RuleMissingTitle         = "seo-missing-title"
	RuleMissingDescription   = "seo-missing-description"
	RuleMissingViewport      = "seo-missing-viewport"
	RuleMissingCanonical     = "seo-missing-canonical"
	RuleMissingOpenGraph     = "seo-missing-open-graph"
	RuleMissingH1            = "seo-missing-h1"
	RuleNonSemanticContainer = "seo-non-semantic-container"
	RuleMissingStructured    = "seo-missing-structured-data"
	RuleTargetBlank          = "security-target-blank"
	RuleInlineScript         = "security-inline-script"
	RuleMissingCSP           = "security-missing-csp"
	RuleDynamicCode          = "security-dynamic-code"
	RuleInlineEventHandler   = "security-inline-event-handler"
	RuleInsecureResource     = "security-insecure-resource"
	RuleDangerousHTML        = "security-dangerous-html"
	RuleJSURL                = "security-js-url"
	RuleImgLazyLoading       = "perf-img-lazy-loading"
	RuleImgDimensions        = "perf-img-dimensions"
	RuleBlockingScript       = "perf-blocking-script"
	RuleUnusedStyle          = "perf-unused-style"
	RuleExcessiveFonts       = "perf-excessive-fonts"
	RuleCSSImport            = "perf-css-import"
	RuleUntranslatedText     = "l10n-untranslated-text"
	RuleHardcodedDate        = "l10n-hardcoded-date"
	RuleMissingHreflang      = "l10n-missing-hreflang"
)

// Thresholds for the heuristic rules.
const (
	maxTreeDepth       = 25
	maxImportantCount  = 10
	maxDistinctFonts   = 4
	minContrastRatio   = 4.5
	minFontSizePx      = 12.0
	maxUnusedStyleHits = 20
)

// Rule describes one detector rule for catalog listings.
type Rule struct {
	ID          string         `json:"id"`
	Severity    types.Severity `json:"severity"`
	Formats     []types.Format `json:"formats"`
	Description string         `json:"description"`
}

// Rules returns the full rule catalog in a stable order.
func Rules() []Rule {
	return []Rule{
		{RuleDuplicateID, types.SeverityWarning, []types.Format{types.FormatMarkup}, "The same id value is declared on more than one element"},
		{RuleEmptyLink, types.SeverityWarning, []types.Format{types.FormatMarkup}, "Anchor with a missing, empty, or placeholder href"},
		{RuleEmptyImageSrc, types.SeverityWarning, []types.Format{types.FormatMarkup}, "Image with a missing or empty src"},
		{RuleInvalidNesting, types.SeverityError, []types.Format{types.FormatMarkup}, "Element nested inside a parent that cannot contain it"},
		{RuleDeepNesting, types.SeverityWarning, []types.Format{types.FormatMarkup}, "Element tree exceeds the maximum expected depth"},
		{RuleImportantOveruse, types.SeverityInfo, []types.Format{types.FormatStylesheet}, "Excessive use of !important declarations"},
		{RuleDuplicateSelector, types.SeverityInfo, []types.Format{types.FormatStylesheet}, "The same selector is declared more than once"},
		{RuleImgAlt, types.SeverityError, []types.Format{types.FormatMarkup, types.FormatComponent}, "Image without alternative text"},
		{RuleMissingLang, types.SeverityError, []types.Format{types.FormatMarkup}, "Document root lacks a language declaration"},
		{RuleUnlabeledControl, types.SeverityError, []types.Format{types.FormatMarkup}, "Form control without an associated label"},
		{RuleUnlabeledButton, types.SeverityError, []types.Format{types.FormatMarkup}, "Button without a text or ARIA label"},
		{RuleLowContrast, types.SeverityWarning, []types.Format{types.FormatMarkup, types.FormatStylesheet}, "Foreground/background color pair below the minimum contrast ratio"},
		{RulePositiveTabindex, types.SeverityWarning, []types.Format{types.FormatMarkup, types.FormatComponent}, "Positive tabindex overrides natural focus order and risks keyboard traps"},
		{RuleMissingDir, types.SeverityWarning, []types.Format{types.FormatMarkup}, "Right-to-left text present but no dir attribute on the document root"},
		{RuleSmallFont, types.SeverityInfo, []types.Format{types.FormatStylesheet}, "Font size below the legible minimum"},
		{RuleMissingTitle, types.SeverityError, []types.Format{types.FormatMarkup}, "Document has no title element"},
		{RuleMissingDescription, types.SeverityWarning, []types.Format{types.FormatMarkup}, "Document has no meta description"},
		{RuleMissingViewport, types.SeverityWarning, []types.Format{types.FormatMarkup}, "Document has no viewport meta tag"},
		{RuleMissingCanonical, types.SeverityInfo, []types.Format{types.FormatMarkup}, "Document has no canonical link"},
		{RuleMissingOpenGraph, types.SeverityInfo, []types.Format{types.FormatMarkup}, "Document has no Open Graph metadata"},
		{RuleMissingH1, types.SeverityWarning, []types.Format{types.FormatMarkup}, "Document has no top-level heading"},
		{RuleNonSemanticContainer, types.SeverityInfo, []types.Format{types.FormatMarkup}, "Generic container used where a semantic element exists"},
		{RuleMissingStructured, types.SeverityInfo, []types.Format{types.FormatMarkup}, "Document has no structured-data block"},
		{RuleTargetBlank, types.SeverityError, []types.Format{types.FormatMarkup, types.FormatComponent}, "target=\"_blank\" link without rel=\"noopener\""},
		{RuleInlineScript, types.SeverityWarning, []types.Format{types.FormatMarkup}, "Inline script block"},
		{RuleMissingCSP, types.SeverityInfo, []types.Format{types.FormatMarkup}, "Document declares no content security policy"},
		{RuleDynamicCode, types.SeverityError, []types.Format{types.FormatMarkup, types.FormatComponent}, "Dynamic code execution construct"},
		{RuleInlineEventHandler, types.SeverityWarning, []types.Format{types.FormatMarkup}, "Inline event handler attribute"},
		{RuleInsecureResource, types.SeverityError, []types.Format{types.FormatMarkup, types.FormatComponent, types.FormatStylesheet}, "Resource or link loaded over plain HTTP"},
		{RuleDangerousHTML, types.SeverityError, []types.Format{types.FormatComponent}, "Raw HTML injection via dangerouslySetInnerHTML"},
		{RuleJSURL, types.SeverityError, []types.Format{types.FormatMarkup, types.FormatComponent}, "javascript: URL"},
		{RuleImgLazyLoading, types.SeverityInfo, []types.Format{types.FormatMarkup, types.FormatComponent}, "Image without lazy loading"},
		{RuleImgDimensions, types.SeverityWarning, []types.Format{types.FormatMarkup}, "Image without explicit width and height"},
		{RuleBlockingScript, types.SeverityWarning, []types.Format{types.FormatMarkup}, "Blocking script in the document head"},
		{RuleUnusedStyle, types.SeverityInfo, []types.Format{types.FormatMarkup}, "Style rule whose class selector matches no element"},
		{RuleExcessiveFonts, types.SeverityWarning, []types.Format{types.FormatStylesheet}, "More distinct font families than the recommended maximum"},
		{RuleCSSImport, types.SeverityWarning, []types.Format{types.FormatStylesheet}, "@import blocks parallel stylesheet downloads"},
		{RuleUntranslatedText, types.SeverityInfo, []types.Format{types.FormatMarkup, types.FormatComponent}, "Literal text in a document that otherwise uses translation calls"},
		{RuleHardcodedDate, types.SeverityWarning, []types.Format{types.FormatMarkup, types.FormatComponent}, "Hard-coded date literal"},
		{RuleMissingHreflang, types.SeverityInfo, []types.Format{types.FormatMarkup}, "Document declares no alternate-locale links"},
	}
}

var fullDocumentRe = regexp.MustCompile(`(?i)<html[\s>]`)

// isFullDocument reports whether raw content looks like a complete HTML
// document rather than a fragment. Document-level rules (metadata, root
// attributes) only apply to full documents.
func isFullDocument(content string) bool {
	return fullDocumentRe.MatchString(content)
}

// translationConventionRe matches the markers that indicate a source already
// uses a translation convention. Untranslated-text findings are gated on
// this to avoid false positives on plain static pages.
var translationConventionRe = regexp.MustCompile(`\bi18n\b|data-i18n|useTranslation|<Trans[\s>]|formatMessage|\bt\(\s*['"]`)

// hardcodedDateRe matches common literal date formats.
var hardcodedDateRe = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b|\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+\d{4}\b`)

// literalTextRe matches inter-tag text runs long enough to be user-facing
// copy rather than markup noise.
var literalTextRe = regexp.MustCompile(`>\s*([A-Za-z][A-Za-z0-9 ,.'!?-]{11,})\s*<`)

var hreflangRe = regexp.MustCompile(`(?i)hreflang\s*=`)

// localizationFindings runs the text-based localization heuristics shared by
// the markup and component batteries.
func localizationFindings(content string, fullDoc bool) []types.Finding {
	var findings []types.Finding

	if translationConventionRe.MatchString(content) {
		for _, m := range literalTextRe.FindAllStringSubmatch(content, -1) {
			text := strings.TrimSpace(m[1])
			findings = append(findings, types.Finding{
				RuleID:       RuleUntranslatedText,
				Severity:     types.SeverityInfo,
				Message:      "Literal text " + quoteSnippet(text) + " in a document that uses translation calls",
				SuggestedFix: "Wrap the text in the document's translation call",
				Rationale:    "Mixing translated and literal copy leaves some strings untranslatable.",
			})
		}
	}

	for _, m := range hardcodedDateRe.FindAllString(content, -1) {
		findings = append(findings, types.Finding{
			RuleID:       RuleHardcodedDate,
			Severity:     types.SeverityWarning,
			Message:      "Hard-coded date literal " + quoteSnippet(m),
			SuggestedFix: "Format dates with a locale-aware formatter",
			Rationale:    "Literal dates render incorrectly for locales with different date orders.",
		})
	}

	if fullDoc && !hreflangRe.MatchString(content) {
		findings = append(findings, types.Finding{
			RuleID:       RuleMissingHreflang,
			Severity:     types.SeverityInfo,
			Message:      "Document declares no alternate-locale links",
			SuggestedFix: `<link rel="alternate" hreflang="x-default" href="...">`,
		})
	}

	return findings
}

// quoteSnippet quotes a text sample for a finding message, truncating long
// runs so messages stay readable.
func quoteSnippet(text string) string {
	const maxLen = 40
	if len(text) > maxLen {
		text = text[:maxLen] + "..."
	}
	return `"` + text + `"`
}
