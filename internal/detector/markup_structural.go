// Package detector evaluates front-end source documents against per-format
// rule batteries and reports raw findings.
package detector

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jonathan/webcheck/internal/types"
)

// markupStructural is the tree-walking evaluator for HTML documents. It
// parses the content once and runs every rule against the parsed tree,
// which gives it precise parent/child and attribute queries the pattern
// evaluator cannot make.
type markupStructural struct{}

// inlineTags cannot contain block-level children.
var inlineTags = map[string]bool{
	"a": true, "b": true, "em": true, "i": true, "label": true,
	"small": true, "span": true, "strong": true,
}

// blockTags are block-level elements for the nesting check.
var blockTags = map[string]bool{
	"article": true, "aside": true, "div": true, "footer": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "ol": true, "p": true, "section": true, "table": true,
	"ul": true,
}

// listContainers are the valid parents of a list item.
var listContainers = map[string]bool{"ul": true, "ol": true, "menu": true}

var (
	rtlTextRe       = regexp.MustCompile(`[\x{0590}-\x{05FF}\x{0600}-\x{06FF}\x{0700}-\x{074F}]`)
	dynamicCodeRe   = regexp.MustCompile(`\beval\s*\(|\bnew\s+Function\s*\(|document\.write\s*\(`)
	classSelectorRe = regexp.MustCompile(`\.([A-Za-z_][A-Za-z0-9_-]*)`)
	containerHintRe = regexp.MustCompile(`(?i)\b(nav|navigation|header|footer|sidebar|main|content|menu|banner)\b`)
	tableCellRe     = regexp.MustCompile(`(?i)<t[dh][\s>]`)
	tableRowRe      = regexp.MustCompile(`(?i)<tr[\s>]`)
)

// semanticEquivalents maps container naming hints to the semantic element
// that should replace the generic div.
var semanticEquivalents = map[string]string{
	"nav": "nav", "navigation": "nav", "menu": "nav",
	"header": "header", "banner": "header",
	"footer":  "footer",
	"sidebar": "aside",
	"main":    "main", "content": "main",
}

// Detect parses the document and evaluates the structural rule set. The
// second return value is false when parsing is unavailable or unreliable;
// the caller then falls back to the pattern evaluator. A parse failure is
// never an error to the caller.
func (m *markupStructural) Detect(doc *types.Document) ([]types.Finding, bool) {
	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(doc.Content))
	if err != nil {
		return nil, false
	}
	if strings.TrimSpace(doc.Content) != "" && parsed.Find("body *, head *").Length() == 0 && !isFullDocument(doc.Content) {
		// Parser produced an empty shell for non-empty input; the tree
		// cannot be trusted, so let the pattern pass handle it.
		return nil, false
	}

	fullDoc := isFullDocument(doc.Content)
	findings := []types.Finding{}
	findings = append(findings, m.structureFindings(parsed, doc.Content)...)
	findings = append(findings, m.accessibilityFindings(parsed, doc.Content, fullDoc)...)
	findings = append(findings, m.seoFindings(parsed, fullDoc)...)
	findings = append(findings, m.securityFindings(parsed, fullDoc)...)
	findings = append(findings, m.performanceFindings(parsed)...)
	return findings, true
}

func (m *markupStructural) structureFindings(parsed *goquery.Document, content string) []types.Finding {
	var findings []types.Finding

	// Duplicate ids
	idCounts := make(map[string]int)
	idOrder := make([]string, 0)
	parsed.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		if id == "" {
			return
		}
		if idCounts[id] == 0 {
			idOrder = append(idOrder, id)
		}
		idCounts[id]++
	})
	for _, id := range idOrder {
		if idCounts[id] > 1 {
			findings = append(findings, types.Finding{
				RuleID:       RuleDuplicateID,
				Severity:     types.SeverityWarning,
				Message:      fmt.Sprintf("id %q is declared on %d elements", id, idCounts[id]),
				SuggestedFix: "Make every id unique within the document",
			})
		}
	}

	// Empty or placeholder links
	parsed.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || strings.TrimSpace(href) == "" || href == "#" {
			findings = append(findings, types.Finding{
				RuleID:       RuleEmptyLink,
				Severity:     types.SeverityWarning,
				Message:      "Anchor with a missing, empty, or placeholder href",
				SuggestedFix: "Point the href at a real destination or use a button",
			})
		}
	})

	// Empty image references
	parsed.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, exists := s.Attr("src")
		if !exists || strings.TrimSpace(src) == "" {
			findings = append(findings, types.Finding{
				RuleID:   RuleEmptyImageSrc,
				Severity: types.SeverityWarning,
				Message:  "Image with a missing or empty src",
			})
		}
	})

	// Block element inside an inline parent
	parsed.Find("*").Each(func(_ int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		if !blockTags[tag] {
			return
		}
		parentTag := goquery.NodeName(s.Parent())
		if inlineTags[parentTag] {
			findings = append(findings, types.Finding{
				RuleID:   RuleInvalidNesting,
				Severity: types.SeverityError,
				Message:  fmt.Sprintf("Block element <%s> nested inside inline element <%s>", tag, parentTag),
			})
		}
	})

	// Interactive element inside an interactive element
	parsed.Find("a a, a button, button a, button button").Each(func(_ int, s *goquery.Selection) {
		findings = append(findings, types.Finding{
			RuleID:   RuleInvalidNesting,
			Severity: types.SeverityError,
			Message:  fmt.Sprintf("Interactive element <%s> nested inside another interactive element", goquery.NodeName(s)),
		})
	})

	// List item outside a list container
	parsed.Find("li").Each(func(_ int, s *goquery.Selection) {
		if !listContainers[goquery.NodeName(s.Parent())] {
			findings = append(findings, types.Finding{
				RuleID:   RuleInvalidNesting,
				Severity: types.SeverityError,
				Message:  "List item outside a list container",
			})
		}
	})

	// Table cell outside a row. The parser drops cells that appear outside
	// a table context entirely, so a raw-text check catches those and the
	// tree check covers cells that survive with the wrong parent.
	if tableCellRe.MatchString(content) && !tableRowRe.MatchString(content) {
		findings = append(findings, types.Finding{
			RuleID:   RuleInvalidNesting,
			Severity: types.SeverityError,
			Message:  "Table cell outside a table row",
		})
	}
	parsed.Find("td, th").Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s.Parent()) != "tr" {
			findings = append(findings, types.Finding{
				RuleID:   RuleInvalidNesting,
				Severity: types.SeverityError,
				Message:  fmt.Sprintf("Table cell <%s> outside a table row", goquery.NodeName(s)),
			})
		}
	})

	// Excessive tree depth
	if depth := maxElementDepth(parsed); depth > maxTreeDepth {
		findings = append(findings, types.Finding{
			RuleID:   RuleDeepNesting,
			Severity: types.SeverityWarning,
			Message:  fmt.Sprintf("Element tree reaches depth %d, deeper than the expected maximum of %d", depth, maxTreeDepth),
		})
	}

	return findings
}

func (m *markupStructural) accessibilityFindings(parsed *goquery.Document, content string, fullDoc bool) []types.Finding {
	var findings []types.Finding

	// Missing or empty alt text
	parsed.Find("img").Each(func(_ int, s *goquery.Selection) {
		alt, exists := s.Attr("alt")
		if !exists || strings.TrimSpace(alt) == "" {
			src, _ := s.Attr("src")
			findings = append(findings, types.Finding{
				RuleID:       RuleImgAlt,
				Severity:     types.SeverityError,
				Message:      fmt.Sprintf("Image %q has no alternative text", src),
				SuggestedFix: "Add a descriptive alt attribute",
				Rationale:    "Screen readers cannot describe images without alt text.",
			})
		}
	})

	// Language declaration on the document root
	if fullDoc {
		lang, exists := parsed.Find("html").Attr("lang")
		if !exists || strings.TrimSpace(lang) == "" {
			findings = append(findings, types.Finding{
				RuleID:       RuleMissingLang,
				Severity:     types.SeverityError,
				Message:      "Document root lacks a language declaration",
				SuggestedFix: `lang="en"`,
				Rationale:    "Assistive technology needs the document language to pick pronunciation rules.",
			})
		}

		// Directionality for right-to-left text
		if rtlTextRe.MatchString(content) {
			if _, hasDir := parsed.Find("html").Attr("dir"); !hasDir {
				findings = append(findings, types.Finding{
					RuleID:       RuleMissingDir,
					Severity:     types.SeverityWarning,
					Message:      "Right-to-left text present but the document root has no dir attribute",
					SuggestedFix: `dir="rtl"`,
				})
			}
		}
	}

	// Unlabeled form controls
	labeledIDs := make(map[string]bool)
	parsed.Find("label[for]").Each(func(_ int, s *goquery.Selection) {
		if forID, _ := s.Attr("for"); forID != "" {
			labeledIDs[forID] = true
		}
	})
	parsed.Find("input, select, textarea").Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "input" {
			inputType, _ := s.Attr("type")
			switch strings.ToLower(inputType) {
			case "hidden", "submit", "button", "reset", "image":
				return
			}
		}
		if hasAccessibleName(s, labeledIDs) {
			return
		}
		findings = append(findings, types.Finding{
			RuleID:       RuleUnlabeledControl,
			Severity:     types.SeverityError,
			Message:      fmt.Sprintf("Form control <%s> has no associated label", goquery.NodeName(s)),
			SuggestedFix: "Associate a <label>, or add aria-label",
		})
	})

	// Unlabeled buttons
	parsed.Find("button").Each(func(_ int, s *goquery.Selection) {
		if strings.TrimSpace(s.Text()) != "" {
			return
		}
		if _, ok := s.Attr("aria-label"); ok {
			return
		}
		if _, ok := s.Attr("title"); ok {
			return
		}
		findings = append(findings, types.Finding{
			RuleID:       RuleUnlabeledButton,
			Severity:     types.SeverityError,
			Message:      "Button has neither text content nor an ARIA label",
			SuggestedFix: "Give the button visible text or aria-label",
		})
	})

	// Low-contrast inline color pairs
	parsed.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		fg, bg, ok := colorPairFromCSS(style)
		if !ok {
			return
		}
		if ratio := contrastRatio(fg, bg); ratio < minContrastRatio {
			findings = append(findings, types.Finding{
				RuleID:   RuleLowContrast,
				Severity: types.SeverityWarning,
				Message:  fmt.Sprintf("Inline colors have a contrast ratio of %.1f:1, below %.1f:1", ratio, minContrastRatio),
			})
		}
	})

	// Positive tabindex (keyboard trap risk)
	parsed.Find("[tabindex]").Each(func(_ int, s *goquery.Selection) {
		raw, _ := s.Attr("tabindex")
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n > 0 {
			findings = append(findings, types.Finding{
				RuleID:       RulePositiveTabindex,
				Severity:     types.SeverityWarning,
				Message:      fmt.Sprintf("tabindex=%d overrides natural focus order and risks trapping keyboard users", n),
				SuggestedFix: `tabindex="0"`,
			})
		}
	})

	return findings
}

func (m *markupStructural) seoFindings(parsed *goquery.Document, fullDoc bool) []types.Finding {
	var findings []types.Finding

	if fullDoc {
		if strings.TrimSpace(parsed.Find("title").Text()) == "" {
			findings = append(findings, types.Finding{
				RuleID:       RuleMissingTitle,
				Severity:     types.SeverityError,
				Message:      "Document has no title element",
				SuggestedFix: "<title>Page title</title>",
			})
		}
		if parsed.Find(`meta[name="description"]`).Length() == 0 {
			findings = append(findings, types.Finding{
				RuleID:       RuleMissingDescription,
				Severity:     types.SeverityWarning,
				Message:      "Document has no meta description",
				SuggestedFix: `<meta name="description" content="...">`,
			})
		}
		if parsed.Find(`meta[name="viewport"]`).Length() == 0 {
			findings = append(findings, types.Finding{
				RuleID:       RuleMissingViewport,
				Severity:     types.SeverityWarning,
				Message:      "Document has no viewport meta tag",
				SuggestedFix: `<meta name="viewport" content="width=device-width, initial-scale=1">`,
			})
		}
		if parsed.Find(`link[rel="canonical"]`).Length() == 0 {
			findings = append(findings, types.Finding{
				RuleID:   RuleMissingCanonical,
				Severity: types.SeverityInfo,
				Message:  "Document has no canonical link",
			})
		}
		if parsed.Find(`meta[property^="og:"]`).Length() == 0 {
			findings = append(findings, types.Finding{
				RuleID:   RuleMissingOpenGraph,
				Severity: types.SeverityInfo,
				Message:  "Document has no Open Graph metadata",
			})
		}
		if parsed.Find("h1").Length() == 0 {
			findings = append(findings, types.Finding{
				RuleID:   RuleMissingH1,
				Severity: types.SeverityWarning,
				Message:  "Document has no top-level heading",
			})
		}
		if parsed.Find(`script[type="application/ld+json"]`).Length() == 0 {
			findings = append(findings, types.Finding{
				RuleID:    RuleMissingStructured,
				Severity:  types.SeverityInfo,
				Message:   "Document has no structured-data block",
				Rationale: "Structured data helps search engines understand page content.",
			})
		}
	}

	// Generic containers named like semantic elements
	parsed.Find("div[id], div[class]").Each(func(_ int, s *goquery.Selection) {
		hint := firstContainerHint(s)
		if hint == "" {
			return
		}
		if equivalent, ok := semanticEquivalents[strings.ToLower(hint)]; ok {
			findings = append(findings, types.Finding{
				RuleID:       RuleNonSemanticContainer,
				Severity:     types.SeverityInfo,
				Message:      fmt.Sprintf("div named %q should be the semantic element <%s>", hint, equivalent),
				SuggestedFix: fmt.Sprintf("<%s>", equivalent),
			})
		}
	})

	return findings
}

func (m *markupStructural) securityFindings(parsed *goquery.Document, fullDoc bool) []types.Finding {
	var findings []types.Finding

	// target="_blank" without a noopener relation
	parsed.Find(`a[target="_blank"]`).Each(func(_ int, s *goquery.Selection) {
		rel, _ := s.Attr("rel")
		if strings.Contains(strings.ToLower(rel), "noopener") {
			return
		}
		findings = append(findings, types.Finding{
			RuleID:       RuleTargetBlank,
			Severity:     types.SeverityError,
			Message:      "target=\"_blank\" link without rel=\"noopener\"",
			SuggestedFix: `rel="noopener noreferrer"`,
			Rationale:    "Without noopener the opened page can navigate the opener window.",
		})
	})

	// Inline scripts and dynamic code execution
	parsed.Find("script").Each(func(_ int, s *goquery.Selection) {
		scriptType, _ := s.Attr("type")
		if scriptType == "application/ld+json" {
			return
		}
		body := s.Text()
		if _, hasSrc := s.Attr("src"); !hasSrc && strings.TrimSpace(body) != "" {
			findings = append(findings, types.Finding{
				RuleID:       RuleInlineScript,
				Severity:     types.SeverityWarning,
				Message:      "Inline script block",
				SuggestedFix: "Move the script into an external file",
			})
		}
		if dynamicCodeRe.MatchString(body) {
			findings = append(findings, types.Finding{
				RuleID:   RuleDynamicCode,
				Severity: types.SeverityError,
				Message:  "Script uses a dynamic code execution construct",
			})
		}
	})

	if fullDoc && parsed.Find(`meta[http-equiv="Content-Security-Policy"]`).Length() == 0 {
		findings = append(findings, types.Finding{
			RuleID:       RuleMissingCSP,
			Severity:     types.SeverityInfo,
			Message:      "Document declares no content security policy",
			SuggestedFix: `<meta http-equiv="Content-Security-Policy" content="default-src 'self'">`,
		})
	}

	// Inline event handlers and insecure references
	parsed.Find("*").Each(func(_ int, s *goquery.Selection) {
		for _, node := range s.Nodes {
			for _, attr := range node.Attr {
				key := strings.ToLower(attr.Key)
				if strings.HasPrefix(key, "on") && len(key) > 2 {
					findings = append(findings, types.Finding{
						RuleID:       RuleInlineEventHandler,
						Severity:     types.SeverityWarning,
						Message:      fmt.Sprintf("Inline %s handler on <%s>", key, node.Data),
						SuggestedFix: "Attach the handler with addEventListener",
					})
				}
				if (key == "src" || key == "href") && strings.HasPrefix(strings.ToLower(attr.Val), "http://") {
					findings = append(findings, types.Finding{
						RuleID:       RuleInsecureResource,
						Severity:     types.SeverityError,
						Message:      fmt.Sprintf("<%s> references %q over plain HTTP", node.Data, attr.Val),
						SuggestedFix: "Use an https:// URL",
					})
				}
				if key == "href" && strings.HasPrefix(strings.TrimSpace(strings.ToLower(attr.Val)), "javascript:") {
					findings = append(findings, types.Finding{
						RuleID:   RuleJSURL,
						Severity: types.SeverityError,
						Message:  "javascript: URL in href",
					})
				}
			}
		}
	})

	return findings
}

func (m *markupStructural) performanceFindings(parsed *goquery.Document) []types.Finding {
	var findings []types.Finding

	parsed.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if _, ok := s.Attr("loading"); !ok {
			findings = append(findings, types.Finding{
				RuleID:       RuleImgLazyLoading,
				Severity:     types.SeverityInfo,
				Message:      fmt.Sprintf("Image %q is not lazy loaded", src),
				SuggestedFix: `loading="lazy"`,
			})
		}
		_, hasWidth := s.Attr("width")
		_, hasHeight := s.Attr("height")
		if !hasWidth || !hasHeight {
			findings = append(findings, types.Finding{
				RuleID:    RuleImgDimensions,
				Severity:  types.SeverityWarning,
				Message:   fmt.Sprintf("Image %q has no explicit dimensions", src),
				Rationale: "Missing dimensions cause layout shift while the image loads.",
			})
		}
	})

	parsed.Find("head script[src]").Each(func(_ int, s *goquery.Selection) {
		_, hasDefer := s.Attr("defer")
		_, hasAsync := s.Attr("async")
		if !hasDefer && !hasAsync {
			src, _ := s.Attr("src")
			findings = append(findings, types.Finding{
				RuleID:       RuleBlockingScript,
				Severity:     types.SeverityWarning,
				Message:      fmt.Sprintf("Script %q in the document head blocks rendering", src),
				SuggestedFix: "Add defer or async",
			})
		}
	})

	// Class selectors in inline styles that match nothing in the document
	styleText := ""
	parsed.Find("style").Each(func(_ int, s *goquery.Selection) {
		styleText += s.Text() + "\n"
	})
	if styleText != "" {
		seen := make(map[string]bool)
		hits := 0
		for _, match := range classSelectorRe.FindAllStringSubmatch(styleText, -1) {
			class := match[1]
			if seen[class] || hits >= maxUnusedStyleHits {
				continue
			}
			seen[class] = true
			if parsed.Find("."+class).Length() == 0 {
				hits++
				findings = append(findings, types.Finding{
					RuleID:   RuleUnusedStyle,
					Severity: types.SeverityInfo,
					Message:  fmt.Sprintf("Style rule for .%s matches no element", class),
				})
			}
		}
	}

	return findings
}

// hasAccessibleName reports whether a form control has any labeling
// mechanism: aria attributes, a title, a wrapping label, or a label[for]
// pointing at its id.
func hasAccessibleName(s *goquery.Selection, labeledIDs map[string]bool) bool {
	for _, attr := range []string{"aria-label", "aria-labelledby", "title"} {
		if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return true
		}
	}
	if s.ParentsFiltered("label").Length() > 0 {
		return true
	}
	if id, ok := s.Attr("id"); ok && labeledIDs[id] {
		return true
	}
	return false
}

// firstContainerHint returns the first id/class token that names a layout
// region, or empty when none match.
func firstContainerHint(s *goquery.Selection) string {
	if id, ok := s.Attr("id"); ok {
		if m := containerHintRe.FindString(id); m != "" {
			return m
		}
	}
	if class, ok := s.Attr("class"); ok {
		if m := containerHintRe.FindString(class); m != "" {
			return m
		}
	}
	return ""
}

// maxElementDepth walks the parsed tree and returns the deepest element
// nesting level.
func maxElementDepth(parsed *goquery.Document) int {
	max := 0
	var walk func(n *html.Node, depth int)
	walk = func(n *html.Node, depth int) {
		if n.Type == html.ElementNode {
			depth++
			if depth > max {
				max = depth
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, depth)
		}
	}
	for _, n := range parsed.Selection.Nodes {
		walk(n, 0)
	}
	return max
}
