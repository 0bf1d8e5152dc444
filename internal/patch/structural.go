// Package patch synthesizes corrective edits for front-end source documents
// and renders them as unified diffs.
package patch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// structuredDataBlock is the minimal structured-data payload injected when a
// document has none.
const structuredDataBlock = `<script type="application/ld+json">{"@context":"https://schema.org","@type":"WebPage"}</script>`

// defaultLang is injected on document roots lacking a language declaration.
const defaultLang = "en"

var htmlRootRe = regexp.MustCompile(`(?i)<html[\s>]`)

// outcome is the result of one transform strategy: the rewritten content,
// a description of each applied edit, and whether any injected content is
// machine-generated rather than derived from the document.
type outcome struct {
	content          string
	edits            []string
	generatedContent bool
}

// structuralTransform parses the content into a manipulable tree and
// applies the fixed, idempotent edit set: a default language attribute on
// the root, generated alt text on images lacking it, and a minimal
// structured-data block when none exists.
//
// The second return value is false when the transform changed nothing:
// parse failure, a fragment the tree round-trip would mangle, or a document
// that already satisfies every condition. The caller then falls back to the
// pattern transform. Parse failures degrade silently; no error escapes.
func structuralTransform(content string) (outcome, bool) {
	// Serializing the tree re-wraps fragments in html/head/body, so only
	// complete documents go through the structural path.
	if !htmlRootRe.MatchString(content) {
		return outcome{content: content}, false
	}

	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return outcome{content: content}, false
	}

	result := outcome{}

	root := parsed.Find("html")
	if lang, ok := root.Attr("lang"); !ok || strings.TrimSpace(lang) == "" {
		root.SetAttr("lang", defaultLang)
		result.edits = append(result.edits, fmt.Sprintf("injected lang=%q on the document root", defaultLang))
	}

	parsed.Find("img").Each(func(_ int, s *goquery.Selection) {
		if alt, ok := s.Attr("alt"); ok && strings.TrimSpace(alt) != "" {
			return
		}
		src, _ := s.Attr("src")
		suggestion := SuggestAltText(src)
		s.SetAttr("alt", suggestion)
		result.edits = append(result.edits, fmt.Sprintf("added alt=%q to image %q", suggestion, src))
	})

	if parsed.Find(`script[type="application/ld+json"]`).Length() == 0 {
		parsed.Find("head").AppendHtml(structuredDataBlock)
		result.edits = append(result.edits, "inserted a minimal structured-data block")
		result.generatedContent = true
	}

	if len(result.edits) == 0 {
		return outcome{content: content}, false
	}

	rendered, err := parsed.Html()
	if err != nil {
		return outcome{content: content}, false
	}
	result.content = rendered
	return result, true
}
