// Package patch synthesizes corrective edits for front-end source documents
// and renders them as unified diffs.
package patch

import (
	"path"
	"regexp"
	"strings"
)

// altCollapseRe matches the character runs that separate words in a file
// name: digits, hyphens, underscores, dots, and whitespace.
var altCollapseRe = regexp.MustCompile(`[0-9_\-.\s]+`)

// SuggestAltText derives placeholder alternative text from an image
// reference: take the final path segment, strip the extension, collapse
// separator runs into single spaces, and capitalize the first character.
// References that yield no words fall back to the literal "Image".
func SuggestAltText(src string) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return "Image"
	}

	base := path.Base(src)
	base = strings.TrimSuffix(base, path.Ext(base))

	text := strings.TrimSpace(altCollapseRe.ReplaceAllString(base, " "))
	if text == "" {
		return "Image"
	}

	text = strings.ToLower(text)
	return strings.ToUpper(text[:1]) + text[1:]
}
