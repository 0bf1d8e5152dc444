// Package patch synthesizes corrective edits for front-end source documents
// and renders them as unified diffs.
package patch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/webcheck/internal/types"
)

var (
	htmlOpenTagRe    = regexp.MustCompile(`(?i)<html\b[^>]*>`)
	langPresentRe    = regexp.MustCompile(`(?i)\blang\s*=`)
	dirPresentRe     = regexp.MustCompile(`(?i)\bdir\s*=`)
	imgOpenTagRe     = regexp.MustCompile(`(?i)<img\b[^>]*?/?>`)
	altPresentRe     = regexp.MustCompile(`(?i)\balt\s*=`)
	imgSrcRe         = regexp.MustCompile(`(?i)\bsrc\s*=\s*["']([^"']*)["']`)
	ldJSONPresentRe  = regexp.MustCompile(`(?i)application/ld\+json`)
	headCloseRe      = regexp.MustCompile(`(?i)</head>`)
	htmlCloseRe      = regexp.MustCompile(`(?i)</html>`)
	viewportRe       = regexp.MustCompile(`(?i)<meta\b[^>]*name\s*=\s*["']viewport["']`)
	colorSchemeRe    = regexp.MustCompile(`(?i)<meta\b[^>]*name\s*=\s*["']color-scheme["']`)
	cssInsecureURLRe = regexp.MustCompile(`(?i)(url\(\s*["']?)http://`)
	prefersSchemeRe  = regexp.MustCompile(`(?i)prefers-color-scheme`)
)

// viewportContents maps a viewport-class preference to the meta tag content
// injected for it.
var viewportContents = map[string]string{
	"mobile":  "width=device-width, initial-scale=1",
	"tablet":  "width=device-width, initial-scale=1",
	"desktop": "width=1024, initial-scale=1",
}

// patternTransform applies the structural edit set via text substitution,
// plus the context-driven edits gated on the supplied preferences. It works
// on raw text only, so it handles documents the parser rejects, and every
// edit is written to be idempotent: a condition already satisfied is left
// untouched.
func patternTransform(content string, format types.Format, prefs *types.Preferences) outcome {
	if format == types.FormatStylesheet {
		return stylesheetPatternTransform(content, prefs)
	}

	result := outcome{content: content}
	fullDoc := htmlRootRe.MatchString(content)

	// Default language attribute on the document root
	if fullDoc {
		if tag := htmlOpenTagRe.FindString(result.content); tag != "" && !langPresentRe.MatchString(tag) {
			lang := defaultLang
			if prefs != nil && prefs.Locale != "" {
				lang = prefs.Locale
			}
			attrs := fmt.Sprintf(` lang=%q`, lang)
			if prefs != nil && types.IsRTLLocale(lang) && !dirPresentRe.MatchString(tag) {
				attrs += ` dir="rtl"`
			}
			replacement := strings.Replace(tag, "<html", "<html"+attrs, 1)
			result.content = strings.Replace(result.content, tag, replacement, 1)
			result.edits = append(result.edits, fmt.Sprintf("injected lang=%q on the document root", lang))
		}
	}

	// Generated alt text on images lacking it
	altCount := 0
	result.content = imgOpenTagRe.ReplaceAllStringFunc(result.content, func(tag string) string {
		if altPresentRe.MatchString(tag) {
			return tag
		}
		src := ""
		if m := imgSrcRe.FindStringSubmatch(tag); m != nil {
			src = m[1]
		}
		altCount++
		return insertAttr(tag, fmt.Sprintf(`alt=%q`, SuggestAltText(src)))
	})
	if altCount > 0 {
		result.edits = append(result.edits, fmt.Sprintf("added generated alt text to %d image(s)", altCount))
	}

	// Minimal structured-data block
	if fullDoc && !ldJSONPresentRe.MatchString(result.content) {
		result.content = insertBeforeClose(result.content, structuredDataBlock)
		result.edits = append(result.edits, "inserted a minimal structured-data block")
		result.generatedContent = true
	}

	// Context-driven edits, applied only when the caller supplied the
	// corresponding preference.
	if fullDoc && prefs != nil {
		if prefs.Viewport != "" && !viewportRe.MatchString(result.content) {
			meta := fmt.Sprintf(`<meta name="viewport" content=%q>`, viewportContents[prefs.Viewport])
			result.content = insertBeforeClose(result.content, meta)
			result.edits = append(result.edits, fmt.Sprintf("injected a viewport meta tag for the %s viewport", prefs.Viewport))
		}
		if prefs.ColorScheme != "" && !colorSchemeRe.MatchString(result.content) {
			schemes := "light dark"
			if prefs.ColorScheme == "dark" {
				schemes = "dark light"
			}
			meta := fmt.Sprintf(`<meta name="color-scheme" content=%q>`, schemes)
			result.content = insertBeforeClose(result.content, meta)
			result.edits = append(result.edits, fmt.Sprintf("declared %s color-scheme support", prefs.ColorScheme))
		}
	}

	return result
}

// stylesheetPatternTransform is the only transform path for stylesheets.
func stylesheetPatternTransform(content string, prefs *types.Preferences) outcome {
	result := outcome{content: content}

	if cssInsecureURLRe.MatchString(result.content) {
		result.content = cssInsecureURLRe.ReplaceAllString(result.content, "${1}https://")
		result.edits = append(result.edits, "upgraded plain-HTTP url() references to HTTPS")
	}

	if prefs != nil && prefs.ColorScheme != "" && !prefersSchemeRe.MatchString(result.content) {
		stub := fmt.Sprintf("\n@media (prefers-color-scheme: %s) {\n}\n", prefs.ColorScheme)
		result.content += stub
		result.edits = append(result.edits, fmt.Sprintf("appended a prefers-color-scheme %s media query stub", prefs.ColorScheme))
		result.generatedContent = true
	}

	return result
}

// insertAttr adds an attribute to an open tag, before its closing bracket.
func insertAttr(tag, attr string) string {
	if strings.HasSuffix(tag, "/>") {
		return strings.TrimSpace(strings.TrimSuffix(tag, "/>")) + " " + attr + " />"
	}
	return strings.TrimSuffix(tag, ">") + " " + attr + ">"
}

// insertBeforeClose puts a line inside the document head when one exists,
// otherwise before the root close tag, otherwise at the end.
func insertBeforeClose(content, line string) string {
	if loc := headCloseRe.FindStringIndex(content); loc != nil {
		return content[:loc[0]] + line + "\n" + content[loc[0]:]
	}
	if loc := htmlCloseRe.FindStringIndex(content); loc != nil {
		return content[:loc[0]] + line + "\n" + content[loc[0]:]
	}
	return content + "\n" + line
}
