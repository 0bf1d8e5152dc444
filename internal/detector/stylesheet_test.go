// Package detector evaluates front-end source documents against per-format
// rule batteries and reports raw findings.
package detector

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/webcheck/internal/types"
)

func detectStylesheet(t *testing.T, content string) []types.Finding {
	t.Helper()
	doc, ok := types.NewDocument("main.css", content)
	require.True(t, ok)
	return New().Detect(doc)
}

func TestStylesheet_DuplicateSelectors(t *testing.T) {
	content := `.btn { color: red; }
.card { padding: 4px; }
.btn { color: blue; }`
	findings := detectStylesheet(t, content)
	dups := findingsByRule(findings, RuleDuplicateSelector)
	require.Len(t, dups, 1)
	assert.Contains(t, dups[0].Message, ".btn")
}

func TestStylesheet_ImportantOveruse(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 12; i++ {
		sb.WriteString(".x { color: red !important; }\n")
	}
	findings := detectStylesheet(t, sb.String())
	assert.Len(t, findingsByRule(findings, RuleImportantOveruse), 1)

	findings = detectStylesheet(t, ".x { color: red !important; }")
	assert.Empty(t, findingsByRule(findings, RuleImportantOveruse))
}

func TestStylesheet_CSSImport(t *testing.T) {
	findings := detectStylesheet(t, `@import url("base.css");
@import "theme.css";
.a { color: red; }`)
	assert.Len(t, findingsByRule(findings, RuleCSSImport), 2)
}

func TestStylesheet_ExcessiveFonts(t *testing.T) {
	content := `.a { font-family: Arial; }
.b { font-family: Helvetica; }
.c { font-family: Georgia; }
.d { font-family: "Times New Roman"; }
.e { font-family: Verdana; }`
	findings := detectStylesheet(t, content)
	assert.Len(t, findingsByRule(findings, RuleExcessiveFonts), 1)

	// Repeated use of the same family does not count twice
	content = strings.Repeat(".x { font-family: Arial; }\n", 10)
	findings = detectStylesheet(t, content)
	assert.Empty(t, findingsByRule(findings, RuleExcessiveFonts))
}

func TestStylesheet_SmallFonts(t *testing.T) {
	findings := detectStylesheet(t, `.fine { font-size: 16px; } .tiny { font-size: 9px; }`)
	small := findingsByRule(findings, RuleSmallFont)
	require.Len(t, small, 1)
	assert.Contains(t, small[0].Message, "9px")
}

func TestStylesheet_InsecureURL(t *testing.T) {
	findings := detectStylesheet(t, `.hero { background: url("http://cdn.example.com/bg.png"); }`)
	assert.Len(t, findingsByRule(findings, RuleInsecureResource), 1)

	findings = detectStylesheet(t, `.hero { background: url("https://cdn.example.com/bg.png"); }`)
	assert.Empty(t, findingsByRule(findings, RuleInsecureResource))
}

func TestStylesheet_LowContrast(t *testing.T) {
	findings := detectStylesheet(t, `.faint { color: #aaaaaa; background-color: #bbbbbb; }
.crisp { color: #000000; background-color: #ffffff; }`)
	assert.Len(t, findingsByRule(findings, RuleLowContrast), 1)
}

func TestStylesheet_EmptyContent(t *testing.T) {
	assert.Empty(t, detectStylesheet(t, ""))
}
