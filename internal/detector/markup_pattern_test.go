// Package detector evaluates front-end source documents against per-format
// rule batteries and reports raw findings.
package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/webcheck/internal/types"
)

func detectPattern(t *testing.T, content string) []types.Finding {
	t.Helper()
	doc, ok := types.NewDocument("page.html", content)
	require.True(t, ok)
	p := &markupPattern{}
	return p.Detect(doc)
}

func TestMarkupPattern_MissingLangAndMetadata(t *testing.T) {
	findings := detectPattern(t, `<html><head></head><body></body></html>`)
	assert.Len(t, findingsByRule(findings, RuleMissingLang), 1)
	assert.Len(t, findingsByRule(findings, RuleMissingTitle), 1)
	assert.Len(t, findingsByRule(findings, RuleMissingDescription), 1)
	assert.Len(t, findingsByRule(findings, RuleMissingViewport), 1)
	assert.Len(t, findingsByRule(findings, RuleMissingCSP), 1)
}

func TestMarkupPattern_CompleteHeadIsClean(t *testing.T) {
	content := `<html lang="en"><head>
		<title>Home</title>
		<meta name="description" content="d">
		<meta name="viewport" content="width=device-width">
		<meta http-equiv="Content-Security-Policy" content="default-src 'self'">
	</head><body></body></html>`
	findings := detectPattern(t, content)
	assert.Empty(t, findingsByRule(findings, RuleMissingLang))
	assert.Empty(t, findingsByRule(findings, RuleMissingTitle))
	assert.Empty(t, findingsByRule(findings, RuleMissingDescription))
	assert.Empty(t, findingsByRule(findings, RuleMissingViewport))
	assert.Empty(t, findingsByRule(findings, RuleMissingCSP))
}

func TestMarkupPattern_ImageRules(t *testing.T) {
	findings := detectPattern(t, `<img src="hero.png"><img src="ok.png" alt="ok" loading="lazy">`)
	altFindings := findingsByRule(findings, RuleImgAlt)
	require.Len(t, altFindings, 1)
	assert.Contains(t, altFindings[0].Message, "hero.png")
	assert.Len(t, findingsByRule(findings, RuleImgLazyLoading), 1)
}

func TestMarkupPattern_TargetBlank(t *testing.T) {
	findings := detectPattern(t, `<a href="https://x.example" target="_blank">a</a>
		<a href="https://y.example" target="_blank" rel="noopener">b</a>`)
	blank := findingsByRule(findings, RuleTargetBlank)
	require.Len(t, blank, 1)
	assert.Contains(t, blank[0].SuggestedFix, "noopener")
}

func TestMarkupPattern_DuplicateIDsAndHandlers(t *testing.T) {
	findings := detectPattern(t, `<div id="x" onclick="f()"></div><div id="x"></div>`)
	assert.Len(t, findingsByRule(findings, RuleDuplicateID), 1)
	assert.Len(t, findingsByRule(findings, RuleInlineEventHandler), 1)
}

func TestMarkupPattern_InsecureAndDynamic(t *testing.T) {
	content := `<script src="http://cdn.example.com/a.js"></script>
		<script>document.write("<b>x</b>")</script>
		<a href="javascript:void(0)">x</a>`
	findings := detectPattern(t, content)
	assert.Len(t, findingsByRule(findings, RuleInsecureResource), 1)
	assert.Len(t, findingsByRule(findings, RuleInlineScript), 1)
	assert.Len(t, findingsByRule(findings, RuleDynamicCode), 1)
	assert.Len(t, findingsByRule(findings, RuleJSURL), 1)
}

func TestMarkupPattern_LDJSONScriptIgnored(t *testing.T) {
	findings := detectPattern(t, `<script type="application/ld+json">{"@context":"https://schema.org"}</script>`)
	assert.Empty(t, findingsByRule(findings, RuleInlineScript))
}

func TestMarkupBattery_FallsBackToPatternOnUnparseableInput(t *testing.T) {
	// Content with no element nodes at all exercises the fallback path;
	// the battery must still run and must not panic.
	doc, ok := types.NewDocument("odd.html", "plain prose published 12/31/2023 with no tags")
	require.True(t, ok)
	findings := New().Detect(doc)
	assert.NotEmpty(t, findingsByRule(findings, RuleHardcodedDate))
}
