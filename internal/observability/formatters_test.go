package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/webcheck/internal/cache"
	"github.com/jonathan/webcheck/internal/patch"
	"github.com/jonathan/webcheck/internal/scanner"
	"github.com/jonathan/webcheck/internal/types"
)

func TestPrintScanResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.ScanResult{
		FileName: "page.html",
		FileType: types.FormatMarkup,
		Issues: []types.Issue{
			{Category: types.CategoryAccessibility, Description: "Image element is missing alt text", Severity: types.IssueSeverityHigh},
			{Category: types.CategorySEO, Description: "Document has no meta description", Severity: types.IssueSeverityMedium},
		},
	}

	p.PrintScanResult(result)
	output := buf.String()

	assert.Contains(t, output, "SCAN RESULT")
	assert.Contains(t, output, "page.html")
	assert.Contains(t, output, "markup")
	assert.Contains(t, output, "accessibility")
	assert.Contains(t, output, "1 high, 1 medium, 0 low")
}

func TestPrintScanResult_NoIssues(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScanResult(&types.ScanResult{FileName: "clean.html", IsValid: true})

	assert.Contains(t, buf.String(), "NO ISSUES FOUND")
}

func TestPrintScanResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScanResult(nil)

	assert.Empty(t, buf.String())
}

func TestPrintScanResult_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.ScanResult{FileName: "busy.html", FileType: types.FormatMarkup}
	for i := 0; i < 8; i++ {
		result.Issues = append(result.Issues, types.Issue{
			Category:    types.CategoryStructure,
			Description: "Duplicate element id",
			Severity:    types.IssueSeverityLow,
		})
	}

	p.PrintScanResult(result)

	assert.Contains(t, buf.String(), "and 3 more issues")
}

func TestPrintDirectoryReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := &scanner.DirectoryReport{
		RunID:       "run-123",
		Root:        "/srv/site",
		TotalFiles:  4,
		ValidFiles:  2,
		HighCount:   1,
		MediumCount: 3,
		Skipped:     []string{"/srv/site/locked.html"},
	}

	p.PrintDirectoryReport(report)
	output := buf.String()

	assert.Contains(t, output, "DIRECTORY SCAN")
	assert.Contains(t, output, "run-123")
	assert.Contains(t, output, "4 files (2 valid)")
	assert.Contains(t, output, "locked.html")
}

func TestPrintCacheStats(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCacheStats(&cache.Stats{Hits: 7, Misses: 3, SavedTimeMs: 42, MemoryEntries: 5, PersistentEntries: 10})
	output := buf.String()

	assert.Contains(t, output, "CACHE STATISTICS")
	assert.Contains(t, output, "Hits:       7")
	assert.Contains(t, output, "42ms")
	assert.Contains(t, output, "Persistent entries: 10")
}

func TestPrintPatch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPatch("page.html", &patch.Patch{
		Diff:      "--- page.html\n+++ page.html.fixed\n@@ -1 +1 @@\n-<img src=\"a.png\">\n+<img src=\"a.png\" alt=\"A\">\n",
		Rationale: "Applied: injected alt text.",
	})
	output := buf.String()

	assert.Contains(t, output, "SYNTHESIZED PATCH")
	assert.Contains(t, output, "page.html")
	assert.Contains(t, output, "injected alt text")
	assert.Contains(t, output, "1 hunk(s)")
}

func TestPrintPatch_NoDiff(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPatch("page.html", &patch.Patch{Rationale: "No automatic fixes applicable."})

	assert.Contains(t, buf.String(), "No diff produced")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 200))
	output := buf.String()

	assert.Contains(t, output, "...")
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
}
