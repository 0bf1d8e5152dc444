// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/webcheck/internal/cache"
	"github.com/jonathan/webcheck/internal/patch"
	"github.com/jonathan/webcheck/internal/scanner"
	"github.com/jonathan/webcheck/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScanResult outputs a human-readable summary of one file's scan.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintScanResult(result *types.ScanResult) {
	if result == nil {
		return
	}

	if len(result.Issues) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO ISSUES FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:   %s\n", result.FileName))
	sb.WriteString(fmt.Sprintf("Format: %s\n", result.FileType))
	high, medium, low := result.CountBySeverity()
	sb.WriteString(fmt.Sprintf("Issues: %d high, %d medium, %d low\n\n", high, medium, low))

	count := min(len(result.Issues), maxItemsToShow)
	for i := 0; i < count; i++ {
		issue := result.Issues[i]
		description := issue.Description
		if len(description) > 45 {
			description = description[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("⚠ [%s/%s]\n", issue.Category, issue.Severity))
		sb.WriteString(fmt.Sprintf("  %s\n", description))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(result.Issues) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more issues", len(result.Issues)-maxItemsToShow))
	}

	p.printBox("SCAN RESULT", sb.String())
}

// PrintDirectoryReport outputs the aggregate summary of a directory scan.
func (p *Printer) PrintDirectoryReport(report *scanner.DirectoryReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:     %s\n", report.RunID))
	sb.WriteString(fmt.Sprintf("Root:    %s\n", report.Root))
	sb.WriteString(fmt.Sprintf("Scanned: %d files (%d valid)\n", report.TotalFiles, report.ValidFiles))
	sb.WriteString(fmt.Sprintf("Issues:  %d high, %d medium, %d low\n",
		report.HighCount, report.MediumCount, report.LowCount))

	if len(report.Skipped) > 0 {
		sb.WriteString("\nSkipped:\n")
		count := min(len(report.Skipped), 3)
		for i := 0; i < count; i++ {
			path := report.Skipped[i]
			if len(path) > 50 {
				path = "..." + path[len(path)-47:]
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", path))
		}
		if len(report.Skipped) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.Skipped)-3))
		}
	}

	p.printBox("DIRECTORY SCAN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCacheStats outputs the cache hit/miss counters and tier sizes.
func (p *Printer) PrintCacheStats(stats *cache.Stats) {
	if stats == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Hits:       %d\n", stats.Hits))
	sb.WriteString(fmt.Sprintf("Misses:     %d\n", stats.Misses))
	sb.WriteString(fmt.Sprintf("Time saved: %dms\n\n", stats.SavedTimeMs))
	sb.WriteString(fmt.Sprintf("Memory entries:     %d\n", stats.MemoryEntries))
	sb.WriteString(fmt.Sprintf("Persistent entries: %d", stats.PersistentEntries))

	p.printBox("CACHE STATISTICS", sb.String())
}

// PrintPatch outputs a summary of a synthesized patch without dumping the
// full diff into the box.
func (p *Printer) PrintPatch(path string, pt *patch.Patch) {
	if pt == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File: %s\n", path))

	rationale := pt.Rationale
	if len(rationale) > 50 {
		rationale = rationale[:47] + "..."
	}
	sb.WriteString(fmt.Sprintf("%s\n", rationale))

	hunks := strings.Count(pt.Diff, "@@") / 2
	if pt.Diff == "" {
		sb.WriteString("No diff produced")
	} else {
		sb.WriteString(fmt.Sprintf("Diff: %d hunk(s), %d bytes", hunks, len(pt.Diff)))
	}

	p.printBox("SYNTHESIZED PATCH", sb.String())
}
