package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/webcheck/internal/cache"
	"github.com/jonathan/webcheck/internal/config"
	"github.com/jonathan/webcheck/internal/observability"
	"github.com/jonathan/webcheck/internal/scanner"
)

var scanCmd = &cobra.Command{
	Use:   "scan <path>",
	Short: "Scan a file or directory for front-end defects",
	Long:  "Scan a single file or a directory tree for structural, accessibility, SEO, security, performance, and localization issues. Supported extensions: .html, .htm, .jsx, .tsx, .css.",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

var (
	scanJSONOutput bool
	scanShowIssues bool
)

func init() {
	scanCmd.Flags().BoolVar(&scanJSONOutput, "json", false, "Emit results as JSON")
	scanCmd.Flags().BoolVar(&scanShowIssues, "issues", false, "List every issue per file")

	rootCmd.AddCommand(scanCmd)
}

func runScan(_ *cobra.Command, args []string) error {
	target := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, c, err := buildScanner(cfg)
	if err != nil {
		return err
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", target, err)
	}

	if info.IsDir() {
		return scanDirectory(s, cfg, target)
	}
	return scanSingleFile(s, c, cfg, target)
}

func scanSingleFile(s *scanner.Scanner, c *cache.Cache, cfg *config.Config, path string) error {
	result, err := s.ScanFile(path)
	if err != nil {
		return err
	}

	if scanJSONOutput {
		return emitJSON(result)
	}

	printResultLine(result)
	if scanShowIssues || cfg.Verbose {
		printIssues(result)
	}
	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintScanResult(result)
		stats := c.Metadata()
		printer.PrintCacheStats(&stats)
	}

	if !result.IsValid {
		return fmt.Errorf("%s has high-severity issues", path)
	}
	return nil
}

func scanDirectory(s *scanner.Scanner, cfg *config.Config, root string) error {
	report, err := s.ScanDirectory(root)
	if err != nil {
		return err
	}

	if scanJSONOutput {
		return emitJSON(report)
	}

	for _, result := range report.Results {
		printResultLine(result)
		if scanShowIssues || cfg.Verbose {
			printIssues(result)
		}
	}
	for _, skipped := range report.Skipped {
		fmt.Printf("-- skipped %s\n", skipped)
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintDirectoryReport(report)
	} else {
		fmt.Printf("\n%d files scanned, %d valid, issues: %d high / %d medium / %d low\n",
			report.TotalFiles, report.ValidFiles, report.HighCount, report.MediumCount, report.LowCount)
	}

	if report.HighCount > 0 {
		return fmt.Errorf("%d high-severity issue(s) found under %s", report.HighCount, root)
	}
	return nil
}

func emitJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, string(data))
	return nil
}
