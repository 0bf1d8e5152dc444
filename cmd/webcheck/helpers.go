package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/jonathan/webcheck/internal/cache"
	"github.com/jonathan/webcheck/internal/config"
	"github.com/jonathan/webcheck/internal/detector"
	"github.com/jonathan/webcheck/internal/scanner"
	"github.com/jonathan/webcheck/internal/types"
)

// loadConfig merges the optional --config file with environment overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if verboseMode {
		cfg.Verbose = true
	}
	return cfg, nil
}

// openCache creates the two-tier cache from config, creating the
// persistent directory if needed.
func openCache(cfg *config.Config) (*cache.Cache, error) {
	opts, err := cfg.CacheOptions()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", opts.Dir, err)
	}
	return cache.New(opts)
}

// buildScanner wires the detector and cache into a scanner.
func buildScanner(cfg *config.Config) (*scanner.Scanner, *cache.Cache, error) {
	c, err := openCache(cfg)
	if err != nil {
		return nil, nil, err
	}
	return scanner.New(detector.New(), c, cfg.BatchSize), c, nil
}

var (
	highColor   = color.New(color.FgRed, color.Bold)
	mediumColor = color.New(color.FgYellow)
	lowColor    = color.New(color.FgCyan)
	okColor     = color.New(color.FgGreen)
)

// severitySprint colors a severity tag for terminal output.
func severitySprint(severity string) string {
	switch severity {
	case types.IssueSeverityHigh:
		return highColor.Sprint(severity)
	case types.IssueSeverityMedium:
		return mediumColor.Sprint(severity)
	default:
		return lowColor.Sprint(severity)
	}
}

// printResultLine prints the one-line per-file summary used by scan.
func printResultLine(result *types.ScanResult) {
	high, medium, low := result.CountBySeverity()
	if result.IsValid {
		fmt.Printf("%s %s (%d issues)\n", okColor.Sprint("ok"), result.FileName, len(result.Issues))
		return
	}
	fmt.Printf("%s %s (%d high, %d medium, %d low)\n",
		highColor.Sprint("!!"), result.FileName, high, medium, low)
}

// printIssues prints the full issue list for one file.
func printIssues(result *types.ScanResult) {
	for _, issue := range result.Issues {
		fmt.Printf("  [%s] %s: %s\n", severitySprint(issue.Severity), issue.Category, issue.Description)
	}
}
