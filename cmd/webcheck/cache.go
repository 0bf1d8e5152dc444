package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/webcheck/internal/observability"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the scan-result cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print cache hit/miss counters and tier sizes",
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached entry from both tiers",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStats(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c, err := openCache(cfg)
	if err != nil {
		return err
	}

	stats := c.Metadata()
	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintCacheStats(&stats)
		return nil
	}

	fmt.Printf("hits=%d misses=%d saved_time_ms=%d memory=%d persistent=%d\n",
		stats.Hits, stats.Misses, stats.SavedTimeMs, stats.MemoryEntries, stats.PersistentEntries)
	return nil
}

func runCacheClear(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c, err := openCache(cfg)
	if err != nil {
		return err
	}

	before := c.Metadata()
	if err := c.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	fmt.Printf("Cleared %d cached entries\n", before.PersistentEntries)
	return nil
}
