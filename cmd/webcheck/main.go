// Package main provides the entry point for the webcheck front-end source auditor.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "webcheck",
	Short: "Front-end source auditor",
	Long:  "Webcheck scans HTML documents, JSX/TSX components, and CSS stylesheets for structural, accessibility, SEO, security, performance, and localization defects, and can synthesize patch files for the fixable ones.",
}

var (
	configPath  string
	verboseMode bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "Print detailed output")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
