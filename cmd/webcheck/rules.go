package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/webcheck/internal/classifier"
	"github.com/jonathan/webcheck/internal/detector"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the detection rule catalog",
	Long:  "List every detection rule with its category, base severity, and the formats it applies to.",
	RunE:  runRules,
}

var rulesCategory string

func init() {
	rulesCmd.Flags().StringVar(&rulesCategory, "category", "", "Only show rules in this category (structure, accessibility, seo, security, performance, localization)")

	rootCmd.AddCommand(rulesCmd)
}

func runRules(_ *cobra.Command, _ []string) error {
	shown := 0
	for _, rule := range detector.Rules() {
		category := classifier.CategoryForRule(rule.ID)
		if rulesCategory != "" && category != rulesCategory {
			continue
		}

		formats := make([]string, 0, len(rule.Formats))
		for _, f := range rule.Formats {
			formats = append(formats, string(f))
		}
		fmt.Printf("%-32s %-13s %-8s %-28s %s\n",
			rule.ID, category, rule.Severity, strings.Join(formats, ","), rule.Description)
		shown++
	}

	if shown == 0 {
		return fmt.Errorf("no rules in category %q", rulesCategory)
	}
	return nil
}
