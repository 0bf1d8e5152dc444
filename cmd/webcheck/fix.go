package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/webcheck/internal/observability"
	"github.com/jonathan/webcheck/internal/patch"
	"github.com/jonathan/webcheck/internal/types"
)

var fixCmd = &cobra.Command{
	Use:   "fix <file>",
	Short: "Synthesize a patch file with automatic fixes",
	Long:  "Synthesize fixes for a single file and write them as a unified diff to <file>.patch. The source file is never modified. Markup gets a structural transform when it parses, with a pattern fallback; stylesheets always use the pattern path.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

var (
	fixPrefsFile string
	fixDryRun    bool
)

func init() {
	fixCmd.Flags().StringVar(&fixPrefsFile, "prefs", "", "Path to YAML preferences file (viewport, locale, color scheme, accessibility level)")
	fixCmd.Flags().BoolVar(&fixDryRun, "dry-run", false, "Print the diff instead of writing the .patch file")

	rootCmd.AddCommand(fixCmd)
}

func runFix(_ *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	prefs, err := loadPreferences(fixPrefsFile)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, ok := types.NewDocument(path, string(content))
	if !ok {
		return fmt.Errorf("unsupported file type: %s", path)
	}

	synth := patch.NewSynthesizer()

	if fixDryRun {
		p, err := synth.Synthesize(doc, prefs)
		if err != nil {
			return fmt.Errorf("failed to synthesize patch: %w", err)
		}
		if p.Diff == "" {
			fmt.Println("No automatic fixes applicable.")
			return nil
		}
		fmt.Print(p.Diff)
		return nil
	}

	p, patchPath, err := synth.Apply(doc, prefs)
	if err != nil {
		return fmt.Errorf("failed to synthesize patch: %w", err)
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintPatch(path, p)
	}

	if patchPath == "" {
		fmt.Println("No automatic fixes applicable; no patch written.")
		return nil
	}
	fmt.Printf("Patch written: %s\n", patchPath)
	return nil
}

// loadPreferences reads an optional YAML preferences file. An empty path
// yields nil preferences, which disables the preference-gated edits.
func loadPreferences(path string) (*types.Preferences, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences file %s: %w", path, err)
	}

	var prefs types.Preferences
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("failed to parse preferences YAML: %w", err)
	}
	if err := prefs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid preferences: %w", err)
	}
	return &prefs, nil
}
