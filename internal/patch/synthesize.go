// Package patch synthesizes corrective edits for front-end source documents
// and renders them as unified diffs.
package patch

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/webcheck/internal/types"
)

// Patch is a synthesized corrective edit for one document.
type Patch struct {
	// Diff is the unified diff between the original and corrected content.
	// Empty when no automatic fix applies.
	Diff string `json:"diff"`
	// Rationale describes the applied edits.
	Rationale string `json:"rationale"`
	// GeneratedContent marks patches that inject machine-generated content
	// (e.g. an auto-inserted structured-data block) rather than only
	// rearranging what the document already had.
	GeneratedContent bool `json:"generated_content,omitempty"`
}

// Synthesizer produces patches with a dual strategy: a structural transform
// over a parsed tree first, then a pattern-based text transform as the
// fallback. Construct one per caller; it holds no state between calls, and
// all per-call context arrives in the Preferences argument.
type Synthesizer struct{}

// NewSynthesizer constructs a Synthesizer.
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// Synthesize produces the corrective patch for a document. Markup and
// component sources attempt the structural transform first; when it changes
// nothing (parse failure or all conditions already satisfied) the
// pattern-based transform runs instead, including the preference-gated
// edits. Stylesheets only have the pattern path. Parse failures never
// propagate: the worst case is an empty patch.
func (s *Synthesizer) Synthesize(doc *types.Document, prefs *types.Preferences) (*Patch, error) {
	if doc == nil {
		return nil, &SynthesisError{Message: "document is nil"}
	}

	var result outcome
	switch doc.Format {
	case types.FormatMarkup, types.FormatComponent:
		var changed bool
		result, changed = structuralTransform(doc.Content)
		if !changed {
			result = patternTransform(doc.Content, doc.Format, prefs)
		}
	case types.FormatStylesheet:
		result = patternTransform(doc.Content, doc.Format, prefs)
	default:
		return nil, &SynthesisError{Message: fmt.Sprintf("unsupported document format %q", doc.Format)}
	}

	if len(result.edits) == 0 {
		return &Patch{Rationale: "No automatic fixes applicable."}, nil
	}

	return &Patch{
		Diff:             unifiedDiff(doc.Path, doc.Content, result.content),
		Rationale:        "Applied: " + strings.Join(result.edits, "; ") + ".",
		GeneratedContent: result.generatedContent,
	}, nil
}

// Apply synthesizes a patch and writes its diff to a sibling file named
// <originalPath>.patch. It returns the patch and the path written, or an
// empty path when no fix applied and nothing was written.
func (s *Synthesizer) Apply(doc *types.Document, prefs *types.Preferences) (*Patch, string, error) {
	patch, err := s.Synthesize(doc, prefs)
	if err != nil {
		return nil, "", err
	}
	if patch.Diff == "" {
		return patch, "", nil
	}

	patchPath := doc.Path + ".patch"
	if err := os.WriteFile(patchPath, []byte(patch.Diff), 0644); err != nil {
		return nil, "", &SynthesisError{
			Message: fmt.Sprintf("failed to write patch file %s", patchPath),
			Cause:   err,
		}
	}
	return patch, patchPath, nil
}
