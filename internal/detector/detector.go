// Package detector evaluates front-end source documents against per-format
// rule batteries and reports raw findings.
package detector

import (
	"github.com/jonathan/webcheck/internal/types"
)

// battery is a per-format rule evaluator. Implementations never return an
// error: malformed input degrades to whatever findings can still be produced.
type battery interface {
	Detect(doc *types.Document) []types.Finding
}

// Detector dispatches a document to the rule battery for its format.
// The format set is closed; dispatch goes through a fixed table rather than
// extension checks so each battery stays independently testable.
type Detector struct {
	batteries map[types.Format]battery
}

// New constructs a Detector with the full battery set wired up.
func New() *Detector {
	return &Detector{
		batteries: map[types.Format]battery{
			types.FormatMarkup: &markupBattery{
				structural: &markupStructural{},
				pattern:    &markupPattern{},
			},
			types.FormatComponent:  &componentBattery{},
			types.FormatStylesheet: &stylesheetBattery{},
		},
	}
}

// Detect runs the rule battery for the document's format and returns the raw
// findings. Rule evaluation is a flat pass: no rule consumes another rule's
// output, so the (rule, severity) multiset is deterministic for fixed
// content. An unknown format yields no findings.
func (d *Detector) Detect(doc *types.Document) []types.Finding {
	if doc == nil {
		return nil
	}
	b, ok := d.batteries[doc.Format]
	if !ok {
		return nil
	}
	return b.Detect(doc)
}

// markupBattery analyzes HTML documents. The structural pass is preferred;
// when parsing is unavailable or unreliable the pattern pass covers the same
// ground over raw text. Localization heuristics are text-based either way.
type markupBattery struct {
	structural *markupStructural
	pattern    *markupPattern
}

func (b *markupBattery) Detect(doc *types.Document) []types.Finding {
	findings, parsed := b.structural.Detect(doc)
	if !parsed {
		findings = b.pattern.Detect(doc)
	}
	findings = append(findings, localizationFindings(doc.Content, isFullDocument(doc.Content))...)
	if findings == nil {
		findings = []types.Finding{}
	}
	return findings
}
