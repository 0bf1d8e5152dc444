// Package patch synthesizes corrective edits for front-end source documents
// and renders them as unified diffs.
package patch

import (
	"fmt"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// unifiedDiff renders the unified diff between the original and modified
// content of a document. Identical content yields an empty diff.
func unifiedDiff(path, original, modified string) string {
	if original == modified {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(path), original, modified)
	return fmt.Sprint(gotextdiff.ToUnified(path, path+".fixed", original, edits))
}
