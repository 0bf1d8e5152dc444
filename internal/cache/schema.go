// Package cache provides a content-digest-keyed store for scan results with
// a fast bounded in-memory tier and a slower persistent file tier.
package cache

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// entrySchema validates persisted cache entries before they are trusted.
// A file that fails validation is treated as corrupt: removed and reported
// as a cache miss.
const entrySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["digest", "result", "created_at", "expires_at"],
  "properties": {
    "digest": {
      "type": "string",
      "pattern": "^[0-9a-f]{64}$"
    },
    "result": {
      "type": "object",
      "required": ["fileName", "fileType", "isValid", "issues", "aiSuggestedPatches", "rationale"],
      "properties": {
        "fileName": { "type": "string" },
        "fileType": { "type": "string", "enum": ["markup", "component", "stylesheet"] },
        "isValid": { "type": "boolean" },
        "issues": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["category", "description", "severity"],
            "properties": {
              "category": { "type": "string" },
              "description": { "type": "string" },
              "severity": { "type": "string", "enum": ["low", "medium", "high"] }
            }
          }
        },
        "aiSuggestedPatches": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["diff", "rationale"],
            "properties": {
              "diff": { "type": "string" },
              "rationale": { "type": "string" }
            }
          }
        },
        "rationale": { "type": "string" }
      }
    },
    "created_at": { "type": "string" },
    "last_access": { "type": "string" },
    "access_count": { "type": "integer", "minimum": 0 },
    "expires_at": { "type": "string" }
  }
}`

var entrySchemaLoader = gojsonschema.NewStringLoader(entrySchema)

// validateEntryPayload checks a raw entry file against the entry schema.
func validateEntryPayload(data []byte) error {
	result, err := gojsonschema.Validate(entrySchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &StoreError{Message: "failed to validate cache entry", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	var sb strings.Builder
	for i, desc := range result.Errors() {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(desc.String())
	}
	return &StoreError{Message: "cache entry failed schema validation: " + sb.String()}
}
