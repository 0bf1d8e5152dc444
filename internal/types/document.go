// Package types provides type definitions for structured data used throughout the webcheck system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
)

// Format identifies the kind of front-end source a document contains.
// It is derived from the file extension, never from content sniffing.
type Format string

const (
	// FormatMarkup covers plain HTML documents (.html, .htm)
	FormatMarkup Format = "markup"
	// FormatComponent covers component sources with embedded markup (.jsx, .tsx)
	FormatComponent Format = "component"
	// FormatStylesheet covers CSS stylesheets (.css)
	FormatStylesheet Format = "stylesheet"
)

// FormatForPath infers the document format from a file path's extension.
// The second return value is false for unsupported extensions.
func FormatForPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FormatMarkup, true
	case ".jsx", ".tsx":
		return FormatComponent, true
	case ".css":
		return FormatStylesheet, true
	default:
		return "", false
	}
}

// Document represents a single front-end source file under analysis.
// It is read-only input: nothing in the system mutates or persists it.
type Document struct {
	Path    string `json:"path"`
	Format  Format `json:"format"`
	Content string `json:"content"`
}

// NewDocument constructs a Document for the given path and raw content.
// Returns false if the path's extension maps to no supported format.
func NewDocument(path, content string) (*Document, bool) {
	format, ok := FormatForPath(path)
	if !ok {
		return nil, false
	}
	return &Document{Path: path, Format: format, Content: content}, true
}

// Digest returns the content digest used as the cache key for this document.
func (d *Document) Digest() string {
	return ContentDigest(d.Content)
}

// ContentDigest computes the SHA-256 hex digest of raw content bytes.
// Identical bytes always produce an identical digest regardless of path,
// and a single-byte change produces a different digest.
func ContentDigest(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
