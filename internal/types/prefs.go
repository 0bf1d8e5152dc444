// Package types provides type definitions for structured data used throughout the webcheck system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Preferences is the optional user-preference bundle supplied by the caller.
// It is consumed only by the pattern-based patch path; collecting these
// values is the caller's concern. All fields are optional.
type Preferences struct {
	Viewport           string `json:"viewport,omitempty" yaml:"viewport" validate:"omitempty,oneof=mobile tablet desktop"`
	Locale             string `json:"locale,omitempty" yaml:"locale" validate:"omitempty,bcp47_language_tag"`
	ColorScheme        string `json:"color_scheme,omitempty" yaml:"color_scheme" validate:"omitempty,oneof=light dark"`
	AccessibilityLevel string `json:"accessibility_level,omitempty" yaml:"accessibility_level" validate:"omitempty,oneof=A AA AAA"`
}

// Validate validates the Preferences using the validator.
func (p *Preferences) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// IsZero reports whether no preference field is set.
func (p *Preferences) IsZero() bool {
	if p == nil {
		return true
	}
	return p.Viewport == "" && p.Locale == "" && p.ColorScheme == "" && p.AccessibilityLevel == ""
}

// rtlLanguages are the primary language subtags written right-to-left.
var rtlLanguages = map[string]bool{
	"ar": true, // Arabic
	"he": true, // Hebrew
	"fa": true, // Persian
	"ur": true, // Urdu
	"yi": true, // Yiddish
}

// IsRTLLocale reports whether a locale tag denotes a right-to-left language.
func IsRTLLocale(locale string) bool {
	lang := strings.ToLower(locale)
	if idx := strings.IndexAny(lang, "-_"); idx >= 0 {
		lang = lang[:idx]
	}
	return rtlLanguages[lang]
}
