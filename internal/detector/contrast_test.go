// Package detector evaluates front-end source documents against per-format
// rule batteries and reports raw findings.
package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSSColor(t *testing.T) {
	tests := []struct {
		input string
		want  rgb
		ok    bool
	}{
		{"#000000", rgb{0, 0, 0}, true},
		{"#fff", rgb{255, 255, 255}, true},
		{"#FF8000", rgb{255, 128, 0}, true},
		{"white", rgb{255, 255, 255}, true},
		{"Black", rgb{0, 0, 0}, true},
		{"rgb(12, 34, 56)", rgb{12, 34, 56}, true},
		{"rgba(12, 34, 56, 0.5)", rgb{12, 34, 56}, true},
		{"var(--brand)", rgb{}, false},
		{"#12", rgb{}, false},
		{"rgb(300, 0, 0)", rgb{}, false},
		{"", rgb{}, false},
	}
	for _, tt := range tests {
		got, ok := parseCSSColor(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		if tt.ok {
			assert.Equal(t, tt.want, got, "input %q", tt.input)
		}
	}
}

func TestContrastRatio_KnownPairs(t *testing.T) {
	// Black on white is the maximum ratio defined by WCAG
	ratio := contrastRatio(rgb{0, 0, 0}, rgb{255, 255, 255})
	assert.InDelta(t, 21.0, ratio, 0.1)

	// Identical colors are the minimum
	ratio = contrastRatio(rgb{128, 128, 128}, rgb{128, 128, 128})
	assert.InDelta(t, 1.0, ratio, 0.01)

	// Ratio is symmetric
	a, b := rgb{40, 60, 80}, rgb{230, 230, 230}
	assert.InDelta(t, contrastRatio(a, b), contrastRatio(b, a), 0.0001)
}

func TestColorPairFromCSS(t *testing.T) {
	fg, bg, ok := colorPairFromCSS("color: #333333; background-color: #ffffff")
	require.True(t, ok)
	assert.Equal(t, rgb{0x33, 0x33, 0x33}, fg)
	assert.Equal(t, rgb{255, 255, 255}, bg)

	// background shorthand also counts
	_, _, ok = colorPairFromCSS("color: black; background: white")
	assert.True(t, ok)

	// missing either declaration is not a pair
	_, _, ok = colorPairFromCSS("color: black")
	assert.False(t, ok)
	_, _, ok = colorPairFromCSS("background-color: white")
	assert.False(t, ok)

	// unparseable values are skipped rather than guessed
	_, _, ok = colorPairFromCSS("color: var(--ink); background-color: white")
	assert.False(t, ok)
}
