// Package detector evaluates front-end source documents against per-format
// rule batteries and reports raw findings.
package detector

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// rgb is an sRGB color with 0-255 channels.
type rgb struct {
	r, g, b float64
}

// namedColors covers the color keywords the contrast heuristic understands.
// Unknown keywords make the check skip the declaration rather than guess.
var namedColors = map[string]rgb{
	"black":  {0, 0, 0},
	"white":  {255, 255, 255},
	"red":    {255, 0, 0},
	"green":  {0, 128, 0},
	"blue":   {0, 0, 255},
	"yellow": {255, 255, 0},
	"orange": {255, 165, 0},
	"purple": {128, 0, 128},
	"gray":   {128, 128, 128},
	"grey":   {128, 128, 128},
	"silver": {192, 192, 192},
}

var (
	colorDeclRe = regexp.MustCompile(`(?i)(?:^|[;{\s])color\s*:\s*([^;}]+)`)
	bgDeclRe    = regexp.MustCompile(`(?i)background(?:-color)?\s*:\s*([^;}]+)`)
	rgbFuncRe   = regexp.MustCompile(`(?i)^rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)`)
)

// colorPairFromCSS extracts a foreground/background color pair from a CSS
// declaration list. ok is false unless both colors are present and parseable.
func colorPairFromCSS(css string) (fg, bg rgb, ok bool) {
	fgMatch := colorDeclRe.FindStringSubmatch(css)
	bgMatch := bgDeclRe.FindStringSubmatch(css)
	if fgMatch == nil || bgMatch == nil {
		return rgb{}, rgb{}, false
	}
	fg, fgOK := parseCSSColor(strings.TrimSpace(fgMatch[1]))
	bg, bgOK := parseCSSColor(strings.TrimSpace(bgMatch[1]))
	if !fgOK || !bgOK {
		return rgb{}, rgb{}, false
	}
	return fg, bg, true
}

// parseCSSColor parses #rgb, #rrggbb, rgb()/rgba() and the supported color
// keywords.
func parseCSSColor(value string) (rgb, bool) {
	value = strings.ToLower(strings.TrimSpace(value))

	if c, ok := namedColors[value]; ok {
		return c, true
	}

	if strings.HasPrefix(value, "#") {
		hex := value[1:]
		switch len(hex) {
		case 3:
			r, err1 := strconv.ParseUint(strings.Repeat(string(hex[0]), 2), 16, 8)
			g, err2 := strconv.ParseUint(strings.Repeat(string(hex[1]), 2), 16, 8)
			b, err3 := strconv.ParseUint(strings.Repeat(string(hex[2]), 2), 16, 8)
			if err1 != nil || err2 != nil || err3 != nil {
				return rgb{}, false
			}
			return rgb{float64(r), float64(g), float64(b)}, true
		case 6:
			r, err1 := strconv.ParseUint(hex[0:2], 16, 8)
			g, err2 := strconv.ParseUint(hex[2:4], 16, 8)
			b, err3 := strconv.ParseUint(hex[4:6], 16, 8)
			if err1 != nil || err2 != nil || err3 != nil {
				return rgb{}, false
			}
			return rgb{float64(r), float64(g), float64(b)}, true
		default:
			return rgb{}, false
		}
	}

	if m := rgbFuncRe.FindStringSubmatch(value); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		if r > 255 || g > 255 || b > 255 {
			return rgb{}, false
		}
		return rgb{float64(r), float64(g), float64(b)}, true
	}

	return rgb{}, false
}

// relativeLuminance implements the WCAG 2.x luminance formula.
func relativeLuminance(c rgb) float64 {
	channel := func(v float64) float64 {
		v /= 255
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*channel(c.r) + 0.7152*channel(c.g) + 0.0722*channel(c.b)
}

// contrastRatio returns the WCAG contrast ratio between two colors, always
// >= 1.
func contrastRatio(a, b rgb) float64 {
	la := relativeLuminance(a)
	lb := relativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}
