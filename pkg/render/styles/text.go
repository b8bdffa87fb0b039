package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

const (
	fontHeightRatio = 0.6
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 7.0
	fontSizeMax     = 28.0
)

// FontSize computes a label font size that fits the given tile dimensions,
// clamped to a readable range.
func FontSize(w, h float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := h * fontHeightRatio
	byWidth := (w * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// TruncateLabel shortens a label to what fits the available width at the
// given font size. Geometry never changes to accommodate text; text yields.
func TruncateLabel(label string, availWidth, fontSize float64) string {
	charWidth := fontSize * fontCharWidth
	maxChars := int(availWidth * fontWidthRatio / charWidth)
	if maxChars < 3 {
		maxChars = 3
	}
	runes := []rune(label)
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars-2]) + ".."
}

// EscapeXML escapes a string for use in SVG text content and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// FillerTexture maps a filler tile's style tag to its SVG decoration. The
// zero tag and unknown tags fall back to a plain tinted rect.
type FillerTexture struct {
	PatternID string // SVG pattern id, empty = flat fill
	Icon      string // single glyph drawn at the tile center, optional
}

var fillerTextures = map[string]FillerTexture{
	"accent-dots":  {PatternID: "dots"},
	"leaf-motif":   {Icon: "❧"},
	"cutlery-icon": {Icon: "🍴"},
	"wave-pattern": {PatternID: "waves"},
}

// TextureFor resolves a filler style tag.
func TextureFor(tag string) FillerTexture {
	return fillerTextures[tag]
}

// PatternDefs returns the SVG <defs> block for filler patterns in the given
// palette. Rendered once per document.
func PatternDefs(p Palette) string {
	return fmt.Sprintf(`  <defs>
    <pattern id="dots" width="14" height="14" patternUnits="userSpaceOnUse">
      <circle cx="4" cy="4" r="1.6" fill="%s" opacity="0.35"/>
    </pattern>
    <pattern id="waves" width="24" height="10" patternUnits="userSpaceOnUse">
      <path d="M0 5 Q6 0 12 5 T24 5" stroke="%s" stroke-width="1.2" fill="none" opacity="0.3"/>
    </pattern>
  </defs>
`, p.Accent, p.Accent)
}
