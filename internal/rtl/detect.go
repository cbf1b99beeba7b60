// Package rtl handles Persian script processing: detection, contextual
// glyph shaping, and visual reordering of mixed right-to-left text.
package rtl

import (
	"strings"
	"unicode"
)

// persianRanges covers Arabic script blocks used by Persian text,
// including presentation forms produced by the shaper.
var persianRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0600, Hi: 0x06FF, Stride: 1}, // Arabic
		{Lo: 0x0750, Hi: 0x077F, Stride: 1}, // Arabic Supplement
		{Lo: 0x08A0, Hi: 0x08FF, Stride: 1}, // Arabic Extended-A
		{Lo: 0xFB50, Hi: 0xFDFF, Stride: 1}, // Presentation Forms-A
		{Lo: 0xFE70, Hi: 0xFEFF, Stride: 1}, // Presentation Forms-B
	},
}

// IsPersian reports whether r belongs to the Persian/Arabic script blocks.
func IsPersian(r rune) bool {
	return unicode.Is(persianRanges, r)
}

// ContainsPersian reports whether s contains at least one Persian rune.
func ContainsPersian(s string) bool {
	for _, r := range s {
		if IsPersian(r) {
			return true
		}
	}
	return false
}

// CleanForTranslation normalizes extracted text before it is sent to the
// translation API: control characters are dropped and runs of whitespace
// collapse to a single space.
func CleanForTranslation(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	space := false
	for _, r := range s {
		switch {
		// Tabs and newlines are both controls and whitespace; they must
		// collapse to a space, not disappear.
		case unicode.IsSpace(r):
			space = true
		case unicode.IsControl(r):
			continue
		default:
			if space && sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			space = false
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
