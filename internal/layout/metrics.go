// Package layout fits translated text into the bounding box of the source
// element, wrapping and shrinking until it fits or the minimum font size
// is reached. All functions are pure; the same input always produces the
// same FitResult.
package layout

import "persian-translator/internal/rtl"

// Per-rune width factors relative to the font size. Embedded font metrics
// are not available at fitting time, so widths are estimated by rune class
// the same way the renderer estimates them.
const (
	widthSpace   = 0.25
	widthDigit   = 0.55
	widthLatin   = 0.50
	widthPersian = 0.70
	widthOther   = 0.60
)

// RuneWidth returns the estimated advance width of r at the given size.
func RuneWidth(r rune, fontSize float64) float64 {
	switch {
	case r == ' ' || r == '\t':
		return widthSpace * fontSize
	case r >= '0' && r <= '9':
		return widthDigit * fontSize
	case r < 0x80:
		return widthLatin * fontSize
	case rtl.IsPersian(r):
		return widthPersian * fontSize
	default:
		return widthOther * fontSize
	}
}

// StringWidth returns the estimated width of s at the given size.
func StringWidth(s string, fontSize float64) float64 {
	var w float64
	for _, r := range s {
		w += RuneWidth(r, fontSize)
	}
	return w
}

// LineHeight returns the vertical space one line occupies at the given size.
func LineHeight(fontSize float64) float64 {
	return fontSize * lineHeightRatio
}
