package layout

import (
	"strings"

	"persian-translator/internal/config"
	"persian-translator/internal/rtl"
)

const (
	minFontSize     = config.MinFontSize
	shrinkStep      = config.FontShrinkStep
	lineHeightRatio = config.LineHeightRatio
)

// FitResult is the outcome of fitting a text into a bounding box.
type FitResult struct {
	// Lines holds the wrapped lines top to bottom, each already converted
	// to visual right-to-left order for stamping.
	Lines []string
	// FontSize is the size the text was fitted at. Never larger than the
	// size passed to Fit and never smaller than the minimum.
	FontSize float64
	// Overflow is set when the text still does not fit at the minimum
	// size. Lines then holds the best-effort minimum-size wrapping.
	Overflow bool
}

// Fit wraps text into a box of the given width and height, starting at
// fontSize and shrinking by a fixed step until the wrapped block fits or
// the minimum size is reached. Wrapping prefers word boundaries and falls
// back to character granularity for words wider than the box.
func Fit(text string, width, height, fontSize float64) FitResult {
	if fontSize < minFontSize {
		fontSize = minFontSize
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return FitResult{FontSize: fontSize}
	}

	size := fontSize
	for {
		lines := wrap(text, width, size)
		if float64(len(lines))*LineHeight(size) <= height {
			return FitResult{Lines: display(lines), FontSize: size}
		}
		if size-shrinkStep < minFontSize {
			// Does not fit even at the minimum; report the overflow with
			// the minimum-size wrapping.
			minLines := wrap(text, width, minFontSize)
			return FitResult{Lines: display(minLines), FontSize: minFontSize, Overflow: true}
		}
		size -= shrinkStep
	}
}

// wrap splits text into lines no wider than width at the given size.
// Lines stay in logical order.
func wrap(text string, width, fontSize float64) []string {
	var lines []string
	var line strings.Builder
	lineWidth := 0.0

	flush := func() {
		if line.Len() > 0 {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
	}

	for _, word := range strings.Fields(text) {
		wordWidth := StringWidth(word, fontSize)
		spaceWidth := 0.0
		if line.Len() > 0 {
			spaceWidth = RuneWidth(' ', fontSize)
		}

		if lineWidth+spaceWidth+wordWidth <= width {
			if line.Len() > 0 {
				line.WriteByte(' ')
			}
			line.WriteString(word)
			lineWidth += spaceWidth + wordWidth
			continue
		}

		flush()

		if wordWidth <= width {
			line.WriteString(word)
			lineWidth = wordWidth
			continue
		}

		// Word wider than the box: split at character granularity.
		for _, r := range word {
			rw := RuneWidth(r, fontSize)
			if lineWidth+rw > width && line.Len() > 0 {
				flush()
			}
			line.WriteRune(r)
			lineWidth += rw
		}
	}
	flush()

	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

// display converts wrapped logical-order lines to visual order.
func display(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = rtl.Display(l)
	}
	return out
}
