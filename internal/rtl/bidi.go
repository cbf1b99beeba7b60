package rtl

import (
	"golang.org/x/text/unicode/bidi"
)

// Display converts a logical-order line into the visual-order string that
// is stamped into the PDF. Persian letters are shaped, then the line is
// split into directional runs at base direction right-to-left. Embedded
// Latin words and digit runs keep their internal left-to-right order while
// the runs themselves are laid out right to left. Brackets inside
// right-to-left runs are mirrored.
func Display(s string) string {
	shaped := Shape(s)

	var p bidi.Paragraph
	if _, err := p.SetString(shaped, bidi.DefaultDirection(bidi.RightToLeft)); err != nil {
		return bidi.ReverseString(shaped)
	}
	ordering, err := p.Order()
	if err != nil {
		return bidi.ReverseString(shaped)
	}

	// Runs come back in logical order. With a right-to-left base level the
	// visual order is the reversed run sequence, with right-to-left runs
	// reversed character by character.
	var out []byte
	for i := ordering.NumRuns() - 1; i >= 0; i-- {
		run := ordering.Run(i)
		if run.Direction() == bidi.RightToLeft {
			out = append(out, bidi.ReverseString(run.String())...)
		} else {
			out = append(out, run.String()...)
		}
	}
	return string(out)
}
