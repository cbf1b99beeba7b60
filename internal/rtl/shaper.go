package rtl

// Contextual shaping of Persian letters into Arabic presentation forms.
// PDF text stamps render glyph codes directly, so the logical letters must
// be replaced by their isolated/initial/medial/final variants before the
// string is written into the page.

// glyphForms holds the presentation forms of one letter. Letters that only
// join to the preceding letter leave Initial and Medial zero.
type glyphForms struct {
	Isolated rune
	Final    rune
	Initial  rune
	Medial   rune
}

// dual reports whether the letter can join in both directions.
func (f glyphForms) dual() bool {
	return f.Initial != 0
}

// shapeTable maps each logical letter to its presentation forms. It covers
// the Arabic base alphabet plus the four Persian letters.
var shapeTable = map[rune]glyphForms{
	'ء': {Isolated: 'ﺀ'},                                                 // hamza
	'آ': {Isolated: 'ﺁ', Final: 'ﺂ'},                                // alef madda
	'أ': {Isolated: 'ﺃ', Final: 'ﺄ'},                                // alef hamza above
	'ؤ': {Isolated: 'ﺅ', Final: 'ﺆ'},                                // waw hamza
	'إ': {Isolated: 'ﺇ', Final: 'ﺈ'},                                // alef hamza below
	'ئ': {Isolated: 'ﺉ', Final: 'ﺊ', Initial: 'ﺋ', Medial: 'ﺌ'}, // yeh hamza
	'ا': {Isolated: 'ﺍ', Final: 'ﺎ'},                                // alef
	'ب': {Isolated: 'ﺏ', Final: 'ﺐ', Initial: 'ﺑ', Medial: 'ﺒ'}, // beh
	'ة': {Isolated: 'ﺓ', Final: 'ﺔ'},                                // teh marbuta
	'ت': {Isolated: 'ﺕ', Final: 'ﺖ', Initial: 'ﺗ', Medial: 'ﺘ'}, // teh
	'ث': {Isolated: 'ﺙ', Final: 'ﺚ', Initial: 'ﺛ', Medial: 'ﺜ'}, // theh
	'ج': {Isolated: 'ﺝ', Final: 'ﺞ', Initial: 'ﺟ', Medial: 'ﺠ'}, // jeem
	'ح': {Isolated: 'ﺡ', Final: 'ﺢ', Initial: 'ﺣ', Medial: 'ﺤ'}, // hah
	'خ': {Isolated: 'ﺥ', Final: 'ﺦ', Initial: 'ﺧ', Medial: 'ﺨ'}, // khah
	'د': {Isolated: 'ﺩ', Final: 'ﺪ'},                                // dal
	'ذ': {Isolated: 'ﺫ', Final: 'ﺬ'},                                // thal
	'ر': {Isolated: 'ﺭ', Final: 'ﺮ'},                                // reh
	'ز': {Isolated: 'ﺯ', Final: 'ﺰ'},                                // zain
	'س': {Isolated: 'ﺱ', Final: 'ﺲ', Initial: 'ﺳ', Medial: 'ﺴ'}, // seen
	'ش': {Isolated: 'ﺵ', Final: 'ﺶ', Initial: 'ﺷ', Medial: 'ﺸ'}, // sheen
	'ص': {Isolated: 'ﺹ', Final: 'ﺺ', Initial: 'ﺻ', Medial: 'ﺼ'}, // sad
	'ض': {Isolated: 'ﺽ', Final: 'ﺾ', Initial: 'ﺿ', Medial: 'ﻀ'}, // dad
	'ط': {Isolated: 'ﻁ', Final: 'ﻂ', Initial: 'ﻃ', Medial: 'ﻄ'}, // tah
	'ظ': {Isolated: 'ﻅ', Final: 'ﻆ', Initial: 'ﻇ', Medial: 'ﻈ'}, // zah
	'ع': {Isolated: 'ﻉ', Final: 'ﻊ', Initial: 'ﻋ', Medial: 'ﻌ'}, // ain
	'غ': {Isolated: 'ﻍ', Final: 'ﻎ', Initial: 'ﻏ', Medial: 'ﻐ'}, // ghain
	'ف': {Isolated: 'ﻑ', Final: 'ﻒ', Initial: 'ﻓ', Medial: 'ﻔ'}, // feh
	'ق': {Isolated: 'ﻕ', Final: 'ﻖ', Initial: 'ﻗ', Medial: 'ﻘ'}, // qaf
	'ك': {Isolated: 'ﻙ', Final: 'ﻚ', Initial: 'ﻛ', Medial: 'ﻜ'}, // kaf
	'ل': {Isolated: 'ﻝ', Final: 'ﻞ', Initial: 'ﻟ', Medial: 'ﻠ'}, // lam
	'م': {Isolated: 'ﻡ', Final: 'ﻢ', Initial: 'ﻣ', Medial: 'ﻤ'}, // meem
	'ن': {Isolated: 'ﻥ', Final: 'ﻦ', Initial: 'ﻧ', Medial: 'ﻨ'}, // noon
	'ه': {Isolated: 'ﻩ', Final: 'ﻪ', Initial: 'ﻫ', Medial: 'ﻬ'}, // heh
	'و': {Isolated: 'ﻭ', Final: 'ﻮ'},                                // waw
	'ى': {Isolated: 'ﻯ', Final: 'ﻰ'},                                // alef maksura
	'ي': {Isolated: 'ﻱ', Final: 'ﻲ', Initial: 'ﻳ', Medial: 'ﻴ'}, // yeh

	// Persian-specific letters
	'پ': {Isolated: 'ﭖ', Final: 'ﭗ', Initial: 'ﭘ', Medial: 'ﭙ'}, // peh
	'چ': {Isolated: 'ﭺ', Final: 'ﭻ', Initial: 'ﭼ', Medial: 'ﭽ'}, // tcheh
	'ژ': {Isolated: 'ﮊ', Final: 'ﮋ'},                                // jeh
	'ک': {Isolated: 'ﮎ', Final: 'ﮏ', Initial: 'ﮐ', Medial: 'ﮑ'}, // keheh
	'گ': {Isolated: 'ﮒ', Final: 'ﮓ', Initial: 'ﮔ', Medial: 'ﮕ'}, // gaf
	'ی': {Isolated: 'ﯼ', Final: 'ﯽ', Initial: 'ﯾ', Medial: 'ﯿ'}, // farsi yeh
}

// lamAlefLigatures maps the alef variant following lam to the ligature's
// isolated and final forms.
var lamAlefLigatures = map[rune][2]rune{
	'آ': {'ﻵ', 'ﻶ'}, // lam + alef madda
	'أ': {'ﻷ', 'ﻸ'}, // lam + alef hamza above
	'إ': {'ﻹ', 'ﻺ'}, // lam + alef hamza below
	'ا': {'ﻻ', 'ﻼ'}, // lam + alef
}

const lam = 'ل'

// transparent runes (harakat) do not interrupt joining.
func isTransparent(r rune) bool {
	return (r >= 0x064B && r <= 0x065F) || r == 0x0670
}

// joinable reports whether r accepts a join from the preceding letter.
func joinable(r rune) bool {
	_, ok := shapeTable[r]
	return ok
}

// joinsForward reports whether r joins to the following letter.
func joinsForward(r rune) bool {
	f, ok := shapeTable[r]
	return ok && f.dual()
}

// Shape replaces Persian letters in s with their contextual presentation
// forms and applies the lam-alef ligatures. Non-Persian runes pass through
// unchanged. The result stays in logical order.
func Shape(s string) string {
	runes := []rune(s)
	out := make([]rune, 0, len(runes))

	// prevJoins tracks whether the previously emitted letter joins forward.
	prevJoins := false

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		forms, ok := shapeTable[r]
		if !ok {
			out = append(out, r)
			if !isTransparent(r) {
				prevJoins = false
			}
			continue
		}

		// Lam-alef ligature consumes the following alef.
		if r == lam {
			if j := nextLetter(runes, i); j >= 0 {
				if lig, isLig := lamAlefLigatures[runes[j]]; isLig {
					if prevJoins {
						out = append(out, lig[1])
					} else {
						out = append(out, lig[0])
					}
					// Carry any transparent marks between lam and alef.
					out = append(out, runes[i+1:j]...)
					i = j
					prevJoins = false
					continue
				}
			}
		}

		nextJoins := false
		if j := nextLetter(runes, i); j >= 0 {
			nextJoins = joinable(runes[j])
		}

		switch {
		case prevJoins && nextJoins && forms.dual():
			out = append(out, forms.Medial)
		case prevJoins:
			out = append(out, forms.Final)
		case nextJoins && forms.dual():
			out = append(out, forms.Initial)
		default:
			out = append(out, forms.Isolated)
		}

		prevJoins = forms.dual()
	}

	return string(out)
}

// nextLetter returns the index of the next non-transparent rune after i
// if it is a shapeable letter, or -1.
func nextLetter(runes []rune, i int) int {
	for j := i + 1; j < len(runes); j++ {
		if isTransparent(runes[j]) {
			continue
		}
		if _, ok := shapeTable[runes[j]]; ok {
			return j
		}
		return -1
	}
	return -1
}
