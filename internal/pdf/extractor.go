package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"persian-translator/internal/logger"
)

// yTolerance groups rows into the same visual line when their baselines
// differ by less than this many page units.
const yTolerance = 5.0

// Extractor reads positioned text elements from a PDF. It never modifies
// the input file.
type Extractor struct {
	// ContinueOnError skips unreadable pages instead of failing the run.
	ContinueOnError bool
}

// NewExtractor creates an Extractor.
func NewExtractor(continueOnError bool) *Extractor {
	return &Extractor{ContinueOnError: continueOnError}
}

// Info returns basic information about a PDF file.
func (x *Extractor) Info(path string) (*PDFInfo, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewPDFError(ErrPDFNotFound, "file not found", err)
		}
		return nil, NewPDFError(ErrPDFInvalid, "cannot access file", err)
	}
	if fileInfo.IsDir() {
		return nil, NewPDFError(ErrPDFInvalid, "path is a directory", nil)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, NewPDFError(ErrPDFInvalid, "cannot open PDF file", err)
	}
	defer f.Close()

	hasText, err := x.hasExtractableText(r)
	if err != nil {
		hasText = false
	}

	return &PDFInfo{
		FilePath:  path,
		FileName:  filepath.Base(path),
		PageCount: r.NumPage(),
		FileSize:  fileInfo.Size(),
		IsTextPDF: hasText,
	}, nil
}

// hasExtractableText samples the first pages for selectable text. Scanned
// PDFs come back false and are rejected before any API call is made.
func (x *Extractor) hasExtractableText(r *pdf.Reader) (bool, error) {
	maxPages := 3
	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}

	total := 0
	for pageNum := 1; pageNum <= maxPages; pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		for _, c := range content {
			if !unicode.IsSpace(c) {
				total++
			}
		}
		if total > 50 {
			return true, nil
		}
	}
	return total > 0, nil
}

// ExtractElements extracts text elements in reading order: by page, then
// top to bottom, then left to right. Row fragments are merged into one
// element per visual line and operator garbage is filtered out.
func (x *Extractor) ExtractElements(path string) ([]TextElement, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, NewPDFError(ErrPDFNotFound, "file not found", err)
		}
		return nil, NewPDFError(ErrPDFInvalid, "cannot access file", err)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, NewPDFError(ErrPDFInvalid, "cannot open PDF file", err)
	}
	defer f.Close()

	var elements []TextElement
	totalPages := r.NumPage()
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		pageElements, err := x.extractPage(r, pageNum)
		if err != nil {
			if x.ContinueOnError {
				logger.Warn("skipping unreadable page",
					logger.Int("page", pageNum),
					logger.Err(err))
				continue
			}
			return nil, NewPDFErrorWithPage(ErrExtractFailed, "page extraction failed", pageNum, err)
		}
		elements = append(elements, pageElements...)
	}

	if len(elements) == 0 {
		return nil, NewPDFError(ErrPDFNoText, "no extractable text found", nil)
	}

	sortReadingOrder(elements)
	assignZOrder(elements)

	// Stable IDs are assigned after sorting so they follow reading order.
	for i := range elements {
		elements[i].ID = fmt.Sprintf("element_%d", i+1)
	}

	logger.Info("extraction complete",
		logger.String("file", filepath.Base(path)),
		logger.Int("pages", totalPages),
		logger.Int("elements", len(elements)))
	return elements, nil
}

// extractPage extracts the merged row elements of a single page.
func (x *Extractor) extractPage(r *pdf.Reader, pageNum int) ([]TextElement, error) {
	page := r.Page(pageNum)
	if page.V.IsNull() {
		return nil, nil
	}
	if page.V.Key("Contents").Kind() == pdf.Null {
		return nil, nil
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, err
	}

	var elements []TextElement
	for _, row := range rows {
		if len(row.Content) == 0 {
			continue
		}
		if el, ok := mergeRow(row.Content, pageNum); ok {
			elements = append(elements, el)
		}
	}
	return elements, nil
}

// mergeRow merges the text runs of one row into a single element.
func mergeRow(content []pdf.Text, pageNum int) (TextElement, bool) {
	var sb strings.Builder
	var minX, maxX, minY, maxY float64
	var totalFontSize float64
	var fontName string
	var isBold, isItalic bool
	first := true
	runs := 0

	for _, t := range content {
		if t.S == "" || isOperatorCode(t.S) {
			continue
		}
		sb.WriteString(t.S)
		runs++

		if first {
			minX, maxX, minY, maxY = t.X, t.X, t.Y, t.Y
			fontName = t.Font
			first = false
		} else {
			if t.X < minX {
				minX = t.X
			}
			if t.X > maxX {
				maxX = t.X
			}
			if t.Y < minY {
				minY = t.Y
			}
			if t.Y > maxY {
				maxY = t.Y
			}
		}
		totalFontSize += t.FontSize

		fontLower := strings.ToLower(t.Font)
		if strings.Contains(fontLower, "bold") {
			isBold = true
		}
		if strings.Contains(fontLower, "italic") || strings.Contains(fontLower, "oblique") {
			isItalic = true
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" || isOperatorCode(text) || hasExcessiveNonPrintable(text) {
		return TextElement{}, false
	}

	fontSize := 10.0
	if runs > 0 && totalFontSize > 0 {
		fontSize = totalFontSize / float64(runs)
	}

	// Width from run positions where available, otherwise estimated from
	// character count.
	width := float64(len(text)) * fontSize * 0.5
	if maxX > minX {
		if actual := maxX - minX + fontSize; actual > width {
			width = actual
		}
	}
	if width <= 0 {
		width = fontSize
	}

	height := fontSize * 1.2
	if height <= 0 {
		height = 12.0
	}

	return TextElement{
		Page:     pageNum,
		Text:     text,
		X:        minX,
		Y:        minY,
		Width:    width,
		Height:   height,
		FontSize: fontSize,
		FontName: baseFontName(fontName),
		IsBold:   isBold,
		IsItalic: isItalic,
	}, true
}

// sortReadingOrder sorts by page, then descending Y (PDF origin is at the
// bottom left, so higher Y is higher on the page), then X. Rows within
// the Y tolerance count as the same line.
func sortReadingOrder(elements []TextElement) {
	sort.SliceStable(elements, func(i, j int) bool {
		if elements[i].Page != elements[j].Page {
			return elements[i].Page < elements[j].Page
		}
		if diff := elements[i].Y - elements[j].Y; diff > yTolerance || diff < -yTolerance {
			return elements[i].Y > elements[j].Y
		}
		return elements[i].X < elements[j].X
	})
}

// assignZOrder numbers elements within each page in reading order.
// Stamping follows this order, so overlapping overlays stack the same way
// on every run.
func assignZOrder(elements []TextElement) {
	page, z := 0, 0
	for i := range elements {
		if elements[i].Page != page {
			page, z = elements[i].Page, 0
		}
		z++
		elements[i].ZOrder = z
	}
}

// baseFontName strips the subset prefix ("ABCDEF+Times-Bold" to
// "Times-Bold") and the style suffix, leaving the family name.
func baseFontName(name string) string {
	if i := strings.Index(name, "+"); i >= 0 && i+1 < len(name) {
		name = name[i+1:]
	}
	if i := strings.IndexAny(name, "-,"); i > 0 {
		name = name[:i]
	}
	return name
}

// isOperatorCode reports whether text looks like leaked PDF/PostScript
// operator code rather than page content.
func isOperatorCode(text string) bool {
	if len(text) == 0 {
		return false
	}
	textLower := strings.ToLower(text)

	if strings.Contains(text, " def ") || strings.HasSuffix(text, " def") {
		if strings.Contains(text, "/") {
			return true
		}
	}
	if strings.Contains(textLower, "null def") {
		return true
	}

	operators := []string{
		"currentpoint", "gsave", "grestore", "newpath", "closepath",
		"setrgbcolor", "setgray", "setlinewidth", "showpage",
		"moveto", "lineto", "curveto",
	}
	for _, op := range operators {
		if strings.Contains(textLower, op) {
			return true
		}
	}

	// Several /Name tokens in a row indicate operator code, unless the
	// text is a URL.
	if !strings.Contains(text, "://") && !strings.Contains(textLower, "http") {
		nameCount := 0
		for _, word := range strings.Fields(text) {
			if len(word) > 1 && word[0] == '/' && isIdentifier(word[1:]) {
				nameCount++
			}
		}
		if nameCount >= 3 {
			return true
		}
	}
	return false
}

func isIdentifier(s string) bool {
	for _, c := range s {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9') || c == '_' || c == '@') {
			return false
		}
	}
	return true
}

// hasExcessiveNonPrintable reports whether more than 10% of the text is
// control characters.
func hasExcessiveNonPrintable(text string) bool {
	if len(text) == 0 {
		return false
	}
	count := 0
	for _, r := range text {
		if r < 32 && r != '\n' && r != '\r' && r != '\t' {
			count++
		}
		if r >= 0x7F && r <= 0x9F {
			count++
		}
	}
	return float64(count)/float64(len(text)) > 0.1
}
