package pdf

import (
	"errors"
	"testing"

	"github.com/ledongthuc/pdf"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"paper.pdf", "paper_translated.pdf"},
		{"/docs/report.pdf", "/docs/report_translated.pdf"},
		{"noext", "noext_translated.pdf"},
		{"dir/archive.v2.pdf", "dir/archive.v2_translated.pdf"},
	}
	for _, tt := range tests {
		if got := OutputPath(tt.in); got != tt.want {
			t.Errorf("OutputPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInfoMissingFile(t *testing.T) {
	x := NewExtractor(false)
	_, err := x.Info("/nonexistent/file.pdf")

	var perr *PDFError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PDFError, got %v", err)
	}
	if perr.Code != ErrPDFNotFound {
		t.Errorf("Code = %v, want %v", perr.Code, ErrPDFNotFound)
	}
}

func TestExtractElementsMissingFile(t *testing.T) {
	x := NewExtractor(false)
	_, err := x.ExtractElements("/nonexistent/file.pdf")

	var perr *PDFError
	if !errors.As(err, &perr) || perr.Code != ErrPDFNotFound {
		t.Fatalf("expected PDF_NOT_FOUND, got %v", err)
	}
}

func TestMergeRow(t *testing.T) {
	content := []pdf.Text{
		{S: "Hello ", X: 100, Y: 700, Font: "ABCDEF+Times-Bold", FontSize: 12},
		{S: "world", X: 140, Y: 700, Font: "ABCDEF+Times-Bold", FontSize: 12},
	}

	el, ok := mergeRow(content, 2)
	if !ok {
		t.Fatal("mergeRow rejected valid content")
	}
	if el.Text != "Hello world" {
		t.Errorf("Text = %q", el.Text)
	}
	if el.Page != 2 {
		t.Errorf("Page = %d", el.Page)
	}
	if el.X != 100 || el.Y != 700 {
		t.Errorf("position = (%v, %v)", el.X, el.Y)
	}
	if el.FontSize != 12 {
		t.Errorf("FontSize = %v", el.FontSize)
	}
	if !el.IsBold {
		t.Error("bold font name must set IsBold")
	}
	if el.IsItalic {
		t.Error("IsItalic must be false")
	}
	if el.FontName != "Times" {
		t.Errorf("FontName = %q, want subset prefix and style stripped", el.FontName)
	}
	if !el.IsValid() && el.ID == "" {
		// ID is assigned later; everything else must already be valid.
		t.Errorf("merged element invalid: %+v", el)
	}
}

func TestMergeRowSkipsEmptyAndGarbage(t *testing.T) {
	if _, ok := mergeRow([]pdf.Text{{S: "   "}}, 1); ok {
		t.Error("whitespace-only row must be rejected")
	}
	if _, ok := mergeRow([]pdf.Text{{S: "/Fm1 gsave moveto lineto"}}, 1); ok {
		t.Error("operator code must be rejected")
	}
}

func TestMergeRowItalicDetection(t *testing.T) {
	el, ok := mergeRow([]pdf.Text{{S: "text", Font: "Helvetica-Oblique", FontSize: 10, X: 1, Y: 1}}, 1)
	if !ok {
		t.Fatal("mergeRow failed")
	}
	if !el.IsItalic {
		t.Error("oblique font name must set IsItalic")
	}
}

func TestSortReadingOrder(t *testing.T) {
	elements := []TextElement{
		{ID: "d", Page: 2, X: 50, Y: 700},
		{ID: "b", Page: 1, X: 300, Y: 702}, // same line as "a" within tolerance
		{ID: "c", Page: 1, X: 50, Y: 300},
		{ID: "a", Page: 1, X: 50, Y: 700},
	}

	sortReadingOrder(elements)

	want := []string{"a", "b", "c", "d"}
	for i, id := range want {
		if elements[i].ID != id {
			t.Fatalf("order[%d] = %q, want %q (full: %v)", i, elements[i].ID, id,
				[]string{elements[0].ID, elements[1].ID, elements[2].ID, elements[3].ID})
		}
	}
}

func TestAssignZOrder(t *testing.T) {
	elements := []TextElement{
		{Page: 1}, {Page: 1}, {Page: 1},
		{Page: 2}, {Page: 2},
	}

	assignZOrder(elements)

	want := []int{1, 2, 3, 1, 2}
	for i, z := range want {
		if elements[i].ZOrder != z {
			t.Errorf("ZOrder[%d] = %d, want %d (restarts per page)", i, elements[i].ZOrder, z)
		}
	}
}

func TestBaseFontName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ABCDEF+Times-Bold", "Times"},
		{"Helvetica", "Helvetica"},
		{"Arial,Bold", "Arial"},
		{"Vazirmatn-Regular", "Vazirmatn"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := baseFontName(tt.in); got != tt.want {
			t.Errorf("baseFontName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsOperatorCode(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"/foo null def", true},
		{"gsave 10 10 moveto", true},
		{"/a /b /c operators", true},
		{"A normal sentence.", false},
		{"See https://example.com/a/b/c for details", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isOperatorCode(tt.text); got != tt.want {
			t.Errorf("isOperatorCode(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestHasExcessiveNonPrintable(t *testing.T) {
	if hasExcessiveNonPrintable("clean text") {
		t.Error("clean text flagged")
	}
	if !hasExcessiveNonPrintable("\x01\x02\x03x") {
		t.Error("control-heavy text not flagged")
	}
	if hasExcessiveNonPrintable("") {
		t.Error("empty text flagged")
	}
}

func TestPDFErrorFormatting(t *testing.T) {
	cause := errors.New("io failure")
	err := NewPDFErrorWithDetails(ErrExtractFailed, "extraction failed", "page torn", cause)
	if err.Error() != "extraction failed: page torn" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("cause must unwrap")
	}

	perr := NewPDFErrorWithPage(ErrComposeFailed, "stamp failed", 7, nil)
	if perr.Page != 7 {
		t.Errorf("Page = %d", perr.Page)
	}
}

func TestTextElementIsValid(t *testing.T) {
	valid := TextElement{Page: 1, Text: "x", Width: 10, Height: 5}
	if !valid.IsValid() {
		t.Error("valid element rejected")
	}
	for _, el := range []TextElement{
		{Page: 0, Text: "x", Width: 10, Height: 5},
		{Page: 1, Text: "", Width: 10, Height: 5},
		{Page: 1, Text: "x", Width: 0, Height: 5},
		{Page: 1, Text: "x", Width: 10, Height: 0},
	} {
		if el.IsValid() {
			t.Errorf("invalid element accepted: %+v", el)
		}
	}
}
