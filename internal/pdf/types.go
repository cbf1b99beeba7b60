// Package pdf implements the PDF side of the translation pipeline: layout
// extraction, overlay composition, and run orchestration.
package pdf

// PDFInfo describes a loaded PDF file.
type PDFInfo struct {
	FilePath  string `json:"file_path"`
	FileName  string `json:"file_name"`
	PageCount int    `json:"page_count"`
	FileSize  int64  `json:"file_size"`
	IsTextPDF bool   `json:"is_text_pdf"`
}

// TextElement is one positioned text block extracted from a page.
// Coordinates are in page units with the origin at the bottom left.
type TextElement struct {
	ID             string  `json:"id"`
	Page           int     `json:"page"`
	Text           string  `json:"text"`
	TranslatedText string  `json:"translated_text,omitempty"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	FontSize       float64 `json:"font_size"`
	FontName       string  `json:"font_name"`
	IsBold         bool    `json:"is_bold"`
	IsItalic       bool    `json:"is_italic"`
	// ZOrder is the element's stacking position within its page. Elements
	// are stamped in ascending ZOrder, so later elements draw on top.
	ZOrder int `json:"z_order"`
}

// IsValid reports whether the element satisfies the extraction invariants.
func (e *TextElement) IsValid() bool {
	return e.Page > 0 && len(e.Text) > 0 && e.Width > 0 && e.Height > 0
}

// Result summarizes a completed translation run.
type Result struct {
	InputPath  string `json:"input_path"`
	OutputPath string `json:"output_path"`
	PageCount  int    `json:"page_count"`
	// Total is the number of extracted text elements.
	Total int `json:"total"`
	// Translated is the number of elements stamped with a translation.
	Translated int `json:"translated"`
	// Fallback is the number of elements that kept their source text.
	Fallback int `json:"fallback"`
	// Overflow is the number of elements whose text did not fit at the
	// minimum font size.
	Overflow int `json:"overflow"`
}

// PDFErrorCode identifies a failure category.
type PDFErrorCode string

const (
	ErrPDFNotFound     PDFErrorCode = "PDF_NOT_FOUND"
	ErrPDFInvalid      PDFErrorCode = "PDF_INVALID"
	ErrPDFNoText       PDFErrorCode = "PDF_NO_TEXT"
	ErrExtractFailed   PDFErrorCode = "EXTRACT_FAILED"
	ErrTranslateFailed PDFErrorCode = "TRANSLATE_FAILED"
	ErrComposeFailed   PDFErrorCode = "COMPOSE_FAILED"
	ErrCancelled       PDFErrorCode = "CANCELLED"
)

// PDFError is a classified PDF processing error.
type PDFError struct {
	Code    PDFErrorCode `json:"code"`
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Page    int          `json:"page,omitempty"`
	Cause   error        `json:"-"`
}

// Error implements the error interface for PDFError
func (e *PDFError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// Unwrap returns the underlying cause of the error
func (e *PDFError) Unwrap() error {
	return e.Cause
}

// NewPDFError creates a new PDFError with the given code, message, and optional cause
func NewPDFError(code PDFErrorCode, message string, cause error) *PDFError {
	return &PDFError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewPDFErrorWithDetails creates a new PDFError with details
func NewPDFErrorWithDetails(code PDFErrorCode, message, details string, cause error) *PDFError {
	return &PDFError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

// NewPDFErrorWithPage creates a new PDFError with page information
func NewPDFErrorWithPage(code PDFErrorCode, message string, page int, cause error) *PDFError {
	return &PDFError{
		Code:    code,
		Message: message,
		Page:    page,
		Cause:   cause,
	}
}
