package pdf

import (
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/color"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"persian-translator/internal/fonts"
	"persian-translator/internal/layout"
	"persian-translator/internal/logger"
)

// producerName is recorded in the output document properties.
const producerName = "persian-translator"

// Stamp pairs an element with its fitted text.
type Stamp struct {
	Element TextElement
	Fit     layout.FitResult
}

// Compositor writes the translated overlay. The original page content is
// never re-encoded: the output starts as a byte copy of the input, each
// source region is covered with a white rectangle, and the fitted lines
// are stamped on top.
type Compositor struct {
	fonts *fonts.Registry
	conf  *model.Configuration
}

// NewCompositor creates a Compositor using the given font registry.
func NewCompositor(registry *fonts.Registry) *Compositor {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Compositor{fonts: registry, conf: conf}
}

// Compose builds the output file from the original and the stamps.
func (c *Compositor) Compose(originalPath string, stamps []Stamp, outputPath string) error {
	if err := copyFile(originalPath, outputPath); err != nil {
		return NewPDFError(ErrComposeFailed, "failed to copy original PDF", err)
	}

	for _, s := range stamps {
		if len(s.Fit.Lines) == 0 {
			continue
		}
		if err := c.coverRegion(outputPath, s.Element); err != nil {
			return err
		}
		if err := c.stampLines(outputPath, s); err != nil {
			return err
		}
	}

	if err := c.writeProperties(outputPath); err != nil {
		// Metadata is cosmetic, the overlay result stands.
		logger.Warn("failed to write document properties", logger.Err(err))
	}

	return c.validate(outputPath)
}

// coverRegion hides the source text with a white rectangle over the
// element's bounding box.
func (c *Compositor) coverRegion(path string, el TextElement) error {
	bg := color.White
	wm := &model.Watermark{
		Mode:       model.WMText,
		TextString: " ",
		BgColor:    &bg,
		Opacity:    1.0,
		OnTop:      true,
		Pos:        types.BottomLeft,
		Dx:         el.X,
		Dy:         el.Y,
		Width:      int(el.Width),
		Height:     int(el.Height),
	}

	pages := []string{fmt.Sprintf("%d", el.Page)}
	if err := api.AddWatermarksFile(path, "", pages, wm, c.conf); err != nil {
		return NewPDFErrorWithPage(ErrComposeFailed, "failed to cover source text", el.Page, err)
	}
	return nil
}

// stampLines writes the fitted lines into the element's bounding box,
// right-aligned, top to bottom.
func (c *Compositor) stampLines(path string, s Stamp) error {
	el := s.Element
	fontName := c.fonts.Resolve(el.FontName, el.IsBold, el.IsItalic)
	lineHeight := layout.LineHeight(s.Fit.FontSize)
	top := el.Y + el.Height

	for i, line := range s.Fit.Lines {
		if line == "" {
			continue
		}
		lineWidth := layout.StringWidth(line, s.Fit.FontSize)
		x := el.X + el.Width - lineWidth
		if x < el.X {
			x = el.X
		}
		y := top - float64(i+1)*lineHeight

		wm := &model.Watermark{
			Mode:           model.WMText,
			TextString:     line,
			FontName:       fontName,
			FontSize:       int(s.Fit.FontSize),
			ScaledFontSize: int(s.Fit.FontSize),
			Color:          color.Black,
			Opacity:        1.0,
			OnTop:          true,
			Pos:            types.BottomLeft,
			Dx:             x,
			Dy:             y,
		}

		pages := []string{fmt.Sprintf("%d", el.Page)}
		if err := api.AddWatermarksFile(path, "", pages, wm, c.conf); err != nil {
			return NewPDFErrorWithPage(ErrComposeFailed, "failed to stamp translated text", el.Page, err)
		}
	}
	return nil
}

// writeProperties records the producer in the document info dictionary.
func (c *Compositor) writeProperties(path string) error {
	return api.AddPropertiesFile(path, "", map[string]string{"Producer": producerName}, c.conf)
}

// validate checks the finished output with the PDF validator and rejects
// empty files.
func (c *Compositor) validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return NewPDFError(ErrComposeFailed, "output file missing", err)
	}
	if info.Size() == 0 {
		return NewPDFError(ErrComposeFailed, "output file is empty", nil)
	}
	if err := api.ValidateFile(path, c.conf); err != nil {
		return NewPDFError(ErrComposeFailed, "output failed validation", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
