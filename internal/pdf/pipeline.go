package pdf

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"persian-translator/internal/config"
	"persian-translator/internal/layout"
	"persian-translator/internal/logger"
	"persian-translator/internal/translate"
)

// Pipeline runs a complete translation: extract, translate, fit, compose.
// Stages run sequentially; a fatal error aborts the run before any output
// file is written.
type Pipeline struct {
	cfg        *config.Config
	extractor  *Extractor
	batcher    *translate.Batcher
	compositor *Compositor
}

// NewPipeline wires the pipeline stages together.
func NewPipeline(cfg *config.Config, extractor *Extractor, batcher *translate.Batcher, compositor *Compositor) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		extractor:  extractor,
		batcher:    batcher,
		compositor: compositor,
	}
}

// OutputPath returns the default output path for an input file:
// the same directory and name with a "_translated" suffix.
func OutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(inputPath, ext)
	if ext == "" {
		ext = ".pdf"
	}
	return base + "_translated" + ext
}

// Translate runs the pipeline on inputPath and writes the result to
// outputPath.
func (p *Pipeline) Translate(ctx context.Context, inputPath, outputPath string) (*Result, error) {
	info, err := p.extractor.Info(inputPath)
	if err != nil {
		return nil, err
	}
	if !info.IsTextPDF {
		return nil, NewPDFError(ErrPDFNoText, "PDF contains no selectable text", nil)
	}
	logger.Info("input loaded",
		logger.String("file", info.FileName),
		logger.Int("pages", info.PageCount),
		logger.Int64("bytes", info.FileSize))

	elements, err := p.extractor.ExtractElements(inputPath)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(elements))
	for i, el := range elements {
		texts[i] = el.Text
	}

	translated, stats, err := p.batcher.TranslateTexts(ctx, texts)
	if err != nil {
		return nil, NewPDFError(ErrTranslateFailed, "translation failed", err)
	}
	for i := range elements {
		elements[i].TranslatedText = translated[i]
	}

	result := &Result{
		InputPath:  inputPath,
		OutputPath: outputPath,
		PageCount:  info.PageCount,
		Total:      stats.Total,
		Translated: stats.Translated,
		Fallback:   stats.Fallback,
	}

	stamps := make([]Stamp, 0, len(elements))
	for _, el := range elements {
		fit := layout.Fit(el.TranslatedText, el.Width, el.Height, el.FontSize)
		if fit.Overflow {
			result.Overflow++
			logger.Debug("text overflows element at minimum size",
				logger.String("element", el.ID),
				logger.Int("page", el.Page))
		}
		stamps = append(stamps, Stamp{Element: el, Fit: fit})
	}

	if err := ctx.Err(); err != nil {
		return nil, NewPDFError(ErrCancelled, "run cancelled", err)
	}

	if err := p.compositor.Compose(inputPath, stamps, outputPath); err != nil {
		// Never leave a broken output file behind.
		os.Remove(outputPath)
		return nil, err
	}

	logger.Info("translation complete",
		logger.String("output", outputPath),
		logger.Int("total", result.Total),
		logger.Int("translated", result.Translated),
		logger.Int("fallback", result.Fallback),
		logger.Int("overflow", result.Overflow))
	return result, nil
}
