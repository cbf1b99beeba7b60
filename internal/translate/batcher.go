package translate

import (
	"context"
	"fmt"

	"persian-translator/internal/logger"
	"persian-translator/internal/rtl"
)

// Batcher groups texts into batches, submits them sequentially through the
// retry controller, and demultiplexes the responses by marker.
type Batcher struct {
	client          Client
	retrier         *Retrier
	domain          string
	batchSize       int
	continueOnError bool
}

// Stats summarizes one translation run.
type Stats struct {
	// Total is the number of texts submitted.
	Total int
	// Translated is the number of texts that received a translation.
	Translated int
	// Fallback is the number of texts that kept their source text because
	// their batch failed after all retries under continue-on-error.
	Fallback int
	// Batches is the number of API batches submitted.
	Batches int
}

// NewBatcher creates a Batcher. batchSize values below 1 are clamped to 1.
func NewBatcher(client Client, retrier *Retrier, domain string, batchSize int, continueOnError bool) *Batcher {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Batcher{
		client:          client,
		retrier:         retrier,
		domain:          domain,
		batchSize:       batchSize,
		continueOnError: continueOnError,
	}
}

// Batches partitions texts into consecutive groups of at most size,
// preserving order. The last batch may be smaller.
func Batches(texts []string, size int) [][]string {
	if size < 1 {
		size = 1
	}
	var out [][]string
	for start := 0; start < len(texts); start += size {
		end := start + size
		if end > len(texts) {
			end = len(texts)
		}
		out = append(out, texts[start:end])
	}
	return out
}

// TranslateTexts translates texts in order and returns one result per
// input. A failed batch either aborts the run or, with continue-on-error,
// falls back to the source text for its members.
func (b *Batcher) TranslateTexts(ctx context.Context, texts []string) ([]string, Stats, error) {
	results := make([]string, len(texts))
	stats := Stats{Total: len(texts)}

	cleaned := make([]string, len(texts))
	for i, t := range texts {
		cleaned[i] = rtl.CleanForTranslation(t)
	}

	batches := Batches(cleaned, b.batchSize)
	offset := 0
	for bi, batch := range batches {
		stats.Batches++
		logger.Debug("submitting batch",
			logger.Int("batch", bi+1),
			logger.Int("batches", len(batches)),
			logger.Int("size", len(batch)))

		segments, err := b.translateBatch(ctx, batch)
		if err != nil {
			if !b.continueOnError {
				return nil, stats, err
			}
			logger.Warn("batch failed, keeping source text",
				logger.Int("batch", bi+1),
				logger.Err(err))
			for i := range batch {
				results[offset+i] = texts[offset+i]
				stats.Fallback++
			}
			offset += len(batch)
			continue
		}

		// translateBatch only succeeds with a complete demux, so every
		// segment has its marker here.
		for i := range batch {
			results[offset+i] = segments[i+1]
			stats.Translated++
		}
		offset += len(batch)
	}

	return results, stats, nil
}

// translateBatch submits one batch through the retry controller. A
// response missing any segment marker counts as a transient failure for
// that attempt, so partial answers are retried rather than accepted.
func (b *Batcher) translateBatch(ctx context.Context, batch []string) (map[int]string, error) {
	prompt := BuildBatchPrompt(b.domain, batch)

	raw, err := b.retrier.Do(ctx, func(ctx context.Context) (string, error) {
		out, err := b.client.Translate(ctx, prompt)
		if err != nil {
			return "", err
		}
		segments := ParseBatchResponse(out)
		if m := missingMarker(segments, len(batch)); m != 0 {
			return "", NewError(KindTransient,
				fmt.Sprintf("response missing marker [[%d]] of %d", m, len(batch)), nil)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return ParseBatchResponse(raw), nil
}

// missingMarker returns the first marker absent from segments, or 0 when
// segments covers 1 through count.
func missingMarker(segments map[int]string, count int) int {
	for i := 1; i <= count; i++ {
		if _, ok := segments[i]; !ok {
			return i
		}
	}
	return 0
}
