package translate

import (
	"context"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"persian-translator/internal/logger"
)

// translationTemperature keeps the model output close to a literal
// translation.
const translationTemperature float32 = 0.3

// Gemini is the Client implementation backed by the Google Gemini API.
// It holds a primary model and an optional fallback model that is tried
// when the primary fails permanently.
type Gemini struct {
	client *genai.Client
	models []*genai.GenerativeModel
	names  []string
}

// NewGemini creates a Gemini client for the given models. fallbackModel
// may be empty.
func NewGemini(ctx context.Context, apiKey, model, fallbackModel string) (*Gemini, error) {
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, NewError(KindPermanent, "failed to create Gemini client", err)
	}

	g := &Gemini{client: cl}
	for _, name := range []string{model, fallbackModel} {
		if name == "" {
			continue
		}
		m := cl.GenerativeModel(name)
		m.GenerationConfig = genai.GenerationConfig{
			Temperature: ptrFloat32(translationTemperature),
		}
		g.models = append(g.models, m)
		g.names = append(g.names, name)
	}

	logger.Info("Gemini client initialized", logger.Any("models", g.names))
	return g, nil
}

// Translate sends the prompt to the primary model and falls back to the
// next model in the chain on permanent failures. Retryable failures are
// returned to the caller so the retry controller can back off.
func (g *Gemini) Translate(ctx context.Context, prompt string) (string, error) {
	var lastErr *Error
	for i, m := range g.models {
		resp, err := m.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			lastErr = Classify(err)
			if lastErr.Kind == KindPermanent && i+1 < len(g.models) {
				logger.Warn("model failed, trying fallback",
					logger.String("model", g.names[i]),
					logger.String("fallback", g.names[i+1]),
					logger.Err(lastErr))
				continue
			}
			return "", lastErr
		}

		text := responseText(resp)
		if text == "" {
			lastErr = NewError(KindTransient, "empty response from model", nil)
			continue
		}
		return text, nil
	}

	if lastErr == nil {
		lastErr = NewError(KindPermanent, "no translation model configured", nil)
	}
	return "", lastErr
}

// Close releases the underlying API client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var out string
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				out += string(t)
			}
		}
		break
	}
	return out
}

func ptrFloat32(v float32) *float32 { return &v }
