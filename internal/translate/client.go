package translate

import "context"

// Client sends one prompt to a model provider and returns the raw
// response text. Implementations classify their failures with Classify
// or return *Error directly.
type Client interface {
	Translate(ctx context.Context, prompt string) (string, error)
}
