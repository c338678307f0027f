package answer

import "context"

// Generator produces an answer grounded in retrieved context.
// Implementations must treat every failure as returnable: the Composer
// degrades to a local deterministic reply on any error.
type Generator interface {
	Generate(ctx context.Context, system, contextText, question string) (string, error)
}
