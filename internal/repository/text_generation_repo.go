package repository

import "context"

// TextGenerationRepository defines the contract for the text-generation
// provider. Implementations fail with ErrGenerationRefused for rejected
// requests and ErrUpstream for transient provider failures.
type TextGenerationRepository interface {
	// GenerateText submits a system instruction plus one user prompt and
	// returns the generated text block verbatim.
	GenerateText(ctx context.Context, system, prompt string) (string, error)
}
