package ai

import "context"

// Generator produces short descriptive blurbs from rendered prompts.
// Implementations must be safe for concurrent use.
type Generator interface {
	// GenerateBlurb sends the rendered prompt to the hosted model and
	// returns the generated text verbatim. The prompt, not this method,
	// constrains length and content. Returns a ServiceError on failure.
	GenerateBlurb(ctx context.Context, prompt string) (string, error)
}

// Embedder generates vector embeddings from text for semantic
// similarity search. Implementations must be safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates embeddings for multiple texts in one batch.
	// The returned slice is in input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider aggregates the AI services behind a single lifecycle, so
// that generator and embedder share credentials and configuration.
type Provider interface {
	// Generator returns the blurb generation service.
	Generator() Generator

	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Close releases resources held by the provider. The provider and
	// its services must not be used after Close.
	Close() error
}
