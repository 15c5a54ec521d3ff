package ports

import "context"

// Generator is the text-generation collaborator. It may be slow or fail;
// callers bound it with a context deadline and keep a deterministic
// fallback, so degraded generation never degrades availability.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int, stop []string, temperature float32) (string, error)
}

// Embedder turns text into a vector for similarity search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
