package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/stepedge/concierge/pkg/domain"
)

// Config holds the collaborator configuration. Any OpenAI-compatible
// endpoint works via BaseURL.
type Config struct {
	BaseURL        string
	APIKey         string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        "https://api.openai.com/v1",
		ChatModel:      "gpt-4o-mini",
		EmbeddingModel: "text-embedding-3-small",
		Timeout:        30 * time.Second,
	}
}

// Provider implements ports.Generator and ports.Embedder on go-openai.
// Failures are wrapped in domain.ErrCollaborator so callers can recognize
// and recover from them uniformly.
type Provider struct {
	client *openai.Client
	config *Config
}

// NewProvider creates a provider from the given configuration.
func NewProvider(cfg *Config) *Provider {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = "gpt-4o-mini"
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = "text-embedding-3-small"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Provider{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}
}

// Generate performs a single-shot completion with the given sampling
// parameters. The call is bounded by the configured timeout on top of
// whatever deadline the caller set.
func (p *Provider) Generate(ctx context.Context, prompt string, maxTokens int, stop []string, temperature float32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.config.ChatModel,
		MaxTokens:   maxTokens,
		Stop:        stop,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: chat completion: %v", domain.ErrCollaborator, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion response", domain.ErrCollaborator)
	}
	return resp.Choices[0].Message.Content, nil
}

// Embed generates an embedding vector for a single text.
func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := p.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates embedding vectors for multiple texts.
func (p *Provider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts provided for embedding")
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(p.config.EmbeddingModel),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create embeddings: %v", domain.ErrCollaborator, err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", domain.ErrCollaborator, len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		vectors[i] = d.Embedding
	}
	return vectors, nil
}
