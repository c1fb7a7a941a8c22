// Package embed provides text embedding encoders for semantic search.
package embed

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	apperrors "github.com/KirillKCrypto/Trading-Journal-APP/internal/errors"
)

// Encoder turns text into a fixed-dimension vector. Implementations must
// be deterministic for a given model version and safe for concurrent use.
type Encoder interface {
	Encode(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// OpenAIEncoder implements Encoder using an OpenAI-compatible
// embeddings endpoint.
type OpenAIEncoder struct {
	client    *openai.Client
	model     string
	dimension int
}

// NewOpenAIEncoder creates an encoder against the given endpoint.
// The dimension is fixed at construction; every vector this encoder
// returns has exactly that length.
func NewOpenAIEncoder(apiKey, baseURL, model string, dimension int) (*OpenAIEncoder, error) {
	if apiKey == "" {
		return nil, apperrors.ErrMissingAPIKey
	}
	if dimension <= 0 {
		return nil, fmt.Errorf("invalid embedding dimension: %d", dimension)
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIEncoder{
		client:    openai.NewClientWithConfig(cfg),
		model:     model,
		dimension: dimension,
	}, nil
}

// Encode returns the embedding vector for the given text.
func (e *OpenAIEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      openai.EmbeddingModel(e.model),
		Dimensions: e.dimension,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, apperrors.ErrNoResponse
	}

	vec := resp.Data[0].Embedding
	if len(vec) != e.dimension {
		return nil, fmt.Errorf("embedding dimension mismatch: got %d, want %d", len(vec), e.dimension)
	}
	return vec, nil
}

// Dimension returns the encoder's output vector length.
func (e *OpenAIEncoder) Dimension() int {
	return e.dimension
}
