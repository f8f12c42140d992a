// Package gemini wraps the Gemini API for question generation, streamed
// feedback reports and record embeddings.
package gemini

import (
	"context"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	// ModelName is the Gemini model used for generation.
	ModelName = "gemini-2.0-flash"
	// EmbeddingModelName is the model used to embed memory records.
	EmbeddingModelName = "text-embedding-004"

	quizSystemInstruction   = "You are an honest interview question generator and assessment advisor."
	reportSystemInstruction = "You are an honest, concise exam-feedback generator. Produce structured markdown output."
)

// Client wraps the Gemini client with one model handle per concern: quiz
// generation runs warmer than report generation.
type Client struct {
	client   *genai.Client
	quiz     *genai.GenerativeModel
	report   *genai.GenerativeModel
	embedder *genai.EmbeddingModel
}

// NewClient creates a new Gemini client from GEMINI_API_KEY.
func NewClient(ctx context.Context) (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	quiz := client.GenerativeModel(ModelName)
	quiz.SetTemperature(0.7)
	quiz.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(quizSystemInstruction)}}

	report := client.GenerativeModel(ModelName)
	report.SetTemperature(0.15)
	report.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(reportSystemInstruction)}}

	return &Client{
		client:   client,
		quiz:     quiz,
		report:   report,
		embedder: client.EmbeddingModel(EmbeddingModelName),
	}, nil
}

// Close closes the Gemini client.
func (c *Client) Close() {
	c.client.Close()
}

// Embed returns the embedding vector for one piece of text. Shaped to plug
// straight into the vector store as its embedding function.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := c.embedder.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if res.Embedding == nil {
		return nil, fmt.Errorf("embedding response contained no values")
	}
	return res.Embedding.Values, nil
}
