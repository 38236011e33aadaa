// ABOUTME: OpenAI client for idea splitting and embeddings
// ABOUTME: Chat completions partition a note into ideas, embeddings vectorize them
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/harper/ideanotes/internal/util"
)

// Provider error kinds. Callers match with errors.Is.
var (
	// ErrProvider is a network or service failure at the provider.
	ErrProvider = errors.New("provider request failed")
	// ErrMalformedResponse means the provider answered but the payload
	// could not be parsed into the expected shape.
	ErrMalformedResponse = errors.New("malformed provider response")
)

const (
	// DefaultChatModel is the default model for idea splitting
	DefaultChatModel = "gpt-4o-mini"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = openai.SmallEmbedding3
)

const splitSystemPrompt = `You are a helpful assistant that splits a note into separate ideas.
Group any common themes into a JSON array of strings.
Return ONLY the JSON array. No additional text.`

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel openai.EmbeddingModel
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:         apiKey,
		ChatModel:      DefaultChatModel,
		EmbeddingModel: DefaultEmbeddingModel,
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     time.Second * 2,
	}
}

// Client wraps the OpenAI API client with retry logic
type Client struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
}

// NewClient creates a new OpenAI client with default configuration
func NewClient(apiKey string) (*Client, error) {
	return NewClientWithConfig(DefaultConfig(apiKey))
}

// NewClientWithConfig creates a new OpenAI client with custom configuration
func NewClientWithConfig(config *ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		client:         openai.NewClient(config.APIKey),
		chatModel:      config.ChatModel,
		embeddingModel: config.EmbeddingModel,
		timeout:        timeout,
		maxRetries:     config.MaxRetries,
		retryDelay:     config.RetryDelay,
	}, nil
}

// SplitIdeas asks the chat model to partition a note's title and
// content into thematically coherent idea strings. There is no
// fallback: a failure here aborts the whole embedding run.
func (c *Client) SplitIdeas(ctx context.Context, title, content string) ([]string, error) {
	userPrompt := fmt.Sprintf("The note is titled: %s\nThe note content is: %s", title, content)

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)

		resp, err := c.client.CreateChatCompletion(attemptCtx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: splitSystemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userPrompt,
				},
			},
			Temperature: 0.7,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w: %v", attempt+1, ErrProvider, err)
			continue
		}

		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: %w: no completion choices", attempt+1, ErrMalformedResponse)
			continue
		}

		ideas, err := parseIdeaList(resp.Choices[0].Message.Content)
		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		return ideas, nil
	}

	return nil, fmt.Errorf("failed to split ideas after %d attempts: %w", c.maxRetries+1, lastErr)
}

// EmbedIdeas sends all idea strings in one batched request and returns
// one vector per idea, in input order. A short result is a hard
// failure of the whole call, never silently truncated.
func (c *Client) EmbedIdeas(ctx context.Context, ideas []string) ([][]float64, error) {
	if len(ideas) == 0 {
		return [][]float64{}, nil
	}

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)

		resp, err := c.client.CreateEmbeddings(attemptCtx, openai.EmbeddingRequestStrings{
			Input: ideas,
			Model: c.embeddingModel,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w: %v", attempt+1, ErrProvider, err)
			continue
		}

		if len(resp.Data) != len(ideas) {
			lastErr = fmt.Errorf("attempt %d: %w: got %d embeddings for %d ideas",
				attempt+1, ErrMalformedResponse, len(resp.Data), len(ideas))
			continue
		}

		vectors := make([][]float64, len(ideas))
		for _, d := range resp.Data {
			if d.Index < 0 || d.Index >= len(ideas) {
				lastErr = fmt.Errorf("attempt %d: %w: embedding index %d out of range",
					attempt+1, ErrMalformedResponse, d.Index)
				vectors = nil
				break
			}
			vec := make([]float64, len(d.Embedding))
			for i, v := range d.Embedding {
				vec[i] = float64(v)
			}
			vectors[d.Index] = vec
		}
		if vectors == nil {
			continue
		}

		return vectors, nil
	}

	return nil, fmt.Errorf("failed to embed %d ideas after %d attempts: %w", len(ideas), c.maxRetries+1, lastErr)
}

// EmbedQuery embeds a single free-text query for use as a search probe.
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float64, error) {
	vectors, err := c.EmbedIdeas(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// parseIdeaList parses a chat response claiming to be a JSON array of
// strings. Models sometimes wrap the array in a markdown code fence,
// so fences are stripped first.
func parseIdeaList(content string) ([]string, error) {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}

	var ideas []string
	if err := json.Unmarshal([]byte(trimmed), &ideas); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	// "null" unmarshals into a nil slice without error; treating it as
	// zero ideas would purge the note's embeddings downstream
	if ideas == nil {
		return nil, fmt.Errorf("%w: null instead of a JSON array", ErrMalformedResponse)
	}
	return ideas, nil
}
