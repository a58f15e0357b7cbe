package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var (
	// ErrNotConfigured возвращается, если API ключ не задан
	ErrNotConfigured = errors.New("gemini client: api key is not configured")

	// ErrGenerate возвращается при ошибке генерации
	ErrGenerate = errors.New("gemini client: generation failed")

	// ErrEmptyResponse возвращается, если модель не вернула текста
	ErrEmptyResponse = errors.New("gemini client: empty response")
)

// Client клиент генеративной модели Gemini
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewClient создает клиента. Пустой apiKey дает клиента, который всегда возвращает ErrNotConfigured.
func NewClient(ctx context.Context, apiKey, modelName string, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" {
		return &Client{}, nil
	}

	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: client, model: client.GenerativeModel(modelName)}, nil
}

// GenerateText возвращает текст первого кандидата
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	if c.model == nil {
		return "", ErrNotConfigured
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerate, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}

// Close освобождает соединение
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
