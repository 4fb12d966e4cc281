package services

import (
	"aiformbuilder-be/config"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/option"
)

var (
	// ErrAINotConfigured is returned before any call when the selected
	// provider is missing credentials.
	ErrAINotConfigured = errors.New("AI provider is not configured")
	// ErrEmptyResponse is returned when the provider answers with no text.
	ErrEmptyResponse = errors.New("empty response from AI provider")
)

// Completer sends one system + user message pair and returns the model text.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// NewCompleter creates the completer for the configured provider.
func NewCompleter(ctx context.Context, cfg *config.Config) (Completer, error) {
	if !cfg.AIConfigured() {
		return nil, ErrAINotConfigured
	}

	switch strings.ToLower(cfg.AIProvider) {
	case config.ProviderGemini:
		return NewGeminiCompleter(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return NewAzureOpenAICompleter(
			cfg.AzureOpenAIEndpoint,
			cfg.AzureOpenAIDeployment,
			cfg.AzureOpenAIAPIVersion,
			cfg.AzureOpenAIAPIKey,
			&http.Client{Timeout: cfg.AITimeout},
		), nil
	}
}

// AzureOpenAICompleter calls an Azure OpenAI chat completions deployment.
type AzureOpenAICompleter struct {
	endpoint   string
	deployment string
	apiVersion string
	apiKey     string
	client     *http.Client

	Temperature float64
	MaxTokens   int
}

func NewAzureOpenAICompleter(endpoint, deployment, apiVersion, apiKey string, client *http.Client) *AzureOpenAICompleter {
	if client == nil {
		client = http.DefaultClient
	}
	return &AzureOpenAICompleter{
		endpoint:    strings.TrimRight(endpoint, "/"),
		deployment:  deployment,
		apiVersion:  apiVersion,
		apiKey:      apiKey,
		client:      client,
		Temperature: 0.5,
		MaxTokens:   2000,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Complete sends a single chat completion request. There is no retry.
func (c *AzureOpenAICompleter) Complete(ctx context.Context, system, user string) (string, error) {
	reqBody := map[string]interface{}{
		"messages": []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		"temperature": c.Temperature,
		"max_tokens":  c.MaxTokens,
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.endpoint, url.PathEscape(c.deployment), url.QueryEscape(c.apiVersion))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("azure openai request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("Azure OpenAI API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode azure openai response: %w", err)
	}

	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

const defaultGeminiModel = "gemini-1.5-flash"

// GeminiCompleter calls the Gemini generateContent API.
type GeminiCompleter struct {
	svc   *generativelanguage.Service
	model string

	Temperature float64
}

// NewGeminiCompleter builds the client. Extra options (an endpoint in
// tests) are appended after the API key.
func NewGeminiCompleter(ctx context.Context, apiKey, model string, opts ...option.ClientOption) (*GeminiCompleter, error) {
	if model == "" {
		model = defaultGeminiModel
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := generativelanguage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiCompleter{svc: svc, model: model, Temperature: 0.5}, nil
}

func (c *GeminiCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	model := c.model
	if !strings.HasPrefix(model, "models/") {
		model = "models/" + model
	}

	req := &generativelanguage.GenerateContentRequest{
		Contents: []*generativelanguage.Content{
			{Role: "user", Parts: []*generativelanguage.Part{{Text: user}}},
		},
		GenerationConfig: &generativelanguage.GenerationConfig{
			Temperature: c.Temperature,
		},
	}
	if system != "" {
		req.SystemInstruction = &generativelanguage.Content{
			Parts: []*generativelanguage.Part{{Text: system}},
		}
	}

	resp, err := c.svc.Models.GenerateContent(model, req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("gemini generateContent: %w", err)
	}

	var sb strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
