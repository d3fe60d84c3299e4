package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

var ErrEmptyCompletion = errors.New("llm returned no choices")

// Client is the language-model collaborator. Complete handles text-only
// prompts; CompleteWithImage sends a vision request with an image URL or a
// data URI.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithImage(ctx context.Context, prompt, imageURL string) (string, error)
}

// OpenAI talks to any OpenAI-compatible chat-completions endpoint.
type OpenAI struct {
	baseURL     string
	apiKey      string
	model       string
	visionModel string
	httpClient  *http.Client
	logger      *slog.Logger
}

type Options struct {
	BaseURL     string
	APIKey      string
	Model       string
	VisionModel string
	Timeout     time.Duration
}

func NewOpenAI(opts Options) *OpenAI {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.openai.com/v1"
	}
	if opts.Model == "" {
		opts.Model = "gpt-4o-mini"
	}
	if opts.VisionModel == "" {
		opts.VisionModel = opts.Model
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}

	return &OpenAI{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		apiKey:      opts.APIKey,
		model:       opts.Model,
		visionModel: opts.VisionModel,
		httpClient:  &http.Client{Timeout: opts.Timeout},
		logger:      slog.Default().With("component", "llm"),
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature,omitempty"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageRef `json:"image_url,omitempty"`
}

type imageRef struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	return c.chat(ctx, chatRequest{
		Model:       c.model,
		Temperature: 0.7,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	})
}

func (c *OpenAI) CompleteWithImage(ctx context.Context, prompt, imageURL string) (string, error) {
	return c.chat(ctx, chatRequest{
		Model:       c.visionModel,
		Temperature: 0.7,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: prompt},
					{Type: "image_url", ImageURL: &imageRef{URL: imageURL}},
				},
			},
		},
	})
}

func (c *OpenAI) chat(ctx context.Context, reqBody chatRequest) (string, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call chat completions: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	var parsed chatResponse
	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(body))
		if json.Unmarshal(body, &parsed) == nil && parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", fmt.Errorf("chat completions status=%d: %s", resp.StatusCode, msg)
	}

	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyCompletion
	}

	return content, nil
}
