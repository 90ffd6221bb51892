package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIConfig configures the chat-completions text provider. Any endpoint
// speaking the OpenAI chat API works through BaseURL.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type openaiClient struct {
	config OpenAIConfig
	client *http.Client
}

// NewOpenAIProvider creates a TextProvider backed by an OpenAI-compatible
// chat-completions endpoint.
func NewOpenAIProvider(config OpenAIConfig) TextProvider {
	if config.BaseURL == "" {
		config.BaseURL = defaultOpenAIBaseURL
	}
	if config.Model == "" {
		config.Model = "gpt-4o-mini"
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &openaiClient{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *openaiClient) Complete(ctx context.Context, req CompletionRequest) (CompletionResult, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		prompt = BuildPrompt(req.SectionType, Context{Category: req.Category})
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You write concise website copy. Respond with a single JSON object."},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return CompletionResult{}, fmt.Errorf("encode completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.config.BaseURL, "/")+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return CompletionResult{}, fmt.Errorf("build completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return CompletionResult{}, fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return CompletionResult{}, fmt.Errorf("read completion response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return CompletionResult{}, fmt.Errorf("decode completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return CompletionResult{}, fmt.Errorf("completion provider: %s", parsed.Error.Message)
		}
		return CompletionResult{}, fmt.Errorf("completion provider: status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return CompletionResult{}, fmt.Errorf("completion provider: empty response")
	}

	fields := map[string]any{}
	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		// Not JSON: keep the raw copy under title so the call still yields
		// something usable.
		fields["title"] = content
	}

	return CompletionResult{Fields: fields}, nil
}
