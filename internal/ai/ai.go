// Package ai wraps the text-generation providers used for the qualitative
// half of asset analysis. Providers return raw text; callers own parsing and
// every numeric fallback, so a flaky model never breaks the scoring math.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/config"
)

// Generator produces one completion per prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// New creates a Generator from the given AI config.
func New(cfg *config.AIConfig, apiKey string) (Generator, error) {
	if cfg == nil || apiKey == "" {
		return nil, fmt.Errorf("AI not configured")
	}

	client := &http.Client{Timeout: 60 * time.Second}

	switch cfg.Provider {
	case "claude":
		model := cfg.Model
		if model == "" {
			model = "claude-haiku-4-5-20251001"
		}
		return &claudeProvider{apiKey: apiKey, model: model, client: client}, nil
	case "openai":
		model := cfg.Model
		if model == "" {
			model = "gpt-4o-mini"
		}
		return &openaiProvider{apiKey: apiKey, model: model, client: client}, nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %q (valid: claude, openai)", cfg.Provider)
	}
}

// StripFences removes a surrounding markdown code fence, with or without a
// language tag. Models add them around JSON no matter how the prompt asks.
func StripFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// --- Claude provider ---

type claudeProvider struct {
	apiKey string
	model  string
	client *http.Client
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (c *claudeProvider) Generate(ctx context.Context, prompt string) (string, error) {
	body, _ := json.Marshal(claudeRequest{
		Model:     c.model,
		MaxTokens: 1024,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	})

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.anthropic.com/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("claude API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("claude API %d: %s", resp.StatusCode, string(b))
	}

	var cr claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Content) == 0 {
		return "", fmt.Errorf("empty claude response")
	}
	return cr.Content[0].Text, nil
}

// --- OpenAI provider ---

type openaiProvider struct {
	apiKey string
	model  string
	client *http.Client
}

type openaiRequest struct {
	Model    string          `json:"model"`
	Messages []openaiMessage `json:"messages"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (o *openaiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	body, _ := json.Marshal(openaiRequest{
		Model:    o.model,
		Messages: []openaiMessage{{Role: "user", Content: prompt}},
	})

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.openai.com/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("openai API %d: %s", resp.StatusCode, string(b))
	}

	var or openaiResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return "", err
	}
	if len(or.Choices) == 0 {
		return "", fmt.Errorf("empty openai response")
	}
	return or.Choices[0].Message.Content, nil
}
