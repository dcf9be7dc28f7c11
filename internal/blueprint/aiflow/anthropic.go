package aiflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// ============================================================
// Anthropic layout generator
// ============================================================

const (
	anthropicAPIURL  = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"
	defaultModel     = "claude-sonnet-4-5"
	defaultMaxTokens = 8192
)

// AnthropicGenerator запрашивает макеты у Messages API и разбирает JSON
// из текстового ответа.
type AnthropicGenerator struct {
	apiKey     string
	model      string
	endpoint   string
	maxRetries int
	backoff    time.Duration
	httpClient *http.Client
}

type AnthropicOption func(*AnthropicGenerator)

// WithEndpoint подменяет адрес API (тесты, прокси).
func WithEndpoint(url string) AnthropicOption {
	return func(g *AnthropicGenerator) { g.endpoint = url }
}

func WithHTTPClient(c *http.Client) AnthropicOption {
	return func(g *AnthropicGenerator) { g.httpClient = c }
}

// WithMaxRetries задаёт число повторов после первой попытки; 0 отключает
// повторы.
func WithMaxRetries(n int) AnthropicOption {
	return func(g *AnthropicGenerator) {
		if n >= 0 {
			g.maxRetries = n
		}
	}
}

// WithBackoff задаёт паузу перед первым повтором; дальше она удваивается.
func WithBackoff(d time.Duration) AnthropicOption {
	return func(g *AnthropicGenerator) {
		if d > 0 {
			g.backoff = d
		}
	}
}

func NewAnthropicGenerator(apiKey, model string, opts ...AnthropicOption) *AnthropicGenerator {
	if model == "" {
		model = defaultModel
	}
	g := &AnthropicGenerator{
		apiKey:     apiKey,
		model:      model,
		endpoint:   anthropicAPIURL,
		maxRetries: 2,
		backoff:    time.Second,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type anthropicRequest struct {
	Model     string         `json:"model"`
	MaxTokens int            `json:"max_tokens"`
	System    string         `json:"system,omitempty"`
	Messages  []anthropicMsg `json:"messages"`
}

type anthropicMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type anthropicError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// apiStatusError: ответ API с кодом, отличным от 200.
type apiStatusError struct {
	status  int
	message string
}

func (e *apiStatusError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.status, e.message)
}

// retryable: повторяются сетевые ошибки, 429 и 5xx. Остальные 4xx
// не исправятся повтором.
func retryable(err error) bool {
	var apiErr *apiStatusError
	if !errors.As(err, &apiErr) {
		return true
	}
	return apiErr.status == http.StatusTooManyRequests || apiErr.status >= 500
}

// GenerateLayouts отправляет запрос с повторами и возвращает разобранные макеты.
func (g *AnthropicGenerator) GenerateLayouts(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	attempts := 0

	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		attempts++
		text, err := g.complete(ctx, req.Prompt)
		if err == nil {
			return ParseLayouts(text)
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt == g.maxRetries || !retryable(err) {
			break
		}

		backoff := g.backoff << uint(attempt)
		log.Printf("[AI] attempt %d failed: %v (retry in %s)", attempt+1, err, backoff)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}

func (g *AnthropicGenerator) complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	body, err := json.Marshal(anthropicRequest{
		Model:     g.model,
		MaxTokens: defaultMaxTokens,
		System:    systemPrompt,
		Messages:  []anthropicMsg{{Role: "user", Content: userPrompt(prompt)}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", g.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr anthropicError
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error.Message != "" {
			return "", &apiStatusError{status: resp.StatusCode, message: apiErr.Error.Type + " - " + apiErr.Error.Message}
		}
		return "", &apiStatusError{status: resp.StatusCode, message: string(data)}
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	var text strings.Builder
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	log.Printf("[AI] completion in %s (in=%d out=%d stop=%s)",
		time.Since(start).Round(time.Millisecond), apiResp.Usage.InputTokens, apiResp.Usage.OutputTokens, apiResp.StopReason)
	return text.String(), nil
}

// ParseLayouts извлекает JSON-объект {"layouts": [...]} из текста ответа,
// допускается обёртка в блок кода.
func ParseLayouts(text string) (*Response, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in completion")
	}

	var out Response
	if err := json.Unmarshal([]byte(text[start:end+1]), &out); err != nil {
		return nil, fmt.Errorf("decode layouts: %w", err)
	}
	return &out, nil
}
