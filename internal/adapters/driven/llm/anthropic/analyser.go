// Package anthropic provides a CV analyser backed by the Anthropic Messages API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/cvkit/internal/core/domain"
	"github.com/custodia-labs/cvkit/internal/core/ports/driven"
	"github.com/custodia-labs/cvkit/internal/logger"
)

// Ensure Analyser implements the interface.
var _ driven.CVAnalyser = (*Analyser)(nil)

// Default configuration values.
const (
	DefaultBaseURL   = "https://api.anthropic.com"
	DefaultModel     = "claude-3-5-sonnet-latest"
	DefaultTimeout   = 120 * time.Second
	DefaultMaxTokens = 1024

	// maxCVRunes bounds the CV text sent upstream.
	maxCVRunes = 30000

	anthropicVersion = "2023-06-01"
)

// Config holds configuration for the Anthropic analyser.
type Config struct {
	// APIKey is the Anthropic API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.anthropic.com).
	BaseURL string

	// Model is the model to use (default: claude-3-5-sonnet-latest).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration

	// RequestsPerSecond and Burst configure the outbound token bucket.
	RequestsPerSecond float64
	Burst             int
}

// Analyser reviews CV text with Claude.
type Analyser struct {
	client      *http.Client
	baseURL     string
	apiKey      string
	model       string
	limiter     *rateLimiter
	promptStore driven.PromptStore
	now         func() time.Time
}

type messagesRequest struct {
	Model     string            `json:"model"`
	Messages  []messagesMessage `json:"messages"`
	MaxTokens int               `json:"max_tokens"`
	System    string            `json:"system,omitempty"`
}

type messagesMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Error      *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewAnalyser creates a new Anthropic analyser.
func NewAnalyser(cfg Config) (*Analyser, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Analyser{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		limiter: newRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
		now:     time.Now,
	}, nil
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the analyser uses built-in prompts.
func (a *Analyser) SetPromptStore(store driven.PromptStore) {
	a.promptStore = store
}

// Analyse produces recruiter-style feedback for the CV text.
func (a *Analyser) Analyse(ctx context.Context, text string, info domain.BasicInfo) (*domain.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty cv text", domain.ErrInvalidInput)
	}

	system := a.loadPrompt(driven.PromptCVReviewSystem, defaultSystemPrompt)
	template := a.loadPrompt(driven.PromptCVReview, defaultReviewPrompt)
	prompt := fmt.Sprintf(template, candidateLine(info), truncateRunes(text, maxCVRunes))

	logger.Debug("anthropic: analysing %d chars with %s", len(text), a.model)
	summary, err := a.send(ctx, system, prompt)
	if err != nil {
		return nil, err
	}

	return &domain.Analysis{
		Summary:   strings.TrimSpace(summary),
		Model:     a.model,
		CreatedAt: a.now().UTC(),
	}, nil
}

// ModelName returns the name of the model being used.
func (a *Analyser) ModelName() string {
	return a.model
}

// Close releases resources.
func (a *Analyser) Close() error {
	a.client.CloseIdleConnections()
	return nil
}

func (a *Analyser) send(ctx context.Context, system, prompt string) (string, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("anthropic: rate limit wait: %w", err)
	}

	body, err := json.Marshal(messagesRequest{
		Model:     a.model,
		Messages:  []messagesMessage{{Role: "user", Content: prompt}},
		MaxTokens: DefaultMaxTokens,
		System:    system,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		a.limiter.Backoff(retryAfter(resp.Header.Get("Retry-After")))
		return "", fmt.Errorf("anthropic: rate limited (status 429)")
	}

	var msgResp messagesResponse
	if err := json.Unmarshal(respBody, &msgResp); err != nil {
		return "", fmt.Errorf("anthropic error (status %d): decode response: %w", resp.StatusCode, err)
	}
	if msgResp.Error != nil {
		return "", fmt.Errorf("anthropic error: %s", msgResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result strings.Builder
	for _, block := range msgResp.Content {
		if block.Type == "text" {
			result.WriteString(block.Text)
		}
	}
	if result.Len() == 0 {
		return "", fmt.Errorf("anthropic: no response content returned")
	}
	return result.String(), nil
}

func (a *Analyser) loadPrompt(name, fallback string) string {
	if a.promptStore == nil {
		return fallback
	}
	prompt, err := a.promptStore.Load(name)
	if err != nil || strings.Count(prompt, "%s") != strings.Count(fallback, "%s") {
		return fallback
	}
	return prompt
}

const defaultSystemPrompt = `You are an experienced technical recruiter reviewing a candidate's CV.
Give direct, specific feedback. Do not invent facts that are not in the CV.`

const defaultReviewPrompt = `Review the CV below.

Candidate: %s

Respond with:
1. A two-sentence summary of the candidate's profile.
2. Up to five concrete strengths.
3. Up to five concrete improvements to the CV itself (structure, missing information, clarity).

CV:
%s`

// candidateLine renders the recovered basic info for the prompt.
func candidateLine(info domain.BasicInfo) string {
	if info.IsEmpty() {
		return "unknown"
	}
	var parts []string
	for _, v := range []string{info.Name, info.Email, info.Phone} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
