package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	DefaultAnthropicEndpoint = "https://api.anthropic.com/v1/messages"
	DefaultAnthropicVersion  = "2023-06-01"
	DefaultAnthropicBeta     = "mcp-client-2025-04-04"

	// maxErrorBody bounds how much of a failed response body ends up in error messages.
	maxErrorBody = 512
)

// AnthropicConfig configures an AnthropicClient. Empty fields take the defaults above.
type AnthropicConfig struct {
	Endpoint string
	APIKey   string
	Version  string
	Beta     string
	// HTTPClient carries no overall timeout by default; per-call bounds come from ctx.
	HTTPClient *http.Client
}

// AnthropicClient talks to a Messages-style completion endpoint, either the vendor
// directly or a relay that injects credentials.
type AnthropicClient struct {
	endpoint string
	apiKey   string
	version  string
	beta     string
	http     *http.Client
}

func NewAnthropicClient(cfg AnthropicConfig) *AnthropicClient {
	c := &AnthropicClient{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		version:  cfg.Version,
		beta:     cfg.Beta,
		http:     cfg.HTTPClient,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultAnthropicEndpoint
	}
	if c.version == "" {
		c.version = DefaultAnthropicVersion
	}
	if c.beta == "" {
		c.beta = DefaultAnthropicBeta
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	return c
}

func (c *AnthropicClient) Name() string { return "anthropic" }

type anthropicContent struct {
	Type      string `json:"type"`
	Text      string `json:"text,omitempty"`
	Name      string `json:"name,omitempty"`
	ID        string `json:"id,omitempty"`
	ToolUseID string `json:"tool_use_id,omitempty"`
}

type anthropicResponse struct {
	Model      string             `json:"model"`
	StopReason string             `json:"stop_reason"`
	Content    []anthropicContent `json:"content"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete posts req and normalizes the response. Transport failures, deadline expiry and
// non-2xx statuses are wrapped with ErrCommunication.
func (c *AnthropicClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("anthropic: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("anthropic: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("anthropic-version", c.version)
	httpReq.Header.Set("anthropic-beta", c.beta)
	if c.apiKey != "" {
		httpReq.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: anthropic: do request: %v", ErrCommunication, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: anthropic: read response: %v", ErrCommunication, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: anthropic: API Error %d: %s", ErrCommunication, resp.StatusCode, truncate(body, maxErrorBody))
	}

	var ar anthropicResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		return nil, fmt.Errorf("anthropic: unmarshal response: %w", err)
	}
	if ar.Error != nil {
		return nil, fmt.Errorf("anthropic: api error: %s: %s", ar.Error.Type, ar.Error.Message)
	}

	out := &CompletionResult{
		StopReason: ParseStopReason(ar.StopReason),
		Model:      ar.Model,
		Segments:   make([]Segment, 0, len(ar.Content)),
		Usage:      Usage{InputTokens: ar.Usage.InputTokens, OutputTokens: ar.Usage.OutputTokens},
	}
	for _, block := range ar.Content {
		out.Segments = append(out.Segments, toSegment(block))
	}
	return out, nil
}

func toSegment(block anthropicContent) Segment {
	switch block.Type {
	case "text":
		return TextSegment(block.Text)
	case "mcp_tool_use", "tool_use", "server_tool_use":
		return ToolUseSegment(block.Name)
	case "mcp_tool_result", "tool_result":
		return ToolResultSegment(block.ToolUseID)
	default:
		return UnknownSegment(block.Type)
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
