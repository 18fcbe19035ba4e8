package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiClient implements CompletionClient on Google's Gemini models. Gemini has no paused
// turns and no remote tool servers, so requests always complete in one call.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient initializes a Gemini client. apiKey should come from the environment.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Close cleans up the Gemini client resources.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func (c *GeminiClient) Name() string { return "gemini" }

// Complete replays req.Messages as chat history and sends the final turn. The configured
// Gemini model is used regardless of req.Model.
func (c *GeminiClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error) {
	if len(req.Messages) == 0 {
		return nil, errors.New("gemini: no messages")
	}

	model := c.client.GenerativeModel(c.model)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	model.SetTemperature(0.4)

	cs := model.StartChat()
	history, last := splitHistory(req.Messages)
	cs.History = history

	resp, err := cs.SendMessage(ctx, genai.Text(last))
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return &CompletionResult{StopReason: StopRefusal, Model: c.model}, nil
		}
		return nil, fmt.Errorf("%w: gemini generation error: %v", ErrCommunication, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini: no response candidates")
	}

	cand := resp.Candidates[0]
	out := &CompletionResult{
		StopReason: finishToStop(cand.FinishReason),
		Model:      c.model,
	}
	for _, part := range cand.Content.Parts {
		out.Segments = append(out.Segments, partToSegment(part))
	}
	if resp.UsageMetadata != nil {
		out.Usage = Usage{
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		}
	}
	return out, nil
}

// splitHistory turns all but the last user turn into chat history. A conversation that ends
// on an assistant turn is continued with an explicit user nudge.
func splitHistory(msgs []Message) ([]*genai.Content, string) {
	last := msgs[len(msgs)-1]
	prior := msgs[:len(msgs)-1]
	next := last.Content
	if last.Role == RoleAssistant {
		prior = msgs
		next = "Continue."
	}

	history := make([]*genai.Content, 0, len(prior))
	for _, m := range prior {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Content)}})
	}
	return history, next
}

func finishToStop(r genai.FinishReason) StopReason {
	switch r {
	case genai.FinishReasonStop:
		return StopEndTurn
	case genai.FinishReasonMaxTokens:
		return StopMaxTokens
	case genai.FinishReasonSafety, genai.FinishReasonRecitation:
		return StopRefusal
	default:
		return StopOther
	}
}

func partToSegment(p genai.Part) Segment {
	switch v := p.(type) {
	case genai.Text:
		return TextSegment(string(v))
	case genai.FunctionCall:
		return ToolUseSegment(v.Name)
	case *genai.FunctionCall:
		return ToolUseSegment(v.Name)
	case genai.FunctionResponse:
		return ToolResultSegment(v.Name)
	case *genai.FunctionResponse:
		return ToolResultSegment(v.Name)
	default:
		return UnknownSegment(fmt.Sprintf("%T", p))
	}
}
