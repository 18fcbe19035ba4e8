// README: Itinerary service drives the completion conversation, salvages the plan and falls back on outages.
package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tourplan/internal/ai"
	"tourplan/internal/metrics"
)

const (
	DefaultModel     = "claude-sonnet-4-20250514"
	DefaultMaxTokens = 10000
)

// Recorder receives one Interaction per completion call.
type Recorder interface {
	Record(ctx context.Context, in Interaction) error
}

// Config holds the request parameters sent on every completion call.
type Config struct {
	Model      string
	MaxTokens  int
	MCPServers []ai.MCPServer
	Retry      RetryPolicy
}

// Service generates itineraries through a CompletionClient.
type Service struct {
	client   ai.CompletionClient
	cfg      Config
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires the orchestrator. recorder and logger may be nil.
func NewService(client ai.CompletionClient, cfg Config, recorder Recorder, logger *slog.Logger) *Service {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, cfg: cfg, recorder: recorder, logger: logger, now: time.Now}
}

// Generate runs the conversation for req. Communication failures yield the fallback plan
// with Success true; unusable model output yields Success false with the raw text kept.
// An error is returned only for an invalid request or when ctx itself is done.
func (s *Service) Generate(ctx context.Context, sessionID string, req TripRequest, bypassTimeout bool) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	messages := []ai.Message{{Role: ai.RoleUser, Content: BuildPrompt(req)}}
	res, attempts, err := s.converse(ctx, sessionID, messages, bypassTimeout)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, ai.ErrCommunication) {
			s.logger.WarnContext(ctx, "using fallback itinerary",
				slog.String("session_id", sessionID),
				slog.Int("attempts", attempts),
				slog.Any("error", err))
			metrics.ItineraryOutcomes.WithLabelValues("fallback").Inc()
			return &Result{
				Success:     true,
				Itinerary:   FallbackDocument(),
				RawText:     FallbackRawText,
				Fallback:    true,
				Attempts:    attempts,
				GeneratedAt: s.now(),
			}, nil
		}
		metrics.ItineraryOutcomes.WithLabelValues("error").Inc()
		return &Result{Error: err.Error(), Attempts: attempts, GeneratedAt: s.now()}, nil
	}

	rawText := res.Text()
	doc, err := extractDocument(res)
	if err != nil {
		s.logger.WarnContext(ctx, "itinerary extraction failed",
			slog.String("session_id", sessionID),
			slog.String("stop_reason", string(res.StopReason)),
			slog.Int("raw_text_len", len(rawText)),
			slog.Any("error", err))
		metrics.ItineraryOutcomes.WithLabelValues("malformed").Inc()
		return &Result{RawText: rawText, Error: err.Error(), Attempts: attempts, GeneratedAt: s.now()}, nil
	}

	metrics.ItineraryOutcomes.WithLabelValues("generated").Inc()
	return &Result{
		Success:     true,
		Itinerary:   doc,
		RawText:     rawText,
		Attempts:    attempts,
		GeneratedAt: s.now(),
	}, nil
}

// converse sends messages until the endpoint stops pausing or the attempt budget runs out.
// Budget exhaustion is not an error: the last paused result is returned.
func (s *Service) converse(ctx context.Context, sessionID string, messages []ai.Message, bypass bool) (*ai.CompletionResult, int, error) {
	policy := s.cfg.Retry
	maxAttempts := policy.attempts()

	var last *ai.CompletionResult
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		res, err := s.send(ctx, sessionID, attempt, messages, bypass)
		if err != nil {
			return nil, attempt, err
		}
		last = res
		if !res.StopReason.Paused() {
			return res, attempt, nil
		}

		messages = append(messages, ai.Message{Role: ai.RoleAssistant, Content: ai.FormatContinuation(res.Segments)})
		if attempt == maxAttempts {
			break
		}

		s.logger.InfoContext(ctx, "completion paused, waiting before continuation",
			slog.String("session_id", sessionID),
			slog.Int("attempt", attempt),
			slog.Duration("delay", policy.PauseDelay))
		metrics.PacingWaits.Inc()
		if err := policy.wait(ctx); err != nil {
			return nil, attempt, err
		}
	}

	s.logger.WarnContext(ctx, "completion still paused after attempt budget, using last result",
		slog.String("session_id", sessionID),
		slog.Int("attempts", maxAttempts))
	return last, maxAttempts, nil
}

func (s *Service) send(ctx context.Context, sessionID string, attempt int, messages []ai.Message, bypass bool) (*ai.CompletionResult, error) {
	callCtx, cancel := s.cfg.Retry.callContext(ctx, bypass)
	defer cancel()

	req := ai.CompletionRequest{
		Model:      s.cfg.Model,
		MaxTokens:  s.cfg.MaxTokens,
		Messages:   append([]ai.Message(nil), messages...),
		MCPServers: s.cfg.MCPServers,
	}

	start := s.now()
	res, err := s.client.Complete(callCtx, req)
	latency := s.now().Sub(start)

	in := Interaction{
		SessionID: sessionID,
		Attempt:   attempt,
		Provider:  s.client.Name(),
		Model:     s.cfg.Model,
		LatencyMs: latency.Milliseconds(),
		CreatedAt: start,
	}
	stop := "error"
	if err != nil {
		in.Error = err.Error()
		s.logger.WarnContext(ctx, "completion call failed",
			slog.String("session_id", sessionID),
			slog.Int("attempt", attempt),
			slog.Duration("latency", latency),
			slog.Any("error", err))
	} else {
		stop = string(res.StopReason)
		in.StopReason = stop
		in.InputTokens = res.Usage.InputTokens
		in.OutputTokens = res.Usage.OutputTokens
		if res.Model != "" {
			in.Model = res.Model
		}
		s.logger.InfoContext(ctx, "completion call",
			slog.String("session_id", sessionID),
			slog.Int("attempt", attempt),
			slog.String("stop_reason", stop),
			slog.Duration("latency", latency))
	}
	metrics.CompletionCalls.WithLabelValues(s.client.Name(), stop).Inc()
	metrics.CompletionLatency.WithLabelValues(s.client.Name()).Observe(latency.Seconds())
	s.record(ctx, in)

	return res, err
}

func (s *Service) record(ctx context.Context, in Interaction) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(ctx, in); err != nil {
		s.logger.WarnContext(ctx, "failed to record completion interaction",
			slog.String("session_id", in.SessionID),
			slog.Any("error", err))
	}
}

func extractDocument(res *ai.CompletionResult) (*ItineraryDocument, error) {
	var parsed map[string]any
	raw, err := ai.ExtractJSON(res.Segments, &parsed)
	if err != nil {
		return nil, err
	}
	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrMalformedDocument, err)
	}
	return doc, nil
}
