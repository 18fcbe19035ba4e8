package itinerary

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Interaction is one completion call made while generating a session's itinerary.
type Interaction struct {
	SessionID    string    `json:"sessionId"`
	Attempt      int       `json:"attempt"`
	Provider     string    `json:"provider"`
	Model        string    `json:"model"`
	StopReason   string    `json:"stopReason,omitempty"`
	LatencyMs    int64     `json:"latencyMs"`
	InputTokens  int       `json:"inputTokens"`
	OutputTokens int       `json:"outputTokens"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DBTX is the subset of pgxpool.Pool the store needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// InteractionStore persists completion calls in llm_interactions.
type InteractionStore struct {
	db DBTX
}

// NewInteractionStore returns a store backed by the given pool.
func NewInteractionStore(db DBTX) *InteractionStore {
	return &InteractionStore{db: db}
}

func (s *InteractionStore) Record(ctx context.Context, in Interaction) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO llm_interactions
			(session_id, attempt, provider, model, stop_reason, latency_ms, input_tokens, output_tokens, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, in.SessionID, in.Attempt, in.Provider, in.Model, in.StopReason, in.LatencyMs,
		in.InputTokens, in.OutputTokens, in.Error, in.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

// ListBySession returns a session's calls oldest first.
func (s *InteractionStore) ListBySession(ctx context.Context, sessionID string) ([]Interaction, error) {
	rows, err := s.db.Query(ctx, `
		SELECT session_id, attempt, provider, model, stop_reason, latency_ms, input_tokens, output_tokens, error, created_at
		FROM llm_interactions
		WHERE session_id = $1
		ORDER BY created_at, attempt
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	var out []Interaction
	for rows.Next() {
		var in Interaction
		if err := rows.Scan(&in.SessionID, &in.Attempt, &in.Provider, &in.Model, &in.StopReason,
			&in.LatencyMs, &in.InputTokens, &in.OutputTokens, &in.Error, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}
