package itinerary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var interactionColumns = []string{
	"session_id", "attempt", "provider", "model", "stop_reason",
	"latency_ms", "input_tokens", "output_tokens", "error", "created_at",
}

func TestInteractionStore_Record(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	at := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	in := Interaction{
		SessionID: "s1", Attempt: 2, Provider: "anthropic", Model: DefaultModel,
		StopReason: "end_turn", LatencyMs: 1800, InputTokens: 900, OutputTokens: 1200, CreatedAt: at,
	}
	mock.ExpectExec("INSERT INTO llm_interactions").
		WithArgs("s1", 2, "anthropic", DefaultModel, "end_turn", int64(1800), 900, 1200, "", at).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, NewInteractionStore(mock).Record(context.Background(), in))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInteractionStore_RecordError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO llm_interactions").WillReturnError(errors.New("conn closed"))

	err = NewInteractionStore(mock).Record(context.Background(), Interaction{SessionID: "s1"})
	assert.ErrorContains(t, err, "insert interaction")
}

func TestInteractionStore_ListBySession(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	at := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows(interactionColumns).
		AddRow("s1", 1, "anthropic", DefaultModel, "pause_turn", int64(900), 800, 300, "", at).
		AddRow("s1", 2, "anthropic", DefaultModel, "", int64(5000), 0, 0, "context deadline exceeded", at.Add(time.Minute))
	mock.ExpectQuery("SELECT session_id").WithArgs("s1").WillReturnRows(rows)

	got, err := NewInteractionStore(mock).ListBySession(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "pause_turn", got[0].StopReason)
	assert.Equal(t, "context deadline exceeded", got[1].Error)
	assert.Equal(t, at.Add(time.Minute), got[1].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
