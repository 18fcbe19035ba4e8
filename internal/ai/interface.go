// README: Completion client contract shared by the Anthropic and Gemini backends.
package ai

import (
	"context"
	"errors"
)

// ErrCommunication marks failures reaching the completion endpoint: timeouts,
// transport errors and non-success HTTP statuses. Callers classify with errors.Is.
var ErrCommunication = errors.New("completion endpoint communication failure")

// CompletionClient sends one request to a completion endpoint and returns the
// normalized result. Implementations must honour ctx for cancellation and deadlines.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error)

	// Name identifies the backend in logs and the interaction log.
	Name() string
}
