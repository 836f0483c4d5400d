package services

import (
	"context"

	"github.com/copymastery/copyengine/internal/domain/models"
)

// CompletionProvider is the interface the pipeline uses to reach the upstream
// chat-completion service. It is defined in the domain layer and implemented
// in the infrastructure layer, which keeps the pipeline easy to mock.
type CompletionProvider interface {
	// Complete sends one buffered completion request and returns the first
	// choice's text. Implementations must never return partial output: it is
	// full text or an error.
	Complete(ctx context.Context, model string, messages []models.Message) (string, error)

	// StreamCompletion sends the same request in streaming mode and invokes
	// sink once per non-empty text fragment, in arrival order. The stream is
	// finite and cannot be restarted. A failure anywhere voids the whole
	// stream; fragments already delivered are the caller's problem.
	StreamCompletion(ctx context.Context, model string, messages []models.Message, sink func(fragment string)) error
}
