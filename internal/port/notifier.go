package port

import "context"

// Notifier delivers free-text operator messages: defect summaries and
// operational failures. Delivery is best-effort; callers log send errors
// and never let them propagate into the pipeline.
type Notifier interface {
	Send(ctx context.Context, subject, body string) error
}
