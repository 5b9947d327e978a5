package noop

import (
	"context"
	"log"

	"licencewatch/internal/port"
)

type noopNotifier struct{}

// NewNoopNotifier creates a no-op Notifier that logs messages to stdout.
func NewNoopNotifier() port.Notifier {
	return &noopNotifier{}
}

func (s *noopNotifier) Send(_ context.Context, subject, body string) error {
	log.Printf("[NOOP EMAIL] %s\n%s", subject, body)
	return nil
}
