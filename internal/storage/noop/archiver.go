package noop

import (
	"context"

	"licencewatch/internal/port"
)

type noopArchiver struct{}

// NewNoopArchiver creates a BulletinArchive that keeps nothing.
func NewNoopArchiver() port.BulletinArchive {
	return &noopArchiver{}
}

func (a *noopArchiver) Archive(_ context.Context, _ string, _ []byte) (string, error) {
	return "", nil
}
