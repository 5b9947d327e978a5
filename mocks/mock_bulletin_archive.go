package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockBulletinArchive is a mock implementation of port.BulletinArchive.
type MockBulletinArchive struct {
	mock.Mock
}

func (m *MockBulletinArchive) Archive(ctx context.Context, name string, content []byte) (string, error) {
	args := m.Called(ctx, name, content)
	return args.String(0), args.Error(1)
}
