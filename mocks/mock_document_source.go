package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"licencewatch/internal/domain"
)

// MockDocumentSource is a mock implementation of port.DocumentSource.
type MockDocumentSource struct {
	mock.Mock
}

func (m *MockDocumentSource) LatestBulletinURL(ctx context.Context, variant domain.Variant) (string, error) {
	args := m.Called(ctx, variant)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentSource) Fetch(ctx context.Context, url string) ([]byte, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
