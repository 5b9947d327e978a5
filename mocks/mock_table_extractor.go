package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"licencewatch/internal/domain"
)

// MockTableExtractor is a mock implementation of port.TableExtractor.
type MockTableExtractor struct {
	mock.Mock
}

func (m *MockTableExtractor) Extract(ctx context.Context, doc *domain.SourceDocument) ([]domain.RawTable, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawTable), args.Error(1)
}
