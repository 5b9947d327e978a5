package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"licencewatch/internal/domain"
	"licencewatch/internal/port"
)

// MockLicenceStore is a mock implementation of port.LicenceStore.
type MockLicenceStore struct {
	mock.Mock
}

func (m *MockLicenceStore) WithinTx(ctx context.Context, fn func(tx port.LicenceTx) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

func (m *MockLicenceStore) ListRecent(ctx context.Context, limit int) ([]domain.LicenceRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LicenceRecord), args.Error(1)
}

// MockLicenceTx is a mock implementation of port.LicenceTx.
type MockLicenceTx struct {
	mock.Mock
}

func (m *MockLicenceTx) FindByKey(ctx context.Context, key domain.DedupKey) (*domain.LicenceRecord, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LicenceRecord), args.Error(1)
}

func (m *MockLicenceTx) Insert(ctx context.Context, rec *domain.LicenceRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
