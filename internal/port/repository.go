package port

import (
	"context"

	"licencewatch/internal/domain"
)

// LicenceTx exposes the store operations available inside one transaction.
type LicenceTx interface {
	// FindByKey returns the record matching the exact dedup key, or
	// domain.ErrLicenceNotFound.
	FindByKey(ctx context.Context, key domain.DedupKey) (*domain.LicenceRecord, error)
	// Insert writes a new record. Returns domain.ErrDuplicateLicence when the
	// dedup-key uniqueness constraint is violated.
	Insert(ctx context.Context, rec *domain.LicenceRecord) error
}

// LicenceStore defines the contract for licence persistence. Each WithinTx
// call owns one transaction: fn's error rolls back, nil commits. A failure
// to acquire the transaction surfaces as domain.ErrStoreUnavailable.
type LicenceStore interface {
	WithinTx(ctx context.Context, fn func(tx LicenceTx) error) error
	// ListRecent returns up to limit records, newest first. Read-only, used
	// by operator exports.
	ListRecent(ctx context.Context, limit int) ([]domain.LicenceRecord, error)
}
