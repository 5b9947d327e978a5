package domain

import "errors"

var (
	// ErrNoTables means the document ran through extraction but contained no
	// machine-readable text tables. Reported, not fatal to the run.
	ErrNoTables = errors.New("document contains no machine-readable tables")

	// ErrLicenceNotFound is returned by the store when no record matches a dedup key.
	ErrLicenceNotFound = errors.New("licence record not found")

	// ErrDuplicateLicence is returned by the store when an insert hits the
	// dedup-key uniqueness constraint.
	ErrDuplicateLicence = errors.New("licence record already exists")

	// ErrStoreUnavailable means a store connection or transaction could not be
	// acquired. It aborts the remaining reconciliation pass for the document.
	ErrStoreUnavailable = errors.New("licence store unavailable")

	// ErrNoBulletinFound means the listing page had no link to a bulletin of
	// the requested variant.
	ErrNoBulletinFound = errors.New("no bulletin link found on listing page")
)
