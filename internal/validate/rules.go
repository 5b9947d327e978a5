// Package validate type-checks normalized rows into licence records.
//
// The per-field policy (drop the row, substitute a sentinel, or flag and
// continue) is declared as data; the validator is an interpreter over the
// rule table, not a chain of conditionals.
package validate

import "licencewatch/internal/domain"

// Action is what happens to a row when a field fails coercion or is missing.
type Action int

const (
	// ActionDropRow discards the row: the field is required for the dedup
	// key, so the record cannot participate in reconciliation.
	ActionDropRow Action = iota
	// ActionSubstitute keeps the record with a fixed sentinel in place of
	// the unparseable value, and records a defect.
	ActionSubstitute
	// ActionFlag keeps the record with the field left unset, and records a
	// defect for the caller to decide policy.
	ActionFlag
)

// Kind selects the coercion applied to a field's cell text.
type Kind int

const (
	KindText Kind = iota
	KindDate
	KindDecimal
)

// FieldRule declares the coercion and failure policy for one canonical field.
type FieldRule struct {
	Field     string
	Kind      Kind
	OnFailure Action
	Reason    domain.DefectReason
}

// Rules is the validation policy for licence rows. Fields not listed here
// are carried through as text with no type constraint.
var Rules = []FieldRule{
	{Field: domain.FieldLicenceNumber, Kind: KindText, OnFailure: ActionDropRow, Reason: domain.DefectMissingLicenceNumber},
	{Field: domain.FieldLicensedName, Kind: KindText, OnFailure: ActionDropRow, Reason: domain.DefectMissingLicensedName},
	{Field: domain.FieldGrantDate, Kind: KindDate, OnFailure: ActionFlag, Reason: domain.DefectBadGrantDate},
	{Field: domain.FieldQuantity, Kind: KindDecimal, OnFailure: ActionSubstitute, Reason: domain.DefectBadQuantity},
}
