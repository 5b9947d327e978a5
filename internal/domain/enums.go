package domain

import "github.com/shopspring/decimal"

// Variant identifies the two bulletin kinds the regulator publishes.
type Variant string

const (
	// VariantStandard is a marketing-authorisation grants bulletin.
	VariantStandard Variant = "MA"
	// VariantParallelImport is a parallel-import licences bulletin.
	VariantParallelImport Variant = "PI"
)

// Variants lists all processed bulletin kinds.
var Variants = []Variant{VariantStandard, VariantParallelImport}

// Outcome is the per-record result of reconciliation.
type Outcome string

const (
	OutcomeInserted  Outcome = "inserted"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeFailed    Outcome = "failed"
)

// DefectReason classifies a recovered processing problem.
type DefectReason string

const (
	DefectMissingLicenceNumber DefectReason = "missing_licence_number"
	DefectMissingLicensedName  DefectReason = "missing_licensed_name"
	DefectBadGrantDate         DefectReason = "bad_grant_date"
	DefectBadQuantity          DefectReason = "bad_quantity"
	DefectUnmappedField        DefectReason = "unmapped_field"
	DefectInsertFailed         DefectReason = "insert_failed"
	DefectExtractionFailed     DefectReason = "extraction_failed"
)

// SentinelQuantity replaces a quantity that failed numeric coercion, so the
// record is kept rather than silently lost. The value is out-of-band for
// real pack sizes and matches what downstream consumers already expect.
var SentinelQuantity = decimal.RequireFromString("999.999")
