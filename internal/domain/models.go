package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SourceDocument is one downloaded bulletin: the bytes plus the identity
// used for provenance in records and defects.
type SourceDocument struct {
	Name    string
	URL     string
	Variant Variant
	Content []byte
}

// RawTable is one tabular block lifted from a single bulletin page. The
// header row is whatever the extractor found first; it may be a genuine
// header or the first data row of a headerless table.
type RawTable struct {
	Page   int
	Header []string
	Rows   [][]string
}

// NormalizedRow maps canonical field names to untyped cell text. Fields
// that resolved to "null" for this variant (work_type, auth_status) are
// simply absent from Fields.
type NormalizedRow struct {
	SourceDocument string
	Variant        Variant
	Page           int
	RowIndex       int
	Fields         map[string]string
}

// LicenceRecord is the canonical licence entity persisted to the store.
type LicenceRecord struct {
	ID               uuid.UUID       `db:"id"`
	LicenceNumber    string          `db:"licence_number"`
	GrantDate        *time.Time      `db:"grant_date"`
	HolderName       string          `db:"holder_name"`
	LicensedName     string          `db:"licensed_name"`
	ActiveIngredient string          `db:"active_ingredient"`
	Quantity         decimal.Decimal `db:"quantity"`
	Units            string          `db:"units"`
	LegalStatus      string          `db:"legal_status"`
	WorkType         *string         `db:"work_type"`
	AuthStatus       *string         `db:"auth_status"`
	Territory        string          `db:"territory"`
	Variant          Variant         `db:"variant"`
	SourceDocument   string          `db:"source_document"`
	CreatedAt        time.Time       `db:"created_at"`
}

// Key returns the dedup key for this record. The store holds at most one
// record per distinct key value.
func (r *LicenceRecord) Key() DedupKey {
	return DedupKey{
		LicenceNumber:    r.LicenceNumber,
		LicensedName:     r.LicensedName,
		ActiveIngredient: r.ActiveIngredient,
		Quantity:         r.Quantity,
		GrantDate:        r.GrantDate,
	}
}

// DedupKey identifies a licence record for duplicate detection.
type DedupKey struct {
	LicenceNumber    string
	LicensedName     string
	ActiveIngredient string
	Quantity         decimal.Decimal
	GrantDate        *time.Time
}

// String renders the key in a stable form, for logs and in-memory indexes.
func (k DedupKey) String() string {
	date := "-"
	if k.GrantDate != nil {
		date = k.GrantDate.Format("2006-01-02")
	}
	return fmt.Sprintf("%s|%s|%s|%s|%s",
		k.LicenceNumber, k.LicensedName, k.ActiveIngredient, k.Quantity.String(), date)
}

// Defect records a recovered processing problem for operator follow-up.
// Defects go to the batch report only, never to the licence store.
type Defect struct {
	ID             uuid.UUID
	SourceDocument string
	Page           int
	RowIndex       int
	Field          string
	RawValue       string
	Reason         DefectReason
	Detail         string
}

// NewDefect builds a Defect with a fresh ID.
func NewDefect(sourceDoc string, page, rowIndex int, field, rawValue string, reason DefectReason, detail string) Defect {
	return Defect{
		ID:             uuid.New(),
		SourceDocument: sourceDoc,
		Page:           page,
		RowIndex:       rowIndex,
		Field:          field,
		RawValue:       rawValue,
		Reason:         reason,
		Detail:         detail,
	}
}

// BatchReport aggregates per-document outcomes for one harvest run. It is
// diagnostic only and never persisted beyond the run.
type BatchReport struct {
	RunID          uuid.UUID
	SourceDocument string
	Variant        Variant
	StartedAt      time.Time
	FinishedAt     time.Time
	Inserted       int
	Duplicates     int
	Failed         int
	Dropped        int
	Defects        []Defect
}

// NewBatchReport starts a report for one document run.
func NewBatchReport(sourceDoc string, variant Variant) *BatchReport {
	return &BatchReport{
		RunID:          uuid.New(),
		SourceDocument: sourceDoc,
		Variant:        variant,
		StartedAt:      time.Now().UTC(),
	}
}

// Record tallies one reconciliation outcome.
func (r *BatchReport) Record(o Outcome) {
	switch o {
	case OutcomeInserted:
		r.Inserted++
	case OutcomeDuplicate:
		r.Duplicates++
	case OutcomeFailed:
		r.Failed++
	}
}

// Drop tallies a row dropped before reconciliation.
func (r *BatchReport) Drop() {
	r.Dropped++
}

// AddDefect appends a defect to the report.
func (r *BatchReport) AddDefect(d Defect) {
	r.Defects = append(r.Defects, d)
}

// Total returns the number of rows that reached an outcome, dropped rows included.
func (r *BatchReport) Total() int {
	return r.Inserted + r.Duplicates + r.Failed + r.Dropped
}

// Summary renders the report as the free-text message handed to the notifier.
func (r *BatchReport) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Licence harvest %s (%s, run %s)\n", r.SourceDocument, r.Variant, r.RunID)
	fmt.Fprintf(&b, "inserted=%d duplicates=%d failed=%d dropped=%d\n",
		r.Inserted, r.Duplicates, r.Failed, r.Dropped)
	if len(r.Defects) == 0 {
		b.WriteString("no defects\n")
		return b.String()
	}
	fmt.Fprintf(&b, "%d defect(s):\n", len(r.Defects))
	for _, d := range r.Defects {
		fmt.Fprintf(&b, "  page %d row %d field %q value %q: %s",
			d.Page, d.RowIndex, d.Field, d.RawValue, d.Reason)
		if d.Detail != "" {
			fmt.Fprintf(&b, " (%s)", d.Detail)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
