// Package export renders licence records for operators, as CSV or as an
// XLSX workbook.
package export

import (
	"encoding/csv"
	"io"
	"time"

	"licencewatch/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the export header row, in the canonical field order.
var columns = []string{
	"Licence Number",
	"Grant Date",
	"Holder Name",
	"Licensed Name",
	"Active Ingredient",
	"Quantity",
	"Units",
	"Legal Status",
	"Work Type",
	"Auth Status",
	"Territory",
	"Variant",
	"Source Document",
	"Created At",
}

// Writer wraps csv.Writer for exporting licence records as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords converts a batch of licence records to CSV rows and writes them.
func (w *Writer) WriteRecords(recs []domain.LicenceRecord) error {
	for i := range recs {
		if err := w.csv.Write(recordToRow(&recs[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func recordToRow(rec *domain.LicenceRecord) []string {
	row := make([]string, len(columns))
	row[0] = rec.LicenceNumber
	if rec.GrantDate != nil {
		row[1] = rec.GrantDate.Format("2006-01-02")
	}
	row[2] = rec.HolderName
	row[3] = rec.LicensedName
	row[4] = rec.ActiveIngredient
	row[5] = rec.Quantity.String()
	row[6] = rec.Units
	row[7] = rec.LegalStatus
	if rec.WorkType != nil {
		row[8] = *rec.WorkType
	}
	if rec.AuthStatus != nil {
		row[9] = *rec.AuthStatus
	}
	row[10] = rec.Territory
	row[11] = string(rec.Variant)
	row[12] = rec.SourceDocument
	row[13] = rec.CreatedAt.Format(time.RFC3339)
	return row
}
