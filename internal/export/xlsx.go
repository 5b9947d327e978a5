package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"licencewatch/internal/domain"
)

const licencesSheet = "Licences"

// WriteWorkbook renders licence records as a single-sheet XLSX workbook.
func WriteWorkbook(w io.Writer, recs []domain.LicenceRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", licencesSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(licencesSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}

	for i := range recs {
		rec := &recs[i]
		row := []interface{}{
			rec.LicenceNumber,
			"",
			rec.HolderName,
			rec.LicensedName,
			rec.ActiveIngredient,
			rec.Quantity.String(),
			rec.Units,
			rec.LegalStatus,
			"",
			"",
			rec.Territory,
			string(rec.Variant),
			rec.SourceDocument,
			rec.CreatedAt.Format(time.RFC3339),
		}
		if rec.GrantDate != nil {
			row[1] = rec.GrantDate.Format("2006-01-02")
		}
		if rec.WorkType != nil {
			row[8] = *rec.WorkType
		}
		if rec.AuthStatus != nil {
			row[9] = *rec.AuthStatus
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("computing cell for row %d: %w", i, err)
		}
		if err := f.SetSheetRow(licencesSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
