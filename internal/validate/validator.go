package validate

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"licencewatch/internal/domain"
)

// GrantDateLayout is the fixed day-first date format bulletins use.
const GrantDateLayout = "02/01/2006"

// Result is the outcome of validating one normalized row: at most one
// record, possibly several defects, or a drop.
type Result struct {
	Record     *domain.LicenceRecord
	Dropped    bool
	DropReason domain.DefectReason
	Defects    []domain.Defect
}

// ValidateRow interprets the rule table against one row. Validation is
// best-effort and non-aborting: a malformed field never stops the rest of
// the batch, and only the two dedup-critical required fields drop the row.
func ValidateRow(row domain.NormalizedRow) Result {
	res := Result{}

	rec := &domain.LicenceRecord{
		LicenceNumber:    row.Fields[domain.FieldLicenceNumber],
		HolderName:       row.Fields[domain.FieldHolderName],
		LicensedName:     row.Fields[domain.FieldLicensedName],
		ActiveIngredient: row.Fields[domain.FieldActiveIngredient],
		Units:            row.Fields[domain.FieldUnits],
		LegalStatus:      row.Fields[domain.FieldLegalStatus],
		Territory:        row.Fields[domain.FieldTerritory],
		Variant:          row.Variant,
		SourceDocument:   row.SourceDocument,
	}
	if v, ok := row.Fields[domain.FieldWorkType]; ok && v != "" {
		rec.WorkType = &v
	}
	if v, ok := row.Fields[domain.FieldAuthStatus]; ok && v != "" {
		rec.AuthStatus = &v
	}

	for _, rule := range Rules {
		raw := strings.TrimSpace(row.Fields[rule.Field])

		switch rule.Kind {
		case KindText:
			if raw != "" {
				continue
			}
		case KindDate:
			if t, err := time.Parse(GrantDateLayout, raw); err == nil {
				utc := t.UTC()
				rec.GrantDate = &utc
				continue
			}
		case KindDecimal:
			if d, err := decimal.NewFromString(raw); err == nil {
				rec.Quantity = d
				continue
			}
		}

		switch rule.OnFailure {
		case ActionDropRow:
			if !res.Dropped {
				res.Dropped = true
				res.DropReason = rule.Reason
			}
		case ActionSubstitute:
			rec.Quantity = domain.SentinelQuantity
			res.Defects = append(res.Defects, domain.NewDefect(
				row.SourceDocument, row.Page, row.RowIndex,
				rule.Field, raw, rule.Reason, "substituted sentinel"))
		case ActionFlag:
			res.Defects = append(res.Defects, domain.NewDefect(
				row.SourceDocument, row.Page, row.RowIndex,
				rule.Field, raw, rule.Reason, "field left unset"))
		}
	}

	if res.Dropped {
		return res
	}
	res.Record = rec
	return res
}
