package normalize

import (
	"strings"

	"licencewatch/internal/domain"
)

// ColumnMap is an ordered mapping from canonical field name to source
// column index, plus the variant literals for fields the table omits.
// Built once per table, applied to every row.
type ColumnMap struct {
	spec     VariantSpec
	index    map[string]int
	literals map[string]string
}

// placeholderHeader reports whether a header cell is a rendering artifact:
// blank, or the "Unnamed" filler poorly-ruled tables produce.
func placeholderHeader(h string) bool {
	h = strings.TrimSpace(h)
	if h == "" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(h), "unnamed")
}

// BuildColumnMap resolves a table's columns against a variant spec.
//
// Columns with placeholder headers are stripped first. Each canonical field
// then claims the first unclaimed column whose header matches its documented
// name case-insensitively; fields are walked in declaration order, so a
// header matching several fields goes to the first one declared. Fields
// still unmapped fall back positionally: the Nth remaining column is
// assigned to the Nth remaining field in declared order. Fields that cannot
// be resolved at all come back as defects, one per field; the table is
// still usable for the fields that did resolve.
func BuildColumnMap(table domain.RawTable, spec VariantSpec, sourceDoc string) (*ColumnMap, []domain.Defect) {
	var kept []int
	for i, h := range table.Header {
		if !placeholderHeader(h) {
			kept = append(kept, i)
		}
	}

	index := make(map[string]int, len(spec.Columns))
	claimed := make(map[int]bool, len(kept))

	for _, f := range spec.Columns {
		for _, col := range kept {
			if claimed[col] {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(table.Header[col]), f.Header) {
				index[f.Name] = col
				claimed[col] = true
				break
			}
		}
	}

	var remaining []int
	for _, col := range kept {
		if !claimed[col] {
			remaining = append(remaining, col)
		}
	}

	var defects []domain.Defect
	pos := 0
	for _, f := range spec.Columns {
		if _, ok := index[f.Name]; ok {
			continue
		}
		if pos < len(remaining) {
			index[f.Name] = remaining[pos]
			pos++
			continue
		}
		defects = append(defects, domain.NewDefect(
			sourceDoc, table.Page, -1, f.Name, "",
			domain.DefectUnmappedField,
			"no column resolved by header or position"))
	}

	return &ColumnMap{spec: spec, index: index, literals: spec.Literals}, defects
}

// Project applies the map to one raw row. Variant literals are filled in;
// null-default fields stay absent. Cell values pass through untyped; type
// interpretation belongs to the validator.
func (m *ColumnMap) Project(row []string) map[string]string {
	fields := make(map[string]string, len(m.index)+len(m.literals))
	for name, col := range m.index {
		if col < len(row) {
			fields[name] = strings.TrimSpace(row[col])
		} else {
			fields[name] = ""
		}
	}
	for name, lit := range m.literals {
		fields[name] = lit
	}
	return fields
}

// Normalize projects every row of a raw table into NormalizedRows carrying
// provenance. Fully empty rows are skipped.
func Normalize(table domain.RawTable, variant domain.Variant, sourceDoc string) ([]domain.NormalizedRow, []domain.Defect) {
	spec := SpecFor(variant)
	cm, defects := BuildColumnMap(table, spec, sourceDoc)

	var rows []domain.NormalizedRow
	for i, raw := range table.Rows {
		fields := cm.Project(raw)
		empty := true
		for name := range cm.index {
			if fields[name] != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}
		rows = append(rows, domain.NormalizedRow{
			SourceDocument: sourceDoc,
			Variant:        variant,
			Page:           table.Page,
			RowIndex:       i,
			Fields:         fields,
		})
	}
	return rows, defects
}
