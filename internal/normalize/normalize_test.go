package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"licencewatch/internal/domain"
)

var standardHeader = []string{
	"PL Number", "Grant Date", "MA Holder", "Licensed Name(s)",
	"Active Ingredient", "Quantity", "Units", "Legal Status", "Territory",
}

func TestBuildColumnMap_ExactHeaders(t *testing.T) {
	table := domain.RawTable{Page: 1, Header: standardHeader}

	cm, defects := BuildColumnMap(table, SpecFor(domain.VariantStandard), "bulletin.pdf")
	assert.Empty(t, defects)

	row := []string{"PL 12345/0001", "01/02/2024", "Acme Ltd", "Paracetamol 500mg",
		"Paracetamol", "28", "tablets", "P", "UK"}
	fields := cm.Project(row)
	assert.Equal(t, "PL 12345/0001", fields[domain.FieldLicenceNumber])
	assert.Equal(t, "01/02/2024", fields[domain.FieldGrantDate])
	assert.Equal(t, "Acme Ltd", fields[domain.FieldHolderName])
	assert.Equal(t, "Paracetamol 500mg", fields[domain.FieldLicensedName])
	assert.Equal(t, "UK", fields[domain.FieldTerritory])
}

func TestBuildColumnMap_CaseInsensitiveMatch(t *testing.T) {
	table := domain.RawTable{Page: 1, Header: []string{
		"pl number", "GRANT DATE", "Ma Holder", "licensed name(s)",
		"active ingredient", "quantity", "units", "legal status", "territory",
	}}

	cm, defects := BuildColumnMap(table, SpecFor(domain.VariantStandard), "bulletin.pdf")
	assert.Empty(t, defects)

	fields := cm.Project([]string{"PL 1", "d", "h", "n", "a", "q", "u", "l", "t"})
	assert.Equal(t, "PL 1", fields[domain.FieldLicenceNumber])
	assert.Equal(t, "t", fields[domain.FieldTerritory])
}

func TestBuildColumnMap_StripsPlaceholderColumns(t *testing.T) {
	// Poorly ruled tables sprout "Unnamed: N" filler columns.
	header := append([]string{"Unnamed: 0"}, standardHeader...)
	table := domain.RawTable{Page: 1, Header: header}

	cm, defects := BuildColumnMap(table, SpecFor(domain.VariantStandard), "bulletin.pdf")
	assert.Empty(t, defects)

	row := append([]string{"junk"}, "PL 12345/0001", "01/02/2024", "Acme", "Name",
		"Ingredient", "28", "tablets", "P", "UK")
	fields := cm.Project(row)
	assert.Equal(t, "PL 12345/0001", fields[domain.FieldLicenceNumber])
	assert.NotContains(t, fields, "junk")
}

func TestBuildColumnMap_PositionalFallbackForHeaderless(t *testing.T) {
	// A headerless bulletin: the extractor promoted the first data row to
	// header, so nothing matches and every field resolves by position.
	table := domain.RawTable{Page: 1, Header: []string{
		"PL 11111/0001", "05/01/2024", "First Holder", "First Name",
		"First Ingredient", "10", "ml", "POM", "UK",
	}}

	cm, defects := BuildColumnMap(table, SpecFor(domain.VariantStandard), "bulletin.pdf")
	assert.Empty(t, defects)

	row := []string{"PL 22222/0002", "06/01/2024", "Second Holder", "Second Name",
		"Second Ingredient", "20", "ml", "P", "UK"}
	fields := cm.Project(row)
	assert.Equal(t, "PL 22222/0002", fields[domain.FieldLicenceNumber])
	assert.Equal(t, "06/01/2024", fields[domain.FieldGrantDate])
	assert.Equal(t, "Second Holder", fields[domain.FieldHolderName])
	assert.Equal(t, "UK", fields[domain.FieldTerritory])
}

func TestBuildColumnMap_MixedMatchAndFallback(t *testing.T) {
	// Some headers survived OCR, some got mangled. Matched fields claim
	// their columns; the rest zip positionally over what remains.
	table := domain.RawTable{Page: 1, Header: []string{
		"PL Number", "garbled", "MA Holder", "garbled2",
		"Active Ingredient", "Quantity", "Units", "Legal Status", "Territory",
	}}

	cm, defects := BuildColumnMap(table, SpecFor(domain.VariantStandard), "bulletin.pdf")
	assert.Empty(t, defects)

	row := []string{"PL 1", "02/03/2024", "Holder", "Brand Name",
		"Ingredient", "5", "ml", "P", "UK"}
	fields := cm.Project(row)
	// grant_date and licensed_name are the unmatched fields, in declared
	// order; columns 1 and 3 are the unclaimed ones, in order.
	assert.Equal(t, "02/03/2024", fields[domain.FieldGrantDate])
	assert.Equal(t, "Brand Name", fields[domain.FieldLicensedName])
}

func TestBuildColumnMap_TooFewColumns(t *testing.T) {
	table := domain.RawTable{Page: 2, Header: []string{"PL Number", "Grant Date"}}

	_, defects := BuildColumnMap(table, SpecFor(domain.VariantStandard), "bulletin.pdf")
	require.Len(t, defects, 7)
	for _, d := range defects {
		assert.Equal(t, domain.DefectUnmappedField, d.Reason)
		assert.Equal(t, "bulletin.pdf", d.SourceDocument)
		assert.Equal(t, 2, d.Page)
	}
}

func TestProject_RowShorterThanTable(t *testing.T) {
	table := domain.RawTable{Page: 1, Header: standardHeader}
	cm, _ := BuildColumnMap(table, SpecFor(domain.VariantStandard), "bulletin.pdf")

	fields := cm.Project([]string{"PL 1", "01/02/2024"})
	assert.Equal(t, "PL 1", fields[domain.FieldLicenceNumber])
	assert.Equal(t, "", fields[domain.FieldTerritory])
}

func TestNormalize_ParallelImportTerritoryLiteral(t *testing.T) {
	table := domain.RawTable{
		Page: 1,
		Header: []string{"PL Number", "Grant Date", "MA Holder", "Licensed Name(s)",
			"Active Ingredient", "Quantity", "Units", "Legal Status"},
		Rows: [][]string{
			{"PL 12345/0001", "01/02/2024", "Importer Ltd", "Product", "Ingredient", "28", "tablets", "P"},
		},
	}

	rows, defects := Normalize(table, domain.VariantParallelImport, "pi.pdf")
	assert.Empty(t, defects)
	require.Len(t, rows, 1)
	assert.Equal(t, "PI", rows[0].Fields[domain.FieldTerritory])
	assert.Equal(t, domain.VariantParallelImport, rows[0].Variant)
}

func TestNormalize_SkipsEmptyRowsAndKeepsProvenance(t *testing.T) {
	table := domain.RawTable{
		Page:   4,
		Header: standardHeader,
		Rows: [][]string{
			{"", "", "", "", "", "", "", "", ""},
			{"PL 12345/0001", "01/02/2024", "Acme", "Name", "Ingredient", "28", "tablets", "P", "UK"},
		},
	}

	rows, _ := Normalize(table, domain.VariantStandard, "ma.pdf")
	require.Len(t, rows, 1)
	assert.Equal(t, "ma.pdf", rows[0].SourceDocument)
	assert.Equal(t, 4, rows[0].Page)
	assert.Equal(t, 1, rows[0].RowIndex)
}

func TestNormalize_NullFieldsAbsent(t *testing.T) {
	table := domain.RawTable{
		Page:   1,
		Header: standardHeader,
		Rows: [][]string{
			{"PL 12345/0001", "01/02/2024", "Acme", "Name", "Ingredient", "28", "tablets", "P", "UK"},
		},
	}

	rows, _ := Normalize(table, domain.VariantStandard, "ma.pdf")
	require.Len(t, rows, 1)
	assert.NotContains(t, rows[0].Fields, domain.FieldWorkType)
	assert.NotContains(t, rows[0].Fields, domain.FieldAuthStatus)
}

func TestPlaceholderHeader(t *testing.T) {
	assert.True(t, placeholderHeader(""))
	assert.True(t, placeholderHeader("   "))
	assert.True(t, placeholderHeader("Unnamed: 3"))
	assert.True(t, placeholderHeader("unnamed"))
	assert.False(t, placeholderHeader("PL Number"))
}
