// Package normalize maps raw bulletin tables onto the canonical
// licence-record schema.
package normalize

import "licencewatch/internal/domain"

// FieldSpec declares one physically-present canonical field of a bulletin
// variant: its canonical name and the header text the regulator documents
// for it. Declaration order is the positional-fallback contract for
// bulletins published without headers.
type FieldSpec struct {
	Name   string
	Header string
}

// VariantSpec declares the column layout of one bulletin variant as data.
// Columns lists the fields physically present in the table, in documented
// order. Literals are variant defaults for fields the table omits entirely
// (Territory for parallel imports). NullFields resolve to null rather than
// failing the mapping.
type VariantSpec struct {
	Variant    domain.Variant
	Columns    []FieldSpec
	Literals   map[string]string
	NullFields []string
}

var commonColumns = []FieldSpec{
	{Name: domain.FieldLicenceNumber, Header: "PL Number"},
	{Name: domain.FieldGrantDate, Header: "Grant Date"},
	{Name: domain.FieldHolderName, Header: "MA Holder"},
	{Name: domain.FieldLicensedName, Header: "Licensed Name(s)"},
	{Name: domain.FieldActiveIngredient, Header: "Active Ingredient"},
	{Name: domain.FieldQuantity, Header: "Quantity"},
	{Name: domain.FieldUnits, Header: "Units"},
	{Name: domain.FieldLegalStatus, Header: "Legal Status"},
}

var variantSpecs = map[domain.Variant]VariantSpec{
	domain.VariantStandard: {
		Variant: domain.VariantStandard,
		Columns: append(append([]FieldSpec{}, commonColumns...),
			FieldSpec{Name: domain.FieldTerritory, Header: "Territory"},
		),
		NullFields: []string{domain.FieldWorkType, domain.FieldAuthStatus},
	},
	domain.VariantParallelImport: {
		Variant: domain.VariantParallelImport,
		Columns: append([]FieldSpec{}, commonColumns...),
		Literals: map[string]string{
			domain.FieldTerritory: "PI",
		},
		NullFields: []string{domain.FieldWorkType, domain.FieldAuthStatus},
	},
}

// SpecFor returns the declared column layout for a bulletin variant.
func SpecFor(v domain.Variant) VariantSpec {
	return variantSpecs[v]
}
