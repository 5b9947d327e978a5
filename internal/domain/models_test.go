package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupKey_StableString(t *testing.T) {
	grant := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rec := LicenceRecord{
		LicenceNumber:    "PL 12345/0001",
		LicensedName:     "Product",
		ActiveIngredient: "Paracetamol",
		Quantity:         decimal.NewFromInt(28),
		GrantDate:        &grant,
	}

	assert.Equal(t, "PL 12345/0001|Product|Paracetamol|28|2024-03-01", rec.Key().String())

	rec.GrantDate = nil
	assert.Equal(t, "PL 12345/0001|Product|Paracetamol|28|-", rec.Key().String())
}

func TestDedupKey_ExcludesNonKeyFields(t *testing.T) {
	a := LicenceRecord{LicenceNumber: "PL 1", LicensedName: "X", Quantity: decimal.NewFromInt(1)}
	b := a
	b.HolderName = "Different Holder"
	b.Territory = "PI"

	assert.Equal(t, a.Key().String(), b.Key().String())
}

func TestBatchReport_Tallies(t *testing.T) {
	r := NewBatchReport("bulletin.pdf", VariantStandard)
	r.Record(OutcomeInserted)
	r.Record(OutcomeInserted)
	r.Record(OutcomeDuplicate)
	r.Record(OutcomeFailed)
	r.Drop()

	assert.Equal(t, 2, r.Inserted)
	assert.Equal(t, 1, r.Duplicates)
	assert.Equal(t, 1, r.Failed)
	assert.Equal(t, 1, r.Dropped)
	assert.Equal(t, 5, r.Total())
}

func TestBatchReport_Summary(t *testing.T) {
	r := NewBatchReport("bulletin.pdf", VariantParallelImport)
	r.Record(OutcomeInserted)

	s := r.Summary()
	assert.Contains(t, s, "bulletin.pdf")
	assert.Contains(t, s, "inserted=1")
	assert.Contains(t, s, "no defects")

	r.AddDefect(NewDefect("bulletin.pdf", 2, 7, FieldQuantity, "n/a", DefectBadQuantity, "substituted sentinel"))
	s = r.Summary()
	assert.Contains(t, s, "1 defect(s)")
	assert.Contains(t, s, `field "quantity" value "n/a"`)
}

func TestSentinelQuantity(t *testing.T) {
	assert.Equal(t, "999.999", SentinelQuantity.String())
}

func TestParseVariant(t *testing.T) {
	v, ok := ParseVariant("MA")
	require.True(t, ok)
	assert.Equal(t, VariantStandard, v)

	v, ok = ParseVariant(" pi ")
	require.True(t, ok)
	assert.Equal(t, VariantParallelImport, v)

	_, ok = ParseVariant("bogus")
	assert.False(t, ok)
}
