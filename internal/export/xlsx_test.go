package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"licencewatch/internal/domain"
)

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, []domain.LicenceRecord{sampleRecord()}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Licences")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Licence Number", rows[0][0])
	assert.Equal(t, "PL 12345/0001", rows[1][0])
	assert.Equal(t, "2024-03-01", rows[1][1])
	assert.Equal(t, "28", rows[1][5])
	assert.Equal(t, "MA", rows[1][11])
}

func TestWriteWorkbook_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Licences")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
