package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testColumns = []Column{
	{Key: "number", Label: "Número"},
	{Key: "amount", Label: "Valor"},
	{Key: "paid", Label: "Pago"},
}

var testRows = []map[string]any{
	{"number": "NF-100", "amount": 1500.5, "paid": true},
	{"number": "NF-101", "amount": int64(200), "paid": false, "extra": "dropped"},
	{"number": "NF-102"},
}

func TestFilename(t *testing.T) {
	name := Filename("contratos", "csv")
	assert.True(t, strings.HasPrefix(name, "contratos-"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testColumns, testRows))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\xEF\xBB\xBF"), "missing UTF-8 BOM")

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(out, "\xEF\xBB\xBF")), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Número;Valor;Pago", lines[0])
	assert.Equal(t, "NF-100;1500.5;Sim", lines[1])
	assert.Equal(t, "NF-101;200;Não", lines[2])
	assert.Equal(t, "NF-102;;", lines[3])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, testColumns, testRows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Número", "Valor", "Pago"}, rows[0])
	assert.Equal(t, "NF-100", rows[1][0])
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, "Relatório de notas-fiscais", testColumns, testRows))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 500)
}
