package dataprocessing

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadTableCSV(t *testing.T) {
	input := "State,State Population,Number in Poverty,Number of Millionaires\n" +
		"Texas,1000,150,20\n" +
		"Ohio,500,100,5\n"

	table, err := LoadTable(strings.NewReader(input), "poverty.csv")

	require.NoError(t, err)
	assert.Equal(t, []string{"State", "State Population", "Number in Poverty", "Number of Millionaires"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Texas", table.Cell(0, 0))
	assert.Equal(t, "5", table.Cell(1, 3))
}

func TestLoadTableCSVRaggedRows(t *testing.T) {
	input := "State,Population\nTexas,1000\nOhio\n"

	table, err := LoadTable(strings.NewReader(input), "data.csv")

	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	// Missing cells read as empty; the cleaner drops the row later.
	assert.Equal(t, "", table.Cell(1, 1))
}

func TestLoadTableExcel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"State", "State Population", "Number in Poverty", "Number of Millionaires"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Texas", 1000, 150, 20}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"Ohio", 500, 100, 5}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	table, err := LoadTable(&buf, "poverty.xlsx")

	require.NoError(t, err)
	assert.Equal(t, []string{"State", "State Population", "Number in Poverty", "Number of Millionaires"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Ohio", table.Cell(1, 0))
}

func TestLoadTableUnknownExtensionFallsBackToCSV(t *testing.T) {
	input := "State,Population\nTexas,1000\n"

	table, err := LoadTable(strings.NewReader(input), "upload.dat")

	require.NoError(t, err)
	assert.Equal(t, []string{"State", "Population"}, table.Columns)
}

func TestLoadTableFormatErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		filename string
	}{
		{name: "empty csv", input: "", filename: "empty.csv"},
		{name: "binary blob as xlsx", input: "\x00\x01\x02\x03", filename: "junk.xlsx"},
		{name: "binary blob unknown extension", input: "\x00\x01\"\x02", filename: "junk.bin"},
		// Legacy .xls is a compound binary file, not an OOXML zip; the
		// extension is routed to the spreadsheet reader and fails cleanly.
		{name: "legacy xls body", input: "\xd0\xcf\x11\xe0\xa1\xb1\x1a\xe1", filename: "report.xls"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTable(strings.NewReader(tt.input), tt.filename)

			require.Error(t, err)
			var formatErr *FormatError
			assert.ErrorAs(t, err, &formatErr)
		})
	}
}

func TestLoadTableExcelSkipsBlankSheets(t *testing.T) {
	f := excelize.NewFile()
	// First sheet stays blank; data lives on the second.
	_, err := f.NewSheet("Data")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Data", "A1", &[]interface{}{"State", "Population"}))
	require.NoError(t, f.SetSheetRow("Data", "A2", &[]interface{}{"Iowa", 100}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	table, err := LoadTable(&buf, "report.xlsx")

	require.NoError(t, err)
	assert.Equal(t, []string{"State", "Population"}, table.Columns)
	require.Len(t, table.Rows, 1)
}
