package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"wealthgap/pkg/contracts/domain"
)

// FormatError reports that an upload could not be parsed as any supported
// tabular format. It is the only fatal condition in the pipeline.
type FormatError struct {
	Format string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot parse file as %s: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("cannot parse file as %s", e.Format)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// LoadTable parses an uploaded file into a RawTable. The format is chosen by
// file extension: .csv is read as delimited text, .xlsx/.xlsm as a
// spreadsheet. Files with any other extension are tried as CSV first and as
// a spreadsheet second. No type coercion happens here; cells stay strings.
func LoadTable(r io.Reader, filename string) (*domain.RawTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return loadCSV(data)
	case ".xlsx", ".xlsm", ".xls":
		// Legacy binary .xls is not an OOXML container, so a genuine .xls
		// body fails here with a FormatError rather than being misread.
		return loadExcel(data)
	default:
		table, csvErr := loadCSV(data)
		if csvErr == nil {
			return table, nil
		}
		table, excelErr := loadExcel(data)
		if excelErr == nil {
			return table, nil
		}
		slog.Debug("upload matched no tabular format",
			slog.String("filename", filename),
			slog.String("csv_error", csvErr.Error()),
			slog.String("excel_error", excelErr.Error()))
		return nil, &FormatError{Format: "CSV or Excel", Err: csvErr}
	}
}

// loadCSV reads delimited text with the first record as the header row.
func loadCSV(data []byte) (*domain.RawTable, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // rows may be ragged; cleaning pads or drops later
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &FormatError{Format: "CSV", Err: err}
	}
	if len(records) == 0 {
		return nil, &FormatError{Format: "CSV", Err: errors.New("file contains no header row")}
	}

	header := trimCells(records[0])
	if !plausibleHeader(header) {
		return nil, &FormatError{Format: "CSV", Err: errors.New("first row does not look like a header")}
	}

	return &domain.RawTable{Columns: header, Rows: records[1:]}, nil
}

// loadExcel reads the first sheet that contains at least a header row.
func loadExcel(data []byte) (*domain.RawTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &FormatError{Format: "Excel", Err: err}
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}
		header := trimCells(rows[0])
		if !plausibleHeader(header) {
			continue
		}
		slog.Debug("loaded sheet", slog.String("sheet", sheet), slog.Int("rows", len(rows)-1))
		return &domain.RawTable{Columns: header, Rows: rows[1:]}, nil
	}

	return nil, &FormatError{Format: "Excel", Err: errors.New("no sheet with a header row")}
}

// plausibleHeader rejects headers that are entirely empty cells, which is
// what a binary blob or a blank sheet degrades to.
func plausibleHeader(header []string) bool {
	for _, cell := range header {
		if cell != "" {
			return true
		}
	}
	return false
}

func trimCells(cells []string) []string {
	trimmed := make([]string, len(cells))
	for i, c := range cells {
		trimmed[i] = strings.TrimSpace(c)
	}
	return trimmed
}
