package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Source identifies which reader produced a Table
type Source string

const (
	SourceCSV         Source = "csv"
	SourceSpreadsheet Source = "spreadsheet"
)

var (
	// ErrEmptyFile is returned when the upload has no header row
	ErrEmptyFile = errors.New("no columns to parse from file")

	// ErrNoSheets is returned for a workbook without worksheets
	ErrNoSheets = errors.New("workbook contains no sheets")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is the raw header and cell text of an upload
type Table struct {
	Source Source
	Header []string
	Rows   [][]string
}

// SourceFor picks the reader for a filename. Only a .csv suffix selects the
// CSV reader; everything else is treated as a spreadsheet.
func SourceFor(filename string) Source {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return SourceCSV
	}
	return SourceSpreadsheet
}

// Read parses r with the reader selected by filename
func Read(r io.Reader, filename string) (*Table, error) {
	switch SourceFor(filename) {
	case SourceCSV:
		return ReadCSV(r)
	default:
		return ReadSpreadsheet(r)
	}
}

// ReadCSV reads comma-separated text. The first record is the header; short
// rows are padded with empty cells.
func ReadCSV(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = false

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	return newTable(SourceCSV, records)
}

// ReadSpreadsheet reads the first sheet of an xlsx workbook. Cells are read
// raw, so date cells arrive as Excel serial numbers.
func ReadSpreadsheet(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return newTable(SourceSpreadsheet, rows)
}

func newTable(source Source, records [][]string) (*Table, error) {
	if len(records) == 0 || isBlankRow(records[0]) {
		return nil, ErrEmptyFile
	}

	header := records[0]
	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isBlankRow(rec) {
			continue
		}
		row := make([]string, len(header))
		copy(row, rec)
		rows = append(rows, row)
	}

	return &Table{
		Source: source,
		Header: header,
		Rows:   rows,
	}, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// NormalizeHeaders trims surrounding whitespace from every column name
func (t *Table) NormalizeHeaders() {
	for i, h := range t.Header {
		t.Header[i] = strings.TrimSpace(h)
	}
}

// ColumnIndex returns the position of the first column named exactly name
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}
	return -1, false
}
