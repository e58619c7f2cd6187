package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// LinearCSV is three consecutive days on the line energy = 2*day + 10, dates
// written day-first
const LinearCSV = "Date,Energy\n01/01/2024,10\n02/01/2024,12\n03/01/2024,14\n"

// CSV joins rows into CSV text with a trailing newline
func CSV(rows ...string) string {
	return strings.Join(rows, "\n") + "\n"
}

// WriteFile writes content to name inside a fresh temp dir and returns the path
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// Workbook builds an in-memory workbook with rows on the first sheet
func Workbook(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	return f
}

// WriteWorkbook saves a workbook built from rows to name inside a fresh temp
// dir and returns the path
func WriteWorkbook(t *testing.T, name string, rows [][]interface{}) string {
	t.Helper()
	f := Workbook(t, rows)
	defer f.Close()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}
