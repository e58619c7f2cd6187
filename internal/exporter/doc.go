// Package exporter writes the cleaned dataset back out as CSV.
//
// The columns are Date (YYYY-MM-DD), Energy and Day_Index, in that order, one
// row per record in day-index order. Files written to disk carry a UTF-8 BOM
// so spreadsheet applications detect the encoding.
//
// Example usage:
//
//	w := exporter.NewCSVWriter()
//	err := w.WriteDataset(os.Stdout, ds, exporter.WriteOptions{})
package exporter
