// Package dataset turns uploaded tables into cleaned, date-ordered energy
// observations.
//
// An upload is first read into a Table (CSV text or the first sheet of an
// xlsx workbook). Build then trims the headers, locates the Date and Energy
// columns, parses dates day-first, drops rows whose date or energy cannot be
// read, sorts the survivors by date and numbers them with a 0-based day
// index:
//
//	table, err := dataset.Read(r, "usage.csv")
//	ds, stats, err := dataset.Build(table)
//
// Rows that share a date keep their upload order.
package dataset
