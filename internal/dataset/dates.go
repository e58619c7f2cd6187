package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// isoLayouts are year-first and therefore unambiguous. They are tried before
// the day-first layouts.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",
	"2006/1/2 15:04:05",
	"20060102",
}

// dayFirstLayouts resolve dd/mm vs mm/dd ambiguity in favour of the day.
// A single "2" or "1" element accepts one or two digits.
var dayFirstLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
	"2-1-2006 15:04",
	"2-1-2006 15:04:05",
	"2.1.2006 15:04",
	"2/1/06",
	"2-1-06",
	"2.1.06",
	"2 Jan 2006",
	"2 January 2006",
	"2-Jan-2006",
	"2-Jan-06",
	"2 Jan 06",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"Mon, 2 Jan 2006",
}

// monthFirstLayouts are a fallback for numeric dates that cannot be
// day-first, such as 12/31/2024
var monthFirstLayouts = []string{
	"1/2/2006",
	"1-2-2006",
	"1.2.2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"1-2-2006 15:04",
	"1-2-2006 15:04:05",
	"1/2/06",
	"1-2-06",
}

// ParseDayFirst parses a date string, resolving ambiguous numeric forms as
// day/month/year. Forms that are only valid month-first are still accepted.
// The second return value is false when no layout matches.
func ParseDayFirst(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	for _, layout := range monthFirstLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseCellDate parses a date cell. Spreadsheet cells holding a number are
// Excel serial dates; text cells fall back to ParseDayFirst.
func ParseCellDate(value string, source Source) (time.Time, bool) {
	if source == SourceSpreadsheet {
		if serial, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			if serial <= 0 || math.IsNaN(serial) || math.IsInf(serial, 0) {
				return time.Time{}, false
			}
			t, err := excelize.ExcelDateToTime(serial, false)
			if err != nil {
				return time.Time{}, false
			}
			return t, true
		}
	}
	return ParseDayFirst(value)
}

// ParseEnergy coerces a cell to a finite float
func ParseEnergy(value string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
