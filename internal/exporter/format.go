package exporter

import (
	"strconv"
	"time"

	"energyforecast/pkg/contracts/domain"
)

// formatFloat keeps full precision without exponent notation
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// formatDate formats a calendar date for CSV output
func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}
