package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDayFirst(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{input: "01/02/2024", want: "2024-02-01", ok: true},
		{input: "1/2/2024", want: "2024-02-01", ok: true},
		{input: "31/01/2024", want: "2024-01-31", ok: true},
		{input: "31-01-2024", want: "2024-01-31", ok: true},
		{input: "31.01.2024", want: "2024-01-31", ok: true},
		{input: "05/06/24", want: "2024-06-05", ok: true},
		{input: "2024-05-06", want: "2024-05-06", ok: true},
		{input: "2024/5/6", want: "2024-05-06", ok: true},
		{input: "2024-01-31T08:30:00Z", want: "2024-01-31", ok: true},
		{input: "2024-01-31 08:30:00", want: "2024-01-31", ok: true},
		{input: "31/01/2024 23:15", want: "2024-01-31", ok: true},
		{input: "20240131", want: "2024-01-31", ok: true},
		{input: "3 Feb 2024", want: "2024-02-03", ok: true},
		{input: "Feb 3, 2024", want: "2024-02-03", ok: true},
		{input: "  02/03/2024  ", want: "2024-03-02", ok: true},
		{input: "not-a-date", ok: false},
		{input: "", ok: false},
		{input: "32/01/2024", ok: false},
		{input: "12/13/2024", want: "2024-12-13", ok: true},
		{input: "12/31/2024", want: "2024-12-31", ok: true},
		{input: "12-31-2024 08:00", want: "2024-12-31", ok: true},
		{input: "13/13/2024", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDayFirst(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.Format("2006-01-02"))
			}
		})
	}
}

func TestParseCellDate(t *testing.T) {
	got, ok := ParseCellDate("45322", SourceSpreadsheet)
	assert.True(t, ok)
	assert.Equal(t, "2024-01-31", got.Format("2006-01-02"))

	got, ok = ParseCellDate("45322.5", SourceSpreadsheet)
	assert.True(t, ok)
	assert.Equal(t, 12, got.Hour())

	_, ok = ParseCellDate("45322", SourceCSV)
	assert.False(t, ok, "numbers in csv files are not serial dates")

	got, ok = ParseCellDate("01/02/2024", SourceSpreadsheet)
	assert.True(t, ok)
	assert.Equal(t, time.February, got.Month())

	_, ok = ParseCellDate("-3", SourceSpreadsheet)
	assert.False(t, ok)
}

func TestParseEnergy(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"12.5", 12.5, true},
		{" 7 ", 7, true},
		{"-1e3", -1000, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseEnergy(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
