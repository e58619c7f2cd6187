package dataset

import (
	"time"
)

// Column names required after header trimming. Matching is case-sensitive.
const (
	DateColumn     = "Date"
	EnergyColumn   = "Energy"
	DayIndexColumn = "Day_Index"
)

// Record is one cleaned observation
type Record struct {
	Date     time.Time
	Energy   float64
	DayIndex int
}

// Dataset is an ordered sequence of records, ascending by date, whose
// DayIndex equals the record position.
type Dataset struct {
	Records []Record
}

// Len returns the number of records
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Latest returns the chronologically last record
func (d *Dataset) Latest() (Record, bool) {
	if d.Len() == 0 {
		return Record{}, false
	}
	return d.Records[len(d.Records)-1], true
}

// MaxDate returns the largest date in the dataset
func (d *Dataset) MaxDate() time.Time {
	var max time.Time
	for i, r := range d.Records {
		if i == 0 || r.Date.After(max) {
			max = r.Date
		}
	}
	return max
}

// Energies returns the regression target column
func (d *Dataset) Energies() []float64 {
	y := make([]float64, len(d.Records))
	for i, r := range d.Records {
		y[i] = r.Energy
	}
	return y
}
