package dataset

import (
	"errors"
	"slices"
)

// ErrMissingColumns is returned when Date or Energy is absent after header trimming
var ErrMissingColumns = errors.New("missing required columns")

// BuildStats reports how many rows survived cleaning
type BuildStats struct {
	TotalRows     int
	InvalidDates  int
	InvalidEnergy int
}

// Dropped returns the number of rows removed during cleaning
func (s BuildStats) Dropped() int {
	return s.InvalidDates + s.InvalidEnergy
}

// Build cleans a table into a Dataset. Header names are trimmed in place.
// An empty dataset is not an error here; callers decide whether there is
// enough data.
func Build(t *Table) (*Dataset, BuildStats, error) {
	t.NormalizeHeaders()

	dateCol, hasDate := t.ColumnIndex(DateColumn)
	energyCol, hasEnergy := t.ColumnIndex(EnergyColumn)
	if !hasDate || !hasEnergy {
		return nil, BuildStats{}, ErrMissingColumns
	}

	stats := BuildStats{TotalRows: len(t.Rows)}
	records := make([]Record, 0, len(t.Rows))

	for _, row := range t.Rows {
		date, ok := ParseCellDate(row[dateCol], t.Source)
		if !ok {
			stats.InvalidDates++
			continue
		}
		energy, ok := ParseEnergy(row[energyCol])
		if !ok {
			stats.InvalidEnergy++
			continue
		}
		records = append(records, Record{Date: date, Energy: energy})
	}

	slices.SortStableFunc(records, func(a, b Record) int {
		return a.Date.Compare(b.Date)
	})

	for i := range records {
		records[i].DayIndex = i
	}

	return &Dataset{Records: records}, stats, nil
}
