package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictionDays(t *testing.T) {
	p := Prediction{
		NextDate:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		LatestDate: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, "2024-03-01", p.NextDay())
	assert.Equal(t, "2024-02-29", p.LatestDay())
}

func TestSummaryJSON(t *testing.T) {
	s := Summary{
		Message:      "ok",
		LatestDate:   time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
		LatestEnergy: 14,
		Rows:         5,
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "2024-01-05T00:00:00Z", body["latest_date"])
	assert.Equal(t, float64(5), body["rows"])
	assert.Equal(t, "2024-01-05", s.LatestDay())
}
