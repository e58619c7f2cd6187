package domain

import (
	"time"
)

// DateLayout is the calendar-day layout used when dates are shown to users
const DateLayout = "2006-01-02"

// Summary describes the dataset committed by a successful ingest
type Summary struct {
	Message      string    `json:"message"`
	Filename     string    `json:"filename"`
	LatestDate   time.Time `json:"latest_date"`
	LatestEnergy float64   `json:"latest_energy"`
	Rows         int       `json:"rows"`
	DroppedRows  int       `json:"dropped_rows"`
	IngestedAt   time.Time `json:"ingested_at"`
}

// LatestDay returns the latest date formatted as a calendar day
func (s Summary) LatestDay() string {
	return s.LatestDate.Format(DateLayout)
}

// Prediction is the next-day forecast computed from the current dataset
type Prediction struct {
	NextDate        time.Time `json:"next_date"`
	NextDayIndex    int       `json:"next_day_index"`
	PredictedEnergy float64   `json:"predicted_energy"`
	LatestDate      time.Time `json:"latest_date"`
	LatestEnergy    float64   `json:"latest_energy"`
}

// NextDay returns the predicted date formatted as a calendar day
func (p Prediction) NextDay() string {
	return p.NextDate.Format(DateLayout)
}

// LatestDay returns the latest observed date formatted as a calendar day
func (p Prediction) LatestDay() string {
	return p.LatestDate.Format(DateLayout)
}

// ModelInfo exposes the fitted line
type ModelInfo struct {
	Slope      float64 `json:"slope"`
	Intercept  float64 `json:"intercept"`
	DataPoints int     `json:"data_points"`
	RSquared   float64 `json:"r_squared"`
}

// Observation is one cleaned row of the current dataset
type Observation struct {
	DayIndex int       `json:"day_index"`
	Date     time.Time `json:"date"`
	Energy   float64   `json:"energy"`
}

// DatasetView is the read model of the current dataset
type DatasetView struct {
	Summary      Summary       `json:"summary"`
	Model        ModelInfo     `json:"model"`
	Observations []Observation `json:"observations"`
}
