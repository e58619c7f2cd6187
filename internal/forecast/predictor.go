package forecast

import (
	"context"
	"math"

	"energyforecast/pkg/contracts/domain"
)

// Predictor reads the store and extrapolates one day ahead
type Predictor struct {
	store *Store
}

// NewPredictor creates a predictor over store
func NewPredictor(store *Store) *Predictor {
	return &Predictor{store: store}
}

// PredictNext evaluates the fitted line at the day after the last record.
// It never modifies the store.
func (p *Predictor) PredictNext(ctx context.Context) (*domain.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := p.store.Snapshot()
	if snap == nil || snap.Dataset == nil || snap.Model == nil {
		return nil, ErrNotReady
	}

	nextIndex := snap.Dataset.Len()
	latestDate := snap.Dataset.MaxDate()
	latest, _ := snap.Dataset.Latest()

	return &domain.Prediction{
		NextDate:        latestDate.AddDate(0, 0, 1),
		NextDayIndex:    nextIndex,
		PredictedEnergy: Round2(snap.Model.Predict(float64(nextIndex))),
		LatestDate:      latestDate,
		LatestEnergy:    latest.Energy,
	}, nil
}

// Describe returns the current dataset, summary and model
func (p *Predictor) Describe(ctx context.Context) (*domain.DatasetView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := p.store.Snapshot()
	if snap == nil || snap.Dataset == nil || snap.Model == nil {
		return nil, ErrNotReady
	}

	observations := make([]domain.Observation, 0, snap.Dataset.Len())
	for _, r := range snap.Dataset.Records {
		observations = append(observations, domain.Observation{
			DayIndex: r.DayIndex,
			Date:     r.Date,
			Energy:   r.Energy,
		})
	}

	return &domain.DatasetView{
		Summary: SummaryOf(snap),
		Model: domain.ModelInfo{
			Slope:      snap.Model.Slope,
			Intercept:  snap.Model.Intercept,
			DataPoints: snap.Model.N,
			RSquared:   snap.Model.RSquared,
		},
		Observations: observations,
	}, nil
}

// Round2 rounds to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
