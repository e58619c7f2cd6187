// Package forecast implements the upload-and-predict workflow: an ingest
// pipeline that cleans an uploaded table and fits a line through its daily
// energy readings, a store that holds the most recent successful result, and
// a predictor that extrapolates that line one day ahead.
//
// The store has two states. It starts empty and becomes ready after the first
// successful ingest. Every later successful ingest replaces the dataset and
// model together; a failed ingest leaves the previous state untouched.
//
//	store := forecast.NewStore()
//	pipeline := forecast.NewPipeline(store)
//	predictor := forecast.NewPredictor(store)
//
//	summary, err := pipeline.Ingest(ctx, file, "usage.csv")
//	prediction, err := predictor.PredictNext(ctx)
package forecast
