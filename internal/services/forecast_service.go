package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"energyforecast/internal/exporter"
	"energyforecast/internal/forecast"
	"energyforecast/internal/infrastructure"
	ws "energyforecast/internal/websocket"
	"energyforecast/pkg/contracts/domain"
)

// Broadcaster pushes events to connected WebSocket clients
type Broadcaster interface {
	Broadcast(ctx context.Context, eventType string, data interface{})
}

// ForecastService coordinates ingest, prediction and export
type ForecastService struct {
	store     *forecast.Store
	pipeline  *forecast.Pipeline
	predictor *forecast.Predictor
	exporter  *exporter.CSVWriter
	hub       Broadcaster
	tracer    trace.Tracer
	metrics   *infrastructure.ForecastMetrics
	logger    *slog.Logger
}

// NewForecastService wires a service around store. hub may be nil.
func NewForecastService(
	store *forecast.Store,
	hub Broadcaster,
	tracer trace.Tracer,
	metrics *infrastructure.ForecastMetrics,
	logger *slog.Logger,
) *ForecastService {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	return &ForecastService{
		store:     store,
		pipeline:  forecast.NewPipeline(store),
		predictor: forecast.NewPredictor(store),
		exporter:  exporter.NewCSVWriter(),
		hub:       hub,
		tracer:    tracer,
		metrics:   metrics,
		logger:    logger.With(slog.String("component", "forecast_service")),
	}
}

// Ingest replaces the current dataset with the contents of r
func (s *ForecastService) Ingest(ctx context.Context, r io.Reader, filename string) (*domain.Summary, error) {
	ctx, span := s.tracer.Start(ctx, "forecast.ingest",
		trace.WithAttributes(attribute.String("dataset.filename", filename)))
	defer span.End()

	start := time.Now()
	snap, err := s.pipeline.IngestSnapshot(ctx, r, filename)
	elapsed := time.Since(start)

	result := string(forecast.Kind(err))
	if err == nil {
		result = "success"
	}
	attrs := metric.WithAttributes(attribute.String("result", result))
	s.metrics.IngestsTotal.Add(ctx, 1, attrs)
	s.metrics.IngestDuration.Record(ctx, elapsed.Seconds(), attrs)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.logger.WarnContext(ctx, "dataset rejected",
			slog.String("filename", filename),
			slog.String("kind", result),
			slog.String("error", err.Error()),
			slog.Duration("duration", elapsed))
		s.broadcast(ctx, ws.TypeIngestFailed, map[string]string{
			"filename": filename,
			"kind":     result,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("ingest %s: %w", filename, err)
	}

	summary := forecast.SummaryOf(snap)
	s.metrics.IngestedRows.Add(ctx, int64(summary.Rows))
	s.metrics.DroppedRows.Add(ctx, int64(summary.DroppedRows))
	s.metrics.ModelSlope.Record(ctx, snap.Model.Slope)
	span.SetAttributes(
		attribute.Float64("model.slope", snap.Model.Slope),
		attribute.Float64("model.intercept", snap.Model.Intercept),
	)
	span.SetAttributes(
		attribute.Int("dataset.rows", summary.Rows),
		attribute.Int("dataset.dropped_rows", summary.DroppedRows),
	)

	s.logger.InfoContext(ctx, "dataset ingested",
		slog.String("filename", filename),
		slog.Int("rows", summary.Rows),
		slog.Int("dropped_rows", summary.DroppedRows),
		slog.String("latest_date", summary.LatestDay()),
		slog.Duration("duration", elapsed))

	s.broadcast(ctx, ws.TypeDatasetIngested, &summary)
	return &summary, nil
}

// Predict forecasts the day after the latest observation
func (s *ForecastService) Predict(ctx context.Context) (*domain.Prediction, error) {
	ctx, span := s.tracer.Start(ctx, "forecast.predict")
	defer span.End()

	prediction, err := s.predictor.PredictNext(ctx)
	if err != nil {
		s.metrics.PredictionsTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("result", string(forecast.Kind(err)))))
		infrastructure.RecordError(ctx, err)
		s.logger.InfoContext(ctx, "prediction unavailable", slog.String("error", err.Error()))
		return nil, fmt.Errorf("predict: %w", err)
	}

	s.metrics.PredictionsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "success")))
	s.metrics.PredictedEnergy.Record(ctx, prediction.PredictedEnergy)
	span.SetAttributes(
		attribute.String("prediction.date", prediction.NextDay()),
		attribute.Float64("prediction.energy", prediction.PredictedEnergy),
	)

	s.logger.InfoContext(ctx, "prediction computed",
		slog.String("next_date", prediction.NextDay()),
		slog.Int("next_day_index", prediction.NextDayIndex),
		slog.Float64("predicted_energy", prediction.PredictedEnergy))

	s.broadcast(ctx, ws.TypePredictionComputed, prediction)
	return prediction, nil
}

// Dataset returns the current dataset with its summary and model
func (s *ForecastService) Dataset(ctx context.Context) (*domain.DatasetView, error) {
	view, err := s.predictor.Describe(ctx)
	if err != nil {
		return nil, fmt.Errorf("describe dataset: %w", err)
	}
	return view, nil
}

// Model returns the fitted line of the current dataset
func (s *ForecastService) Model(ctx context.Context) (*domain.ModelInfo, error) {
	view, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return &view.Model, nil
}

// Export writes the current dataset as CSV
func (s *ForecastService) Export(ctx context.Context, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	snap := s.store.Snapshot()
	if snap == nil {
		return fmt.Errorf("export: %w", forecast.ErrNotReady)
	}

	if err := s.exporter.WriteDataset(w, snap.Dataset, exporter.WriteOptions{}); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// ExportFile writes the current dataset to path as a spreadsheet-friendly CSV
func (s *ForecastService) ExportFile(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	snap := s.store.Snapshot()
	if snap == nil {
		return fmt.Errorf("export: %w", forecast.ErrNotReady)
	}

	if err := s.exporter.WriteDatasetFile(path, snap.Dataset); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}

	s.logger.InfoContext(ctx, "dataset exported",
		slog.String("path", path),
		slog.Int("rows", snap.Dataset.Len()))
	return nil
}

// ExportFilename suggests a download name for the current dataset
func (s *ForecastService) ExportFilename() string {
	if snap := s.store.Snapshot(); snap != nil {
		return "dataset-" + snap.Dataset.MaxDate().Format(domain.DateLayout) + ".csv"
	}
	return "dataset.csv"
}

// Ready reports whether a dataset has been committed
func (s *ForecastService) Ready() bool {
	return s.store.Ready()
}

func (s *ForecastService) broadcast(ctx context.Context, eventType string, data interface{}) {
	if s.hub != nil {
		s.hub.Broadcast(ctx, eventType, data)
	}
}
