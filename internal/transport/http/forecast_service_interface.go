package http

import (
	"context"
	"io"

	"energyforecast/pkg/contracts/domain"
)

// ForecastServiceInterface defines the operations the handlers need
type ForecastServiceInterface interface {
	Ingest(ctx context.Context, r io.Reader, filename string) (*domain.Summary, error)
	Predict(ctx context.Context) (*domain.Prediction, error)
	Dataset(ctx context.Context) (*domain.DatasetView, error)
	Model(ctx context.Context) (*domain.ModelInfo, error)
	Export(ctx context.Context, w io.Writer) error
	ExportFilename() string
}
