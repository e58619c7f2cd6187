package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"energyforecast/internal/config"
	"energyforecast/internal/forecast"
	"energyforecast/internal/infrastructure"
	"energyforecast/internal/services"
	"energyforecast/internal/validation"
	"energyforecast/pkg/contracts"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(config.LoggingConfig{
		Level:  cfg.Logging.Level,
		Output: "console",
	})
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	if err := run(context.Background(), os.Args[1:], os.Stdout, logger); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		logger.Error("Forecast failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run ingests one file into a private store and prints the next-day
// prediction as JSON to stdout
func run(ctx context.Context, args []string, stdout io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("forecast", flag.ContinueOnError)
	file := fs.String("file", "", "dataset to ingest (.csv, or an Excel workbook)")
	export := fs.String("export", "", "optional path for the cleaned dataset as CSV")
	version := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *version {
		_, err := fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return err
	}

	if *file == "" {
		fs.Usage()
		return errors.New("-file is required")
	}

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateDatasetFile(*file); err != nil {
		return err
	}
	if *export != "" {
		if err := validator.ValidateOutputFile(*export); err != nil {
			return err
		}
	}

	providers, err := infrastructure.InitializeOTel(config.TelemetryConfig{
		Environment:    "cli",
		TraceExporter:  "none",
		MetricExporter: "none",
	}, contracts.Version, logger)
	if err != nil {
		return err
	}
	defer providers.Shutdown(ctx)

	metrics, err := infrastructure.CreateForecastMetrics(providers.Meter)
	if err != nil {
		return err
	}

	service := services.NewForecastService(forecast.NewStore(), nil, providers.Tracer, metrics, logger)

	f, err := os.Open(*file)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	if _, err := service.Ingest(ctx, f, filepath.Base(*file)); err != nil {
		return err
	}

	prediction, err := service.Predict(ctx)
	if err != nil {
		return err
	}

	if *export != "" {
		if err := service.ExportFile(ctx, *export); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(prediction)
}
