package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"energyforecast/internal/dataset"
	"energyforecast/internal/infrastructure"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Headers is the exported column order
var Headers = []string{dataset.DateColumn, dataset.EnergyColumn, dataset.DayIndexColumn}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{logger: infrastructure.GetLogger().With(slog.String("component", "exporter"))}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteDataset writes ds to out
func (w *CSVWriter) WriteDataset(out io.Writer, ds *dataset.Dataset, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := out.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)

	if err := writer.Write(Headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, r := range ds.Records {
		record := []string{formatDate(r.Date), formatFloat(r.Energy), formatInt(r.DayIndex)}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteDatasetFile writes ds to filePath, creating parent directories
func (w *CSVWriter) WriteDatasetFile(filePath string, ds *dataset.Dataset) error {
	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", ds.Len()))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := w.WriteDataset(file, ds, WriteOptions{BOMPrefix: true}); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
