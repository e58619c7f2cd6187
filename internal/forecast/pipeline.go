package forecast

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"energyforecast/internal/dataset"
	"energyforecast/internal/regression"
	"energyforecast/pkg/contracts/domain"
)

// SuccessMessage is shown after a dataset is accepted
const SuccessMessage = "Dataset uploaded & model trained successfully!"

// MinRows is the smallest dataset a line can be fitted through
const MinRows = 2

// Pipeline cleans uploads, fits the model and commits both to a Store
type Pipeline struct {
	store *Store
	now   func() time.Time
}

// NewPipeline creates a pipeline that commits into store
func NewPipeline(store *Store) *Pipeline {
	return &Pipeline{
		store: store,
		now:   time.Now,
	}
}

// Ingest parses the upload, fits a line of energy against day index and
// replaces the store contents. On any error the store is left unchanged.
func (p *Pipeline) Ingest(ctx context.Context, r io.Reader, filename string) (*domain.Summary, error) {
	snap, err := p.IngestSnapshot(ctx, r, filename)
	if err != nil {
		return nil, err
	}
	s := SummaryOf(snap)
	return &s, nil
}

// IngestSnapshot is Ingest returning the snapshot it committed. Callers that
// need the fitted model read it here rather than from the store, which a
// concurrent upload may already have replaced.
func (p *Pipeline) IngestSnapshot(ctx context.Context, r io.Reader, filename string) (snap *Snapshot, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			snap = nil
			err = &OtherError{Message: fmt.Sprintf("%v", rec)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, &OtherError{Message: err.Error(), Err: err}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &OtherError{Message: fmt.Sprintf("failed to read upload: %v", err), Err: err}
	}

	snap, err = p.prepare(data, filename)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, &OtherError{Message: err.Error(), Err: err}
	}

	p.store.Commit(snap)
	return snap, nil
}

// prepare builds a snapshot without touching the store
func (p *Pipeline) prepare(data []byte, filename string) (*Snapshot, error) {
	table, err := dataset.Read(bytes.NewReader(data), filename)
	if err != nil {
		return nil, &ParseError{
			Filename: filename,
			Format:   string(dataset.SourceFor(filename)),
			Err:      err,
		}
	}

	ds, stats, err := dataset.Build(table)
	if errors.Is(err, dataset.ErrMissingColumns) {
		return nil, &SchemaError{Columns: table.Header}
	}
	if err != nil {
		return nil, &OtherError{Message: err.Error(), Err: err}
	}

	if ds.Len() < MinRows {
		return nil, &InsufficientDataError{Rows: ds.Len(), Required: MinRows}
	}

	model, err := regression.FitSequence(ds.Energies())
	if errors.Is(err, regression.ErrTooFewPoints) || errors.Is(err, regression.ErrDegenerate) {
		return nil, &InsufficientDataError{Rows: ds.Len(), Required: MinRows, Err: err}
	}
	if err != nil {
		return nil, &OtherError{Message: err.Error(), Err: err}
	}

	return &Snapshot{
		Dataset:    ds,
		Model:      model,
		Filename:   filename,
		Dropped:    stats.Dropped(),
		IngestedAt: p.now(),
	}, nil
}

// SummaryOf describes a committed snapshot
func SummaryOf(snap *Snapshot) domain.Summary {
	latest, _ := snap.Dataset.Latest()
	return domain.Summary{
		Message:      SuccessMessage,
		Filename:     snap.Filename,
		LatestDate:   snap.Dataset.MaxDate(),
		LatestEnergy: latest.Energy,
		Rows:         snap.Dataset.Len(),
		DroppedRows:  snap.Dropped,
		IngestedAt:   snap.IngestedAt,
	}
}
