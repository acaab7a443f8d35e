package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"store-dashboard/internal/ingest"
	"store-dashboard/internal/insights"
	"store-dashboard/internal/models"
	"store-dashboard/internal/observability"
)

var ErrNoDataset = errors.New("no dataset loaded")

// Dataset is one loaded transaction file. It is never modified after load.
type Dataset struct {
	ID           string
	Name         string
	Transactions []models.Transaction
	Options      models.FilterOptions
	LoadedAt     time.Time
}

// Dashboard holds the dataset of the session. Every report is recomputed from
// scratch; loading a new dataset replaces the previous one, and a failed load
// keeps it.
type Dashboard struct {
	mu      sync.RWMutex
	dataset *Dataset
	source  *ingest.Source
	logger  *slog.Logger
}

func NewDashboard() *Dashboard {
	return NewDashboardWithSource(ingest.NewSource())
}

func NewDashboardWithSource(source *ingest.Source) *Dashboard {
	return &Dashboard{
		source: source,
		logger: slog.Default(),
	}
}

// SetData installs already parsed transactions.
func (d *Dashboard) SetData(name string, txs []models.Transaction) *Dataset {
	ds := &Dataset{
		ID:           uuid.NewString(),
		Name:         name,
		Transactions: txs,
		Options:      insights.Options(txs),
		LoadedAt:     time.Now(),
	}

	d.mu.Lock()
	d.dataset = ds
	d.mu.Unlock()

	observability.DatasetRows.Set(float64(len(txs)))
	return ds
}

// Load parses r and installs it as the current dataset.
func (d *Dashboard) Load(ctx context.Context, name string, r io.Reader) (*Dataset, error) {
	start := time.Now()

	txs, err := ingest.Parse(ctx, r)
	if err != nil {
		observability.IngestFailuresTotal.WithLabelValues(failureKind(err)).Inc()
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	ds := d.SetData(name, txs)
	observability.RowsIngestedTotal.Add(float64(len(txs)))

	d.logger.Info("dataset loaded",
		"dataset_id", ds.ID,
		"name", name,
		"rows", len(txs),
		"categories", len(ds.Options.Categories),
		"store_types", len(ds.Options.StoreTypes),
		"duration", time.Since(start),
	)
	return ds, nil
}

// LoadFrom opens location (a path or s3:// URI) and loads it.
func (d *Dashboard) LoadFrom(ctx context.Context, location string) (*Dataset, error) {
	rc, name, err := d.source.Open(ctx, location)
	if err != nil {
		observability.IngestFailuresTotal.WithLabelValues("source").Inc()
		return nil, err
	}
	defer rc.Close()

	return d.Load(ctx, name, rc)
}

func (d *Dashboard) current() (*Dataset, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.dataset == nil {
		return nil, ErrNoDataset
	}
	return d.dataset, nil
}

func (d *Dashboard) Dataset() (*Dataset, error) {
	return d.current()
}

func (d *Dashboard) Options() (models.FilterOptions, error) {
	ds, err := d.current()
	if err != nil {
		return models.FilterOptions{}, err
	}
	return ds.Options, nil
}

// Report recomputes the full report for sel.
func (d *Dashboard) Report(ctx context.Context, sel models.Selection) (models.Report, error) {
	ds, err := d.current()
	if err != nil {
		return models.Report{}, err
	}

	_, span := observability.StartSpan(ctx, "pipeline")
	span.SetTag("dataset_id", ds.ID)
	start := time.Now()

	report := insights.Run(ds.Transactions, sel)

	span.Finish()
	observability.PipelineRunsTotal.Inc()
	observability.PipelineDuration.Observe(time.Since(start).Seconds())
	observability.LoggerFrom(ctx, d.logger).Debug("report computed",
		"rows", report.Rows,
		"days", len(report.Daily),
		"alerts", len(report.Health.Alerts),
		span.Attrs(),
	)
	return report, nil
}

// DefaultReport uses every category and store type.
func (d *Dashboard) DefaultReport(ctx context.Context) (models.Report, error) {
	opts, err := d.Options()
	if err != nil {
		return models.Report{}, err
	}
	return d.Report(ctx, opts.All())
}

func (d *Dashboard) Stats() map[string]any {
	ds, err := d.current()
	if err != nil {
		return map[string]any{"loaded": false}
	}

	var from, to time.Time
	for i, tx := range ds.Transactions {
		if i == 0 || tx.Date.Before(from) {
			from = tx.Date
		}
		if i == 0 || tx.Date.After(to) {
			to = tx.Date
		}
	}

	return map[string]any{
		"loaded":      true,
		"dataset_id":  ds.ID,
		"name":        ds.Name,
		"rows":        len(ds.Transactions),
		"categories":  len(ds.Options.Categories),
		"store_types": len(ds.Options.StoreTypes),
		"from":        from.Format(time.DateOnly),
		"to":          to.Format(time.DateOnly),
		"loaded_at":   ds.LoadedAt,
	}
}

func failureKind(err error) string {
	var schemaErr *ingest.SchemaError
	var parseErr *ingest.ParseError
	switch {
	case errors.As(err, &schemaErr):
		return "schema"
	case errors.As(err, &parseErr):
		return "parse"
	default:
		return "read"
	}
}

func (d *Dashboard) Loaded() bool {
	_, err := d.current()
	return err == nil
}
