package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bulk-ingest/core/ndjson"
	"bulk-ingest/core/reconcile"
	"bulk-ingest/core/source"

	"go.uber.org/zap"
)

// ErrUnmappable marks a parent that cannot become a row.
var ErrUnmappable = errors.New("unmappable record")

// Dataset maps reconciled parents of one entity kind to rows of type R.
type Dataset[R any] interface {
	// Name identifies the dataset on the command line and in logs.
	Name() string
	// Profile describes the parent/child kinds of the export.
	Profile() reconcile.Profile
	// PrimaryKey is the conflict column of the target table.
	PrimaryKey() string
	// AggregateColumns are row columns derived from children. They are
	// written to the database only when enabled in the ingest config.
	AggregateColumns() []string
	// MapRow builds the row of one parent.
	MapRow(p *reconcile.Parent) (R, error)
}

// Sink receives the mapped rows of a run.
type Sink[R any] interface {
	Write(ctx context.Context, rows []R) error
}

// Report summarizes a run.
type Report struct {
	Lines      int             `json:"lines"`
	BadLines   int             `json:"bad_lines"`
	Recovered  int             `json:"recovered"`
	Reconcile  reconcile.Stats `json:"reconcile"`
	Rows       int             `json:"rows"`
	Unmappable int             `json:"unmappable"`
	Limited    int             `json:"limited"`
	Written    bool            `json:"written"`
}

// Pipeline runs one export through decoding, reconciliation and mapping.
type Pipeline[R any] struct {
	dataset Dataset[R]
	decode  ndjson.Config
	limit   int
	logger  *zap.Logger
}

// NewPipeline creates a pipeline for dataset. A positive limit keeps only the
// first limit rows.
func NewPipeline[R any](dataset Dataset[R], decode ndjson.Config, limit int, logger *zap.Logger) *Pipeline[R] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline[R]{dataset: dataset, decode: decode, limit: limit, logger: logger}
}

// Prepare turns raw export bytes into rows.
func (p *Pipeline[R]) Prepare(raw []byte) ([]R, *Report, error) {
	normalizer, err := ndjson.NewNormalizer(p.decode.EnvelopePath)
	if err != nil {
		return nil, nil, err
	}
	reconciler, err := reconcile.New(p.dataset.Profile())
	if err != nil {
		return nil, nil, fmt.Errorf("dataset %s: %w", p.dataset.Name(), err)
	}

	lines := normalizer.Lines(raw)
	decoder := ndjson.NewDecoder(p.decode, p.logger)
	for _, line := range lines {
		rec, err := decoder.Decode(line)
		if err != nil {
			continue
		}
		if _, err := reconciler.Add(rec); err != nil {
			return nil, nil, err
		}
	}

	result := reconciler.Drain(len(decoder.BadLines()))
	report := &Report{
		Lines:     decoder.Lines(),
		BadLines:  len(decoder.BadLines()),
		Recovered: decoder.Recovered(),
		Reconcile: result.Stats,
	}
	p.logger.Info("reconciliation complete",
		zap.Int("lines", report.Lines),
		zap.Int("parents", result.Stats.Parents),
		zap.Int("children", result.Stats.Children),
		zap.Int("orphaned", result.Stats.Orphaned),
		zap.Int("dropped", result.Stats.Dropped),
		zap.Int("bad_lines", report.BadLines))

	if len(result.Parents) > 0 {
		sample := result.Parents[0]
		p.logger.Debug("sample parent",
			zap.String("id", sample.ID),
			zap.Int("children", len(sample.Children)),
			zap.String("raw", ndjson.Preview(string(sample.Raw), 500)))
	}

	rows := make([]R, 0, len(result.Parents))
	for _, parent := range result.Parents {
		row, err := p.dataset.MapRow(parent)
		if err != nil {
			report.Unmappable++
			p.logger.Warn("skipping record", zap.String("id", parent.ID), zap.Error(err))
			continue
		}
		rows = append(rows, row)
	}

	if p.limit > 0 && len(rows) > p.limit {
		report.Limited = len(rows) - p.limit
		rows = rows[:p.limit]
	}
	report.Rows = len(rows)
	return rows, report, nil
}

// Run reads the export, prepares the rows and hands them to sink.
// A nil sink is a dry run.
func (p *Pipeline[R]) Run(ctx context.Context, src source.Source, sink Sink[R]) (*Report, error) {
	started := time.Now()

	raw, err := src.Read(ctx)
	if err != nil {
		return nil, err
	}

	rows, report, err := p.Prepare(raw)
	if err != nil {
		return nil, err
	}

	if sink == nil {
		p.logger.Info("dry run, nothing written", zap.Int("rows", len(rows)))
	} else {
		if err := sink.Write(ctx, rows); err != nil {
			return report, err
		}
		report.Written = true
	}

	p.logger.Info("ingest complete",
		zap.String("source", src.Name()),
		zap.Int("rows", report.Rows),
		zap.Int("unmappable", report.Unmappable),
		zap.Int("limited", report.Limited),
		zap.Duration("elapsed", time.Since(started)))
	return report, nil
}
