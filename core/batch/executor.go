package batch

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"time"

	"bulk-ingest/core/database"
	"bulk-ingest/core/retry"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// ErrRetriesExhausted is wrapped by a BatchError whose batch failed every attempt.
var ErrRetriesExhausted = retry.ErrExhausted

// BatchError reports the batch that aborted a run.
type BatchError struct {
	// Batch is the 1-based position of the failed batch.
	Batch int
	// Total is the number of batches in the run.
	Total int
	// Rows is the size of the failed batch.
	Rows int
	// Attempts is how many times the batch was tried.
	Attempts int
	Err      error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch %d/%d (%d rows) failed after %d attempts: %v", e.Batch, e.Total, e.Rows, e.Attempts, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// Result summarizes a completed run.
type Result struct {
	Batches  int
	Rows     int
	Attempts int
	// Duplicates counts rows folded into a later row with the same key.
	Duplicates int
}

// Executor upserts rows of type R into one table in batches.
// R must be a gorm model whose columns match the table.
type Executor[R any] struct {
	db       *gorm.DB
	table    string
	key      string
	keyField *schema.Field
	updates  []string
	omit     []string
	cfg      Config
	logger   *zap.Logger
	sleep    retry.SleepFunc
}

// NewExecutor creates an executor writing to table with key as conflict column.
// Every other column of R is overwritten on conflict.
func NewExecutor[R any](db *gorm.DB, table, key string, cfg Config, logger *zap.Logger) (*Executor[R], error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fields, err := database.ModelFields(new(R))
	if err != nil {
		return nil, err
	}
	var keyField *schema.Field
	updates := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.DBName == key {
			keyField = f
			continue
		}
		updates = append(updates, f.DBName)
	}
	if keyField == nil {
		return nil, fmt.Errorf("conflict key %q is not a column of %s", key, table)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Executor[R]{
		db:       db,
		table:    table,
		key:      key,
		keyField: keyField,
		updates:  updates,
		cfg:      cfg,
		logger:   logger,
		sleep:    retry.Sleep,
	}, nil
}

// WithSleep replaces the function used for backoff and cooldown waits.
func (e *Executor[R]) WithSleep(sleep retry.SleepFunc) *Executor[R] {
	e.sleep = sleep
	return e
}

// WithOmit leaves columns out of both the insert and the conflict update.
// The conflict key cannot be omitted.
func (e *Executor[R]) WithOmit(columns ...string) *Executor[R] {
	columns = slices.DeleteFunc(slices.Clone(columns), func(c string) bool { return c == e.key })
	e.omit = append(e.omit, columns...)
	e.updates = slices.DeleteFunc(e.updates, func(c string) bool { return slices.Contains(columns, c) })
	return e
}

// Upsert writes one batch in a single transaction.
func (e *Executor[R]) Upsert(ctx context.Context, rows []R) error {
	if len(rows) == 0 {
		return nil
	}
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Table(e.table)
		if len(e.omit) > 0 {
			q = q.Omit(e.omit...)
		}
		return q.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: e.key}},
				DoUpdates: clause.AssignmentColumns(e.updates),
			}).
			Create(&rows).Error
	})
}

// Run upserts all rows batch by batch, in order. A batch that fails every
// attempt aborts the run with a *BatchError.
func (e *Executor[R]) Run(ctx context.Context, rows []R) (Result, error) {
	var res Result
	rows, res.Duplicates = e.dedupe(ctx, rows)
	if res.Duplicates > 0 {
		e.logger.Warn("rows share a conflict key, keeping the last of each",
			zap.String("key", e.key),
			zap.Int("duplicates", res.Duplicates))
	}
	batches := Partition(rows, e.cfg.Size)

	for i, b := range batches {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("run canceled before batch %d/%d: %w", i+1, len(batches), err)
		}

		log := e.logger.With(zap.Int("batch", i+1), zap.Int("batches", len(batches)), zap.Int("rows", len(b)))
		started := time.Now()

		attempts, err := retry.Do(ctx, retry.Policy{
			Attempts: e.cfg.Attempts,
			Base:     e.cfg.Backoff(),
			Sleep:    e.sleep,
			OnRetry: func(attempt int, wait time.Duration, err error) {
				log.Warn("batch attempt failed, retrying",
					zap.Int("attempt", attempt),
					zap.Duration("backoff", wait),
					zap.Error(err))
			},
		}, func(ctx context.Context, attempt int) error {
			return e.Upsert(ctx, b)
		})
		res.Attempts += attempts
		if err != nil {
			return res, &BatchError{Batch: i + 1, Total: len(batches), Rows: len(b), Attempts: attempts, Err: err}
		}

		res.Batches++
		res.Rows += len(b)
		log.Info("batch upserted",
			zap.Int("attempts", attempts),
			zap.Duration("elapsed", time.Since(started)))

		if i < len(batches)-1 && e.cfg.CooldownMillis > 0 {
			if err := e.sleep(ctx, e.cfg.Cooldown()); err != nil {
				return res, fmt.Errorf("run canceled after batch %d/%d: %w", i+1, len(batches), err)
			}
		}
	}

	return res, nil
}

// dedupe keeps one row per conflict key. The last row wins and takes the
// position of the first.
func (e *Executor[R]) dedupe(ctx context.Context, rows []R) ([]R, int) {
	seen := make(map[any]int, len(rows))
	out := make([]R, 0, len(rows))
	for i := range rows {
		key, _ := e.keyField.ValueOf(ctx, reflect.ValueOf(&rows[i]))
		if j, ok := seen[key]; ok {
			out[j] = rows[i]
			continue
		}
		seen[key] = len(out)
		out = append(out, rows[i])
	}
	return out, len(rows) - len(out)
}

// Write runs the executor and logs the summary.
func (e *Executor[R]) Write(ctx context.Context, rows []R) error {
	res, err := e.Run(ctx, rows)
	if err != nil {
		return err
	}
	e.logger.Info("upsert complete",
		zap.String("table", e.table),
		zap.Int("rows", res.Rows),
		zap.Int("batches", res.Batches),
		zap.Int("attempts", res.Attempts))
	return nil
}
