package source

import (
	"context"
	"errors"
	"fmt"
	"io"

	"bulk-ingest/core/storage"

	"go.uber.org/zap"
)

var (
	// ErrNoInput is returned when no input location is configured.
	ErrNoInput = errors.New("no input configured: set a path, URL or storage object")
	// ErrTooLarge is returned when an input exceeds Config.MaxBytes.
	ErrTooLarge = errors.New("input exceeds the configured size limit")
)

// Source provides the raw bytes of one export.
type Source interface {
	// Name describes the input location for logs.
	Name() string
	// Read returns the whole export.
	Read(ctx context.Context) ([]byte, error)
}

// New selects the source for cfg. The storage client is only required for
// object inputs.
func New(cfg Config, client storage.Client, bucket string, logger *zap.Logger) (Source, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch {
	case cfg.URL != "":
		return NewHTTP(cfg, logger), nil
	case cfg.Object != "":
		if client == nil {
			return nil, fmt.Errorf("storage object %q requested but storage is not configured", cfg.Object)
		}
		return NewObject(client, bucket, cfg.Object, cfg.MaxBytes, logger), nil
	case cfg.Path != "":
		return NewFile(cfg.Path, cfg.MaxBytes, logger), nil
	default:
		return nil, ErrNoInput
	}
}

// readLimited reads r fully, failing once more than max bytes arrive.
func readLimited(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > max {
		return nil, ErrTooLarge
	}
	return data, nil
}
