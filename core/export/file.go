package export

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// FileSink writes the row collection to a file instead of the database.
type FileSink[R any] struct {
	path   string
	format string
	logger *zap.Logger
}

// NewFileSink creates a sink writing format ("csv" or "json") to path.
func NewFileSink[R any](path, format string, logger *zap.Logger) (*FileSink[R], error) {
	if format != FormatCSV && format != FormatJSON {
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
	if path == "" {
		return nil, fmt.Errorf("an output file is required for %s export", format)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSink[R]{path: path, format: format, logger: logger}, nil
}

func (s *FileSink[R]) Write(ctx context.Context, rows []R) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", s.path, err)
	}

	bw := bufio.NewWriter(f)
	if err := Write(bw, s.format, rows); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", s.path, err)
	}

	size := uint64(0)
	if info, err := os.Stat(s.path); err == nil {
		size = uint64(info.Size())
	}
	s.logger.Info("export written",
		zap.String("path", s.path),
		zap.String("format", s.format),
		zap.Int("rows", len(rows)),
		zap.String("size", humanize.Bytes(size)))
	return nil
}
