package source

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// File reads an export from the local filesystem.
type File struct {
	path     string
	maxBytes int64
	logger   *zap.Logger
}

// NewFile creates a file source.
func NewFile(path string, maxBytes int64, logger *zap.Logger) *File {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &File{path: path, maxBytes: maxBytes, logger: logger}
}

func (f *File) Name() string { return "file:" + f.path }

func (f *File) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input %s: %w", f.path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat input %s: %w", f.path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("input %s is a directory", f.path)
	}

	data, err := readLimited(file, f.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read input %s: %w", f.path, err)
	}

	f.logger.Info("input loaded",
		zap.String("source", f.Name()),
		zap.String("size", humanize.Bytes(uint64(len(data)))))
	return data, nil
}
