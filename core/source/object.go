package source

import (
	"context"
	"fmt"

	"bulk-ingest/core/storage"

	"github.com/dustin/go-humanize"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Object reads an export from object storage.
type Object struct {
	client   storage.Client
	bucket   string
	key      string
	maxBytes int64
	logger   *zap.Logger
}

// NewObject creates a storage source for bucket/key.
func NewObject(client storage.Client, bucket, key string, maxBytes int64, logger *zap.Logger) *Object {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Object{client: client, bucket: bucket, key: key, maxBytes: maxBytes, logger: logger}
}

func (o *Object) Name() string { return "s3://" + o.bucket + "/" + o.key }

func (o *Object) Read(ctx context.Context) ([]byte, error) {
	exists, err := o.client.BucketExists(ctx, o.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", o.bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", o.bucket)
	}

	info, err := o.client.StatObject(ctx, o.bucket, o.key, minio.StatObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", o.Name(), err)
	}
	if o.maxBytes > 0 && info.Size > o.maxBytes {
		return nil, fmt.Errorf("%s is %s: %w", o.Name(), humanize.Bytes(uint64(info.Size)), ErrTooLarge)
	}

	obj, err := o.client.GetObject(ctx, o.bucket, o.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", o.Name(), err)
	}
	defer obj.Close()

	data, err := readLimited(obj, o.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", o.Name(), err)
	}

	o.logger.Info("input loaded",
		zap.String("source", o.Name()),
		zap.String("size", humanize.Bytes(uint64(len(data)))))
	return data, nil
}
