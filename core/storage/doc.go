// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so that bulk exports parked in AWS S3 or a
// self-hosted MinIO bucket can be used as ingestion input.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the source bucket.
//   - StatObject: Reads object size before download.
//   - GetObject: Retrieves content as a stream.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "exports")
package storage
