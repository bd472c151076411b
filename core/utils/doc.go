// Package utils provides common utility functions for bulk-ingest.
// It includes helper functions for type conversion and optional values that
// the row mappers share.
package utils
