// Package source acquires the raw bytes of a bulk export.
//
// Three inputs are supported, selected in this order from Config:
//   - URL: downloaded with a retrying HTTP client (bulk operation result URLs)
//   - Object: read from the configured storage bucket
//   - Path: read from the local filesystem
//
// A missing or unreadable input is fatal for the run.
package source
