// Package ingest wires the stages of one ingestion run.
//
// A Pipeline reads an export from a source, normalizes and decodes its lines,
// reconciles parents with their children, maps each parent to a row through
// the Dataset, and hands the rows to a Sink (the batch executor or a file
// export). Bad lines, orphaned children and unmappable records are counted in
// the Report; only an unreadable input or a failing sink ends the run early.
package ingest
