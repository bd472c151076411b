// Package ndjson turns a raw bulk export into decoded records.
//
// Normalizer unwraps the envelope framings an export may arrive in (a JSON
// array of lines, or an object carrying the stream at a JSONPath such as
// $.json.data) and yields trimmed, non-empty lines. Decoder decodes each line,
// recovering quoted or double-encoded lines, and counts the ones it cannot
// decode with a short preview. Decoding never aborts the stream.
package ndjson
