// Package retry provides a bounded retry combinator with linear backoff.
//
// The wait between attempts is Base multiplied by the attempt number that just
// failed (250ms, 500ms, ... for a 250ms base). No wait follows the final
// attempt. The sleep function is injectable so callers and tests control time.
package retry
