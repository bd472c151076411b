package source

// Config selects where the raw export is read from.
// The first non-empty of URL, Object and Path is used.
type Config struct {
	// Path is a local file holding the export.
	Path string `mapstructure:"path" default:""`
	// URL is an HTTP(S) location of the export, e.g. a bulk operation result URL.
	URL string `mapstructure:"url" default:""`
	// Object is a key in the configured storage bucket.
	Object string `mapstructure:"object" default:""`
	// TimeoutSeconds bounds a download.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"300"`
	// Retries is the number of download retries.
	Retries int `mapstructure:"retries" default:"3"`
	// MaxBytes rejects inputs larger than this. Zero means no limit.
	MaxBytes int64 `mapstructure:"max_bytes" default:"0"`
}
