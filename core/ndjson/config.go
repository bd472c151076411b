package ndjson

// Config holds configuration for line decoding diagnostics.
type Config struct {
	// PreviewLength is the number of characters kept from an undecodable line.
	PreviewLength int `mapstructure:"preview_length" default:"200"`
	// ProgressEvery emits a progress entry every N lines. Zero disables it.
	ProgressEvery int `mapstructure:"progress_every" default:"1000"`
	// EnvelopePath is the JSONPath of the record stream inside an envelope.
	EnvelopePath string `mapstructure:"envelope_path" default:"$.json.data"`
}
