package ndjson_test

import (
	"testing"

	"bulk-ingest/core/ndjson"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizer_Lines(t *testing.T) {
	n, err := ndjson.NewNormalizer("")
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "PlainJSONL",
			input: "{\"id\":\"a\"}\n\n  {\"id\":\"b\"}  \n",
			want:  []string{`{"id":"a"}`, `{"id":"b"}`},
		},
		{
			name:  "ArrayEnvelopeWithEmbeddedStream",
			input: `[{"meta":1},{"json":{"data":"{\"id\":\"a\"}\n{\"id\":\"b\"}"}}]`,
			want:  []string{`{"id":"a"}`, `{"id":"b"}`},
		},
		{
			name:  "ArrayOfRecords",
			input: `[{"id":"a"},{"id":"b"}]`,
			want:  []string{`{"id":"a"}`, `{"id":"b"}`},
		},
		{
			name:  "ObjectEnvelope",
			input: `{"json":{"data":"{\"id\":\"a\"}\n\n{\"id\":\"b\"}\n"}}`,
			want:  []string{`{"id":"a"}`, `{"id":"b"}`},
		},
		{
			name:  "SingleObject",
			input: `  {"id":"a"}  `,
			want:  []string{`{"id":"a"}`},
		},
		{
			name:  "InvalidEnvelopeFallsBackToRaw",
			input: "{\"id\":\"a\"}\n{broken\n",
			want:  []string{`{"id":"a"}`, `{broken`},
		},
		{
			name:  "NotJSON",
			input: "hello\nworld",
			want:  []string{"hello", "world"},
		},
		{
			name:  "Empty",
			input: "  \n ",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Lines([]byte(tt.input)))
		})
	}
}

func TestNormalizer_CustomPath(t *testing.T) {
	n, err := ndjson.NewNormalizer("$.payload")
	require.NoError(t, err)

	lines := n.Lines([]byte(`{"payload":"{\"id\":\"a\"}"}`))
	assert.Equal(t, []string{`{"id":"a"}`}, lines)
}
