package ndjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ohler55/ojg/jp"
)

// DefaultEnvelopePath is where bulk export envelopes carry the record stream.
const DefaultEnvelopePath = "$.json.data"

// Normalizer turns raw export bytes into a list of record lines.
type Normalizer struct {
	envelope jp.Expr
}

// NewNormalizer compiles the envelope path. An empty path uses DefaultEnvelopePath.
func NewNormalizer(envelopePath string) (*Normalizer, error) {
	if envelopePath == "" {
		envelopePath = DefaultEnvelopePath
	}
	expr, err := jp.ParseString(envelopePath)
	if err != nil {
		return nil, fmt.Errorf("invalid envelope path %q: %w", envelopePath, err)
	}
	return &Normalizer{envelope: expr}, nil
}

// Lines returns the non-empty, trimmed record lines of raw.
func (n *Normalizer) Lines(raw []byte) []string {
	return splitLines(n.Stream(raw))
}

// Stream resolves envelope framing and returns the newline delimited record stream.
// Input that is not an envelope is returned verbatim.
func (n *Normalizer) Stream(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || (trimmed[0] != '[' && trimmed[0] != '{') {
		return string(raw)
	}

	var envelope any
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		// Plain JSONL also starts with '{'
		return string(raw)
	}

	switch v := envelope.(type) {
	case []any:
		for _, element := range v {
			if data, ok := n.embedded(element); ok {
				return data
			}
		}
		lines := make([]string, 0, len(v))
		for _, element := range v {
			b, err := json.Marshal(element)
			if err != nil {
				continue
			}
			lines = append(lines, string(b))
		}
		return strings.Join(lines, "\n")
	case map[string]any:
		if data, ok := n.embedded(v); ok {
			return data
		}
	}

	b, err := json.Marshal(envelope)
	if err != nil {
		return string(raw)
	}
	return string(b)
}

func (n *Normalizer) embedded(value any) (string, bool) {
	if _, ok := value.(map[string]any); !ok {
		return "", false
	}
	for _, match := range n.envelope.Get(value) {
		if data, ok := match.(string); ok {
			return data, true
		}
	}
	return "", false
}

func splitLines(stream string) []string {
	parts := strings.Split(stream, "\n")
	lines := make([]string, 0, len(parts))
	for _, part := range parts {
		line := strings.TrimSpace(part)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
