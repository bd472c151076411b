package ndjson

import (
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// ErrUndecodable is returned for a line that fails both decode attempts.
var ErrUndecodable = errors.New("undecodable line")

var unescaper = strings.NewReplacer(`\n`, "\n", `\"`, `"`, `\'`, `'`)

// Record is one successfully decoded line.
type Record struct {
	// Line is the 1-based position of the line in the stream.
	Line int
	// Raw is the JSON text of the record after any unwrapping.
	Raw json.RawMessage
	// Fields holds the top-level members when the record is an object.
	Fields map[string]any
}

// ID returns the string identifier of the record, if any.
func (r Record) ID() string {
	id, _ := r.Fields["id"].(string)
	return id
}

// TypeName returns the __typename member, if any.
func (r Record) TypeName() string {
	name, _ := r.Fields["__typename"].(string)
	return name
}

// BadLine describes a line that could not be decoded.
type BadLine struct {
	Line    int
	Preview string
	Err     error
}

// Decoder decodes record lines and keeps diagnostics about the ones it could not.
type Decoder struct {
	cfg    Config
	logger *zap.Logger

	lines     int
	recovered int
	bad       []BadLine
}

// NewDecoder creates a Decoder. A nil logger disables progress output.
func NewDecoder(cfg Config, logger *zap.Logger) *Decoder {
	if cfg.PreviewLength <= 0 {
		cfg.PreviewLength = 200
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Decoder{cfg: cfg, logger: logger}
}

// Decode decodes a single line. It never panics; failures are counted and returned.
func (d *Decoder) Decode(line string) (Record, error) {
	d.lines++
	if d.cfg.ProgressEvery > 0 && d.lines%d.cfg.ProgressEvery == 0 {
		d.logger.Info("decode progress",
			zap.Int("lines", d.lines),
			zap.Int("bad_lines", len(d.bad)))
	}

	if rec, ok := decodeValue(line); ok {
		rec.Line = d.lines
		if nested, ok := unwrapString(rec); ok {
			d.recovered++
			nested.Line = d.lines
			return nested, nil
		}
		return rec, nil
	}

	if inner, ok := unquote(line); ok {
		if rec, ok := decodeValue(inner); ok {
			d.recovered++
			rec.Line = d.lines
			return rec, nil
		}
	}

	bad := BadLine{Line: d.lines, Preview: Preview(line, d.cfg.PreviewLength), Err: ErrUndecodable}
	d.bad = append(d.bad, bad)
	d.logger.Warn("skipping undecodable line",
		zap.Int("line", bad.Line),
		zap.String("preview", bad.Preview))
	return Record{}, ErrUndecodable
}

// DecodeAll decodes every line and returns the records in stream order.
func (d *Decoder) DecodeAll(lines []string) []Record {
	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		rec, err := d.Decode(line)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// Lines returns the number of lines seen.
func (d *Decoder) Lines() int { return d.lines }

// Recovered returns how many lines needed unwrapping to decode.
func (d *Decoder) Recovered() int { return d.recovered }

// BadLines returns the undecodable lines in stream order.
func (d *Decoder) BadLines() []BadLine { return d.bad }

// Preview truncates s to at most n runes.
func Preview(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func decodeValue(text string) (Record, bool) {
	raw := json.RawMessage(text)
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return Record{}, false
	}
	fields, _ := value.(map[string]any)
	return Record{Raw: raw, Fields: fields}, true
}

// unwrapString handles a line whose JSON value is itself an encoded object.
func unwrapString(rec Record) (Record, bool) {
	if rec.Fields != nil {
		return Record{}, false
	}
	var inner string
	if err := json.Unmarshal(rec.Raw, &inner); err != nil {
		return Record{}, false
	}
	nested, ok := decodeValue(inner)
	if !ok || nested.Fields == nil {
		return Record{}, false
	}
	return nested, true
}

func unquote(line string) (string, bool) {
	if len(line) < 2 {
		return "", false
	}
	first, last := line[0], line[len(line)-1]
	if first != last || (first != '"' && first != '\'') {
		return "", false
	}
	return unescaper.Replace(line[1 : len(line)-1]), true
}
