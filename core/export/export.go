package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"time"

	"bulk-ingest/core/database"

	"gorm.io/datatypes"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// WriteCSV writes rows as CSV with a header of column names.
// Nil values become empty fields.
func WriteCSV[R any](w io.Writer, rows []R) error {
	fields, err := database.ModelFields(new(R))
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.DBName
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	record := make([]string, len(fields))
	for n := range rows {
		rv := reflect.ValueOf(&rows[n]).Elem()
		for i, f := range fields {
			v, _ := f.ValueOf(context.Background(), rv)
			record[i] = formatValue(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", n+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes rows as an indented JSON array.
func WriteJSON[R any](w io.Writer, rows []R) error {
	if rows == nil {
		rows = []R{}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode rows: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write json: %w", err)
	}
	return nil
}

// Write dispatches on format.
func Write[R any](w io.Writer, format string, rows []R) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatJSON:
		return WriteJSON(w, rows)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

func formatValue(v any) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}

	switch x := rv.Interface().(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case datatypes.JSON:
		if len(x) == 0 {
			return ""
		}
		return string(x)
	case json.RawMessage:
		return string(x)
	case fmt.Stringer:
		return x.String()
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	}
	return fmt.Sprint(rv.Interface())
}
