package export_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bulk-ingest/core/export"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type sampleRow struct {
	ID        int64          `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Note      *string        `gorm:"column:note" json:"note"`
	Amount    *float64       `gorm:"column:amount" json:"amount"`
	Exempt    bool           `gorm:"column:tax_exempt" json:"tax_exempt"`
	Seen      *time.Time     `gorm:"column:seen_at" json:"seen_at"`
	LineItems datatypes.JSON `gorm:"column:line_items" json:"line_items"`
}

func ptr[T any](v T) *T { return &v }

func TestWriteCSV(t *testing.T) {
	seen := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []sampleRow{
		{ID: 1, Note: ptr(`said "hi", left`), Amount: ptr(10.5), Exempt: true, Seen: &seen, LineItems: datatypes.JSON(`[{"sku":"A"}]`)},
		{ID: 2, Note: ptr("multi\nline")},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, rows))

	want := "id,note,amount,tax_exempt,seen_at,line_items\n" +
		"1,\"said \"\"hi\"\", left\",10.5,true,2024-03-01T12:00:00Z,\"[{\"\"sku\"\":\"\"A\"\"}]\"\n" +
		"2,\"multi\nline\",,false,,\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV[sampleRow](&buf, nil))
	assert.Equal(t, "id,note,amount,tax_exempt,seen_at,line_items\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteJSON(&buf, []sampleRow{{ID: 7, Note: ptr("x")}}))

	assert.Contains(t, buf.String(), "\n  {\n    \"id\": 7,")
	assert.Contains(t, buf.String(), `"amount": null`)

	buf.Reset()
	require.NoError(t, export.WriteJSON[sampleRow](&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWrite_UnknownFormat(t *testing.T) {
	assert.Error(t, export.Write(&bytes.Buffer{}, "xml", []sampleRow{}))
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")

	sink, err := export.NewFileSink[sampleRow](path, export.FormatCSV, nil)
	require.NoError(t, err)
	require.NoError(t, sink.Write(context.Background(), []sampleRow{{ID: 1}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,note,amount,tax_exempt,seen_at,line_items\n1,,,false,,\n", string(data))

	_, err = export.NewFileSink[sampleRow]("", export.FormatCSV, nil)
	assert.Error(t, err)
	_, err = export.NewFileSink[sampleRow](path, "xml", nil)
	assert.Error(t, err)
}
