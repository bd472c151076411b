package utils_test

import (
	"encoding/json"
	"testing"
	"time"

	"bulk-ingest/core/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToFloat(t *testing.T) {
	tests := []struct {
		name   string
		val    any
		want   float64
		wantOK bool
	}{
		{"Float", 1.5, 1.5, true},
		{"Int", 3, 3, true},
		{"Number", json.Number("19.99"), 19.99, true},
		{"String", " 42.10 ", 42.1, true},
		{"StringPtr", utils.Ptr("7"), 7, true},
		{"NilStringPtr", (*string)(nil), 0, false},
		{"Nil", nil, 0, false},
		{"Garbage", "abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := utils.ToFloat(tt.val)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestToInt64(t *testing.T) {
	n, ok := utils.ToInt64("1001")
	assert.True(t, ok)
	assert.Equal(t, int64(1001), n)

	n, ok = utils.ToInt64(12.0)
	assert.True(t, ok)
	assert.Equal(t, int64(12), n)

	_, ok = utils.ToInt64(12.5)
	assert.False(t, ok)
}

func TestCoalesce(t *testing.T) {
	assert.Nil(t, utils.Coalesce())
	assert.Nil(t, utils.Coalesce(nil, utils.Ptr(" ")))
	assert.Equal(t, "b", *utils.Coalesce(nil, utils.Ptr(""), utils.Ptr("b"), utils.Ptr("c")))
}

func TestParseTime(t *testing.T) {
	got := utils.ParseTime(utils.Ptr("2024-01-15T10:30:00Z"))
	require.NotNil(t, got)
	assert.True(t, got.Equal(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)))

	assert.Nil(t, utils.ParseTime(nil))
	assert.Nil(t, utils.ParseTime(utils.Ptr("")))
	assert.Nil(t, utils.ParseTime(utils.Ptr("yesterday")))
}
