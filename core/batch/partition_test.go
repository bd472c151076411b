package batch_test

import (
	"testing"

	"bulk-ingest/core/batch"

	"github.com/stretchr/testify/assert"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name  string
		rows  int
		size  int
		sizes []int
	}{
		{"Empty", 0, 50, nil},
		{"Exact", 100, 50, []int{50, 50}},
		{"Remainder", 7, 3, []int{3, 3, 1}},
		{"SmallerThanSize", 4, 50, []int{4}},
		{"SizeOne", 3, 1, []int{1, 1, 1}},
		{"NonPositiveSize", 5, 0, []int{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]int, tt.rows)
			for i := range rows {
				rows[i] = i
			}

			batches := batch.Partition(rows, tt.size)

			var sizes []int
			var flat []int
			for _, b := range batches {
				sizes = append(sizes, len(b))
				flat = append(flat, b...)
			}
			assert.Equal(t, tt.sizes, sizes)
			if tt.rows > 0 {
				assert.Equal(t, rows, flat)
			}
		})
	}
}

func TestPartition_DoesNotAliasAppend(t *testing.T) {
	rows := []int{1, 2, 3, 4}
	batches := batch.Partition(rows, 2)

	_ = append(batches[0], 99)
	assert.Equal(t, []int{1, 2, 3, 4}, rows)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, batch.Config{Size: 50, Attempts: 3, BackoffMillis: 250, CooldownMillis: 300}.Validate())
	assert.Error(t, batch.Config{Size: 0, Attempts: 3}.Validate())
	assert.Error(t, batch.Config{Size: 1, Attempts: 0}.Validate())
	assert.Error(t, batch.Config{Size: 1, Attempts: 1, BackoffMillis: -1}.Validate())
}
