package batch

// Partition splits rows into consecutive batches of at most size rows,
// preserving order. The batches share the backing array of rows.
func Partition[R any](rows []R, size int) [][]R {
	if len(rows) == 0 {
		return nil
	}
	if size < 1 {
		size = len(rows)
	}

	batches := make([][]R, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		batches = append(batches, rows[start:end:end])
	}
	return batches
}
