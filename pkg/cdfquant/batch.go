package cdfquant

import (
	"fmt"
	"runtime"
	"sync"
)

// QuantizeBatch applies QuantizePMF independently to every row. All rows
// share the precision and must share a symbol count. workers <= 0 selects
// GOMAXPROCS; a single worker runs the rows serially on the calling
// goroutine.
//
// Validation happens once, before any row work starts, so a rejected batch
// produces no output at all. A row failure during the parallel phase aborts
// the whole batch; no partially corrected CDF is ever returned.
func QuantizeBatch(rows [][]float64, precision int, workers int) ([][]uint32, error) {
	if err := checkPrecision(precision); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyBatch
	}
	n := len(rows[0])
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d symbols, row 0 has %d: %w", i, len(row), n, ErrRaggedBatch)
		}
		if err := checkRow(row, precision); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}

	// One backing array, sliced per row. Rows only ever touch their own
	// disjoint range, so the workers need no locking.
	backing := make([]uint32, len(rows)*(n+1))
	out := make([][]uint32, len(rows))
	for i := range out {
		out[i] = backing[i*(n+1) : (i+1)*(n+1) : (i+1)*(n+1)]
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(rows) {
		workers = len(rows)
	}
	if workers <= 1 {
		for i, row := range rows {
			if err := quantizeRow(row, precision, out[i]); err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
		}
		return out, nil
	}

	// Static contiguous row ranges. Rows in one batch share a symbol count
	// and therefore a per-row cost, so equal-sized chunks keep the workers
	// evenly loaded.
	chunk := (len(rows) + workers - 1) / workers
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := min(start+chunk, len(rows))
		if start >= end {
			break
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if err := quantizeRow(rows[i], precision, out[i]); err != nil {
					errs[w] = fmt.Errorf("row %d: %w", i, err)
					return
				}
			}
		}(w, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
