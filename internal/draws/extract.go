package draws

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ExtractChainCoordinates reduces a draws table to one coordinate matrix
// per chain: the per-chain posterior mean of every prefix[i,d] parameter,
// reshaped to nEntities×dims. Entity ordering follows the 1-indexed
// parameter names, so every chain's matrix shares the same indexing.
func ExtractChainCoordinates(t *Table, nEntities, dims int, prefix string) (map[int]*mat.Dense, error) {
	chainIDs, err := t.ChainIDs()
	if err != nil {
		return nil, err
	}

	// Resolve the column of every prefix[i,d] parameter up front.
	cols := make([]int, nEntities*dims)
	for i := 0; i < nEntities; i++ {
		for d := 0; d < dims; d++ {
			name := ParamName(prefix, i+1, d+1)
			idx, ok := t.ColumnIndex(name)
			if !ok {
				return nil, fmt.Errorf("draws table missing parameter %q", name)
			}
			cols[i*dims+d] = idx
		}
	}

	coords := make(map[int]*mat.Dense, len(chainIDs))
	for _, chainID := range chainIDs {
		rows := t.ChainRows(chainID)
		if len(rows) == 0 {
			continue
		}
		m := mat.NewDense(nEntities, dims, nil)
		values := make([]float64, len(rows))
		for i := 0; i < nEntities; i++ {
			for d := 0; d < dims; d++ {
				col := cols[i*dims+d]
				for k, rowIdx := range rows {
					values[k] = t.Rows[rowIdx][col]
				}
				m.Set(i, d, stat.Mean(values, nil))
			}
		}
		coords[chainID] = m
	}
	return coords, nil
}

// ReplaceChainCoordinates copies a table and overwrites every
// prefix[i,d] column of each chain's rows with that chain's aligned
// coordinates, leaving all other parameters and metadata untouched.
func ReplaceChainCoordinates(t *Table, coords map[int]*mat.Dense, prefix string) (*Table, error) {
	out := t.Clone()
	for chainID, m := range coords {
		nEntities, dims := m.Dims()
		rows := out.ChainRows(chainID)
		for i := 0; i < nEntities; i++ {
			for d := 0; d < dims; d++ {
				name := ParamName(prefix, i+1, d+1)
				col, ok := out.ColumnIndex(name)
				if !ok {
					return nil, fmt.Errorf("draws table missing parameter %q", name)
				}
				for _, rowIdx := range rows {
					out.Rows[rowIdx][col] = m.At(i, d)
				}
			}
		}
	}
	return out, nil
}
