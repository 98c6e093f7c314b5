// Package draws models sampler draw tables: one row per posterior draw,
// one column per parameter, with Stan-style `prefix[i,d]` parameter
// naming (1-indexed) and a `chain__` column identifying the chain each
// draw belongs to.
package draws

import (
	"fmt"
	"sort"
)

// ChainColumn identifies the chain a draw belongs to.
const ChainColumn = "chain__"

type Table struct {
	Columns []string
	Rows    [][]float64

	index map[string]int
}

func NewTable(columns []string, rows [][]float64) *Table {
	t := &Table{Columns: columns, Rows: rows}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, name := range t.Columns {
		t.index[name] = i
	}
}

func (t *Table) ColumnIndex(name string) (int, bool) {
	idx, ok := t.index[name]
	return idx, ok
}

// ChainIDs returns the distinct chain identifiers in ascending order.
func (t *Table) ChainIDs() ([]int, error) {
	col, ok := t.index[ChainColumn]
	if !ok {
		return nil, fmt.Errorf("draws table has no %q column", ChainColumn)
	}
	seen := make(map[int]bool)
	for _, row := range t.Rows {
		seen[int(row[col])] = true
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

// ChainRows returns the row indices belonging to one chain.
func (t *Table) ChainRows(chainID int) []int {
	col, ok := t.index[ChainColumn]
	if !ok {
		return nil
	}
	var rows []int
	for i, row := range t.Rows {
		if int(row[col]) == chainID {
			rows = append(rows, i)
		}
	}
	return rows
}

// Clone deep-copies the table so aligned coordinates can replace the
// originals without mutating the input.
func (t *Table) Clone() *Table {
	columns := make([]string, len(t.Columns))
	copy(columns, t.Columns)
	rows := make([][]float64, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = make([]float64, len(row))
		copy(rows[i], row)
	}
	return NewTable(columns, rows)
}

// ParamName builds the Stan parameter name for one entity/dimension
// pair, e.g. ParamName("xi", 3, 1) -> "xi[3,1]".
func ParamName(prefix string, entity, dim int) string {
	return fmt.Sprintf("%s[%d,%d]", prefix, entity, dim)
}
