package draws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testTable() *Table {
	columns := []string{
		"chain__", "lp__",
		"xi[1,1]", "xi[1,2]",
		"xi[2,1]", "xi[2,2]",
	}
	rows := [][]float64{
		{1, -10, 0.0, 1.0, 2.0, 3.0},
		{1, -11, 1.0, 2.0, 3.0, 4.0},
		{2, -12, 5.0, 5.0, 5.0, 5.0},
	}
	return NewTable(columns, rows)
}

func TestExtractChainCoordinatesMeansPerChain(t *testing.T) {
	table := testTable()

	coords, err := ExtractChainCoordinates(table, 2, 2, "xi")
	require.NoError(t, err)
	require.Len(t, coords, 2)

	chain1 := coords[1]
	assert.InDelta(t, 0.5, chain1.At(0, 0), 1e-12)
	assert.InDelta(t, 1.5, chain1.At(0, 1), 1e-12)
	assert.InDelta(t, 2.5, chain1.At(1, 0), 1e-12)
	assert.InDelta(t, 3.5, chain1.At(1, 1), 1e-12)

	chain2 := coords[2]
	assert.InDelta(t, 5.0, chain2.At(0, 0), 1e-12)
	assert.InDelta(t, 5.0, chain2.At(1, 1), 1e-12)
}

func TestExtractChainCoordinatesMissingParameter(t *testing.T) {
	table := testTable()

	_, err := ExtractChainCoordinates(table, 3, 2, "xi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xi[3,1]")
}

func TestReplaceChainCoordinatesLeavesOtherColumnsUntouched(t *testing.T) {
	table := testTable()

	aligned := map[int]*mat.Dense{
		1: mat.NewDense(2, 2, []float64{9, 8, 7, 6}),
		2: mat.NewDense(2, 2, []float64{1, 1, 1, 1}),
	}
	out, err := ReplaceChainCoordinates(table, aligned, "xi")
	require.NoError(t, err)

	// Chain 1 rows both carry the chain's aligned coordinates.
	for _, rowIdx := range out.ChainRows(1) {
		assert.Equal(t, 9.0, out.Rows[rowIdx][2])
		assert.Equal(t, 8.0, out.Rows[rowIdx][3])
		assert.Equal(t, 7.0, out.Rows[rowIdx][4])
		assert.Equal(t, 6.0, out.Rows[rowIdx][5])
	}
	// Metadata columns untouched.
	assert.Equal(t, -10.0, out.Rows[0][1])
	assert.Equal(t, -12.0, out.Rows[2][1])
	// Input table not mutated.
	assert.Equal(t, 0.0, table.Rows[0][2])
}

func TestParamName(t *testing.T) {
	assert.Equal(t, "zt_centered[3,1]", ParamName("zt_centered", 3, 1))
}
