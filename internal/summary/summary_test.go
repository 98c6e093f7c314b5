package summary

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestCoordinateIntervalsMeanAndBounds(t *testing.T) {
	// One entity, one dimension, five chains with known values.
	sets := []*mat.Dense{
		mat.NewDense(1, 1, []float64{1}),
		mat.NewDense(1, 1, []float64{2}),
		mat.NewDense(1, 1, []float64{3}),
		mat.NewDense(1, 1, []float64{4}),
		mat.NewDense(1, 1, []float64{5}),
	}

	intervals, err := CoordinateIntervals(sets, 0.9)
	require.NoError(t, err)
	require.Len(t, intervals, 1)

	assert.InDelta(t, 3.0, intervals[0].Mean[0], 1e-12)
	assert.LessOrEqual(t, intervals[0].Lower[0], intervals[0].Mean[0])
	assert.GreaterOrEqual(t, intervals[0].Upper[0], intervals[0].Mean[0])
	assert.GreaterOrEqual(t, intervals[0].Lower[0], 1.0)
	assert.LessOrEqual(t, intervals[0].Upper[0], 5.0)
}

func TestCoordinateIntervalsShapeMismatch(t *testing.T) {
	sets := []*mat.Dense{
		mat.NewDense(2, 2, nil),
		mat.NewDense(3, 2, nil),
	}
	_, err := CoordinateIntervals(sets, 0.9)
	assert.Error(t, err)
}

func TestCoordinateIntervalsInvalidLevel(t *testing.T) {
	sets := []*mat.Dense{mat.NewDense(1, 1, []float64{1})}
	_, err := CoordinateIntervals(sets, 1.5)
	assert.Error(t, err)
}

func TestPersonItemDistances(t *testing.T) {
	persons := mat.NewDense(2, 2, []float64{
		0, 0,
		3, 4,
	})
	items := mat.NewDense(1, 2, []float64{0, 0})

	dist, err := PersonItemDistances(persons, items)
	require.NoError(t, err)

	assert.InDelta(t, 0, dist.At(0, 0), 1e-12)
	assert.InDelta(t, 5, dist.At(1, 0), 1e-12)
}

func TestPersonItemDistancesDimMismatch(t *testing.T) {
	persons := mat.NewDense(2, 2, nil)
	items := mat.NewDense(2, 3, nil)
	_, err := PersonItemDistances(persons, items)
	assert.Error(t, err)
}

func TestDistancesInvariantUnderSharedRotation(t *testing.T) {
	persons := mat.NewDense(2, 2, []float64{1, 0, 0, 2})
	items := mat.NewDense(2, 2, []float64{-1, 1, 2, 2})

	theta := 0.8
	rot := func(x *mat.Dense) *mat.Dense {
		n, _ := x.Dims()
		out := mat.NewDense(n, 2, nil)
		for i := 0; i < n; i++ {
			px, py := x.At(i, 0), x.At(i, 1)
			out.Set(i, 0, math.Cos(theta)*px-math.Sin(theta)*py)
			out.Set(i, 1, math.Sin(theta)*px+math.Cos(theta)*py)
		}
		return out
	}

	before, err := PersonItemDistances(persons, items)
	require.NoError(t, err)
	after, err := PersonItemDistances(rot(persons), rot(items))
	require.NoError(t, err)

	for p := 0; p < 2; p++ {
		for i := 0; i < 2; i++ {
			assert.InDelta(t, before.At(p, i), after.At(p, i), 1e-12)
		}
	}
}
