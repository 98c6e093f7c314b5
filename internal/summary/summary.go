// Package summary computes posterior summaries over aligned latent
// coordinates. The summaries only make sense after alignment: without a
// shared orientation, averaging coordinates across chains mixes
// arbitrarily rotated spaces.
package summary

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// EntityInterval holds the posterior mean coordinate and the equal-tailed
// credible interval bounds for one entity, per latent dimension.
type EntityInterval struct {
	Mean  []float64
	Lower []float64
	Upper []float64
}

// CoordinateIntervals pools index-paired coordinate sets (one per chain
// or draw) and returns per-entity means and equal-tailed credible
// intervals at the given level (e.g. 0.9 for a 90% interval).
func CoordinateIntervals(sets []*mat.Dense, level float64) ([]EntityInterval, error) {
	if len(sets) == 0 {
		return nil, fmt.Errorf("no coordinate sets to summarize")
	}
	if level <= 0 || level >= 1 {
		return nil, fmt.Errorf("credible level %v outside (0, 1)", level)
	}
	n, dims := sets[0].Dims()
	for i, s := range sets[1:] {
		if sn, sd := s.Dims(); sn != n || sd != dims {
			return nil, fmt.Errorf("coordinate set %d is %dx%d, want %dx%d", i+1, sn, sd, n, dims)
		}
	}

	alpha := (1 - level) / 2
	intervals := make([]EntityInterval, n)
	values := make([]float64, len(sets))
	for i := 0; i < n; i++ {
		ei := EntityInterval{
			Mean:  make([]float64, dims),
			Lower: make([]float64, dims),
			Upper: make([]float64, dims),
		}
		for d := 0; d < dims; d++ {
			for k, s := range sets {
				values[k] = s.At(i, d)
			}
			ei.Mean[d] = stat.Mean(values, nil)
			sort.Float64s(values)
			ei.Lower[d] = stat.Quantile(alpha, stat.Empirical, values, nil)
			ei.Upper[d] = stat.Quantile(1-alpha, stat.Empirical, values, nil)
		}
		intervals[i] = ei
	}
	return intervals, nil
}

// PersonItemDistances returns the nPersons×nItems matrix of Euclidean
// latent distances, the quantity latent-space response models consume.
func PersonItemDistances(persons, items *mat.Dense) (*mat.Dense, error) {
	np, pd := persons.Dims()
	ni, id := items.Dims()
	if pd != id {
		return nil, fmt.Errorf("person coordinates are %d-dimensional, item coordinates %d-dimensional", pd, id)
	}
	dist := mat.NewDense(np, ni, nil)
	for p := 0; p < np; p++ {
		for i := 0; i < ni; i++ {
			var sum float64
			for d := 0; d < pd; d++ {
				diff := persons.At(p, d) - items.At(i, d)
				sum += diff * diff
			}
			dist.Set(p, i, math.Sqrt(sum))
		}
	}
	return dist, nil
}
