// Package procrustes removes the rotational, reflective and translational
// indeterminacy of latent-space coordinates sampled by independent MCMC
// chains. The likelihood of a latent-space model depends only on pairwise
// distances, so each chain converges to an arbitrarily rotated copy of
// the space; aligning every chain onto a reference chain makes draws
// comparable for averaging, interval estimation and visualization.
package procrustes

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// rankTol is the relative singular value cutoff used to detect a
// rank-deficient cross-covariance.
const rankTol = 1e-12

// FitTransformation solves the orthogonal Procrustes problem: the
// orthogonal (optionally scaled) transformation mapping source onto
// reference with minimal total squared distance. Both matrices are n×D
// with matching entity ordering. The solution is closed form via the SVD
// of the centered cross-covariance, so it is a global optimum.
//
// With allowReflection false the rotation is constrained to det(R) = +1
// by flipping the singular vector of the smallest singular value. With
// allowScaling true a uniform scale is fitted as well; otherwise the
// scale is fixed at 1.
//
// A rank-deficient cross-covariance (rank below D-1) leaves some
// directions of the rotation unconstrained; the lowest-cost valid
// transformation is still returned, together with a DegenerateInputError
// so the caller can decide whether to keep it.
func FitTransformation(source, reference *mat.Dense, allowScaling, allowReflection bool) (*Transformation, error) {
	sr, sc := source.Dims()
	rr, rc := reference.Dims()
	if sr != rr || sc != rc {
		return nil, &ShapeMismatchError{SourceRows: sr, SourceCols: sc, RefRows: rr, RefCols: rc}
	}
	n, dims := sr, sc
	if n < dims {
		return nil, &DegenerateInputError{Entities: n, Dims: dims, Rank: -1}
	}

	srcCentroid := centroid(source)
	refCentroid := centroid(reference)
	xs := centered(source, srcCentroid)
	xr := centered(reference, refCentroid)

	// Cross-covariance of the centered sets, D×D.
	var cov mat.Dense
	cov.Mul(xr.T(), xs)

	var svd mat.SVD
	if ok := svd.Factorize(&cov, mat.SVDFull); !ok {
		return nil, &NumericalInstabilityError{Entities: n, Dims: dims}
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	sigma := svd.Values(nil)

	var rot mat.Dense
	rot.Mul(&u, v.T())

	// Sign carried by each singular value after an orientation flip; the
	// scale must use the signed trace to stay the constrained optimum.
	signs := make([]float64, dims)
	for i := range signs {
		signs[i] = 1
	}
	if !allowReflection && mat.Det(&rot) < 0 {
		flipColumn(&u, dims-1)
		signs[dims-1] = -1
		rot.Mul(&u, v.T())
	}

	scale := 1.0
	if allowScaling {
		denom := sumSquares(xs)
		var num float64
		for i, sv := range sigma {
			num += signs[i] * sv
		}
		if denom > 0 {
			scale = num / denom
		}
	}

	translation := make([]float64, dims)
	rotated := make([]float64, dims)
	for i := 0; i < dims; i++ {
		for j := 0; j < dims; j++ {
			rotated[i] += rot.At(i, j) * srcCentroid[j]
		}
	}
	for i := 0; i < dims; i++ {
		translation[i] = refCentroid[i] - scale*rotated[i]
	}

	transform := &Transformation{
		Scale:       scale,
		Rotation:    &rot,
		Translation: translation,
	}

	if rank := effectiveRank(sigma); rank < dims-1 {
		return transform, &DegenerateInputError{Entities: n, Dims: dims, Rank: rank}
	}
	return transform, nil
}

func centroid(x *mat.Dense) []float64 {
	n, dims := x.Dims()
	c := make([]float64, dims)
	for i := 0; i < n; i++ {
		floats.Add(c, x.RawRowView(i))
	}
	floats.Scale(1/float64(n), c)
	return c
}

func centered(x *mat.Dense, c []float64) *mat.Dense {
	n, dims := x.Dims()
	out := mat.NewDense(n, dims, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < dims; j++ {
			out.Set(i, j, x.At(i, j)-c[j])
		}
	}
	return out
}

func sumSquares(x *mat.Dense) float64 {
	norm := mat.Norm(x, 2)
	return norm * norm
}

func flipColumn(m *mat.Dense, col int) {
	rows, _ := m.Dims()
	for i := 0; i < rows; i++ {
		m.Set(i, col, -m.At(i, col))
	}
}

func effectiveRank(sigma []float64) int {
	if len(sigma) == 0 || sigma[0] == 0 {
		return 0
	}
	tol := rankTol * sigma[0]
	rank := 0
	for _, sv := range sigma {
		if sv > tol {
			rank++
		}
	}
	return rank
}
