package procrustes

import "gonum.org/v1/gonum/mat"

// ApplyTransformation maps every entity of points through the
// transformation: y = scale * R * x + translation. Pure function; entity
// ordering and matrix shape are preserved.
func ApplyTransformation(points *mat.Dense, t *Transformation) *mat.Dense {
	n, dims := points.Dims()
	out := mat.NewDense(n, dims, nil)
	// Rows are entities, so the rotation applies from the right transposed.
	out.Mul(points, t.Rotation.T())
	out.Scale(t.Scale, out)
	for i := 0; i < n; i++ {
		for j := 0; j < dims; j++ {
			out.Set(i, j, out.At(i, j)+t.Translation[j])
		}
	}
	return out
}

// IdentityTransformation returns the do-nothing transformation in dims
// dimensions, used for the reference draw.
func IdentityTransformation(dims int) *Transformation {
	rot := mat.NewDense(dims, dims, nil)
	for i := 0; i < dims; i++ {
		rot.Set(i, i, 1)
	}
	return &Transformation{
		Scale:       1,
		Rotation:    rot,
		Translation: make([]float64, dims),
	}
}

// Disparity is the summed squared distance between two index-paired
// coordinate sets. Shapes must already agree.
func Disparity(a, b *mat.Dense) float64 {
	var diff mat.Dense
	diff.Sub(a, b)
	norm := mat.Norm(&diff, 2)
	return norm * norm
}
