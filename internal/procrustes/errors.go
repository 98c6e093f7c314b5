package procrustes

import "fmt"

// ShapeMismatchError means the source, reference or coupled sets disagree
// in entity count or dimensionality. Fatal for that draw, never retried.
type ShapeMismatchError struct {
	SourceRows, SourceCols int
	RefRows, RefCols       int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch: source is %dx%d, reference is %dx%d",
		e.SourceRows, e.SourceCols, e.RefRows, e.RefCols)
}

// DegenerateInputError means the fit is under-determined: fewer entities
// than dimensions (Rank is -1, no transformation can be produced), or a
// cross-covariance of rank below D-1 (a best-effort transformation is
// still returned alongside the error).
type DegenerateInputError struct {
	Entities, Dims int
	Rank           int
}

func (e *DegenerateInputError) Error() string {
	if e.Rank < 0 {
		return fmt.Sprintf("degenerate input: %d entities in %d dimensions", e.Entities, e.Dims)
	}
	return fmt.Sprintf("degenerate input: cross-covariance rank %d below %d", e.Rank, e.Dims-1)
}

// NumericalInstabilityError means the SVD failed to converge on this
// draw's cross-covariance.
type NumericalInstabilityError struct {
	Entities, Dims int
}

func (e *NumericalInstabilityError) Error() string {
	return fmt.Sprintf("svd failed to converge on %dx%d input", e.Entities, e.Dims)
}
