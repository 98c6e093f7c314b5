package procrustes

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
)

// Aligner aligns a batch of coordinate sets against a reference set.
type Aligner struct {
	opts Options
}

func NewAligner(opts ...Option) *Aligner {
	a := &Aligner{opts: DefaultOptions()}
	for _, opt := range opts {
		opt(&a.opts)
	}
	return a
}

// AlignDraws fits one transformation per non-reference draw against the
// reference draw and applies that same transformation to both the draw
// and, when supplied, its index-paired coupled set. Coupled blocks are
// never transformed independently: sharing the transformation preserves
// their relative geometry within each draw.
//
// Draws are processed concurrently by a bounded worker pool; each worker
// only reads its own source matrix and the shared read-only reference,
// and writes to its own output slot. Per-draw failures are captured in
// the corresponding DrawResult and never abort the batch.
func (a *Aligner) AlignDraws(draws []*mat.Dense, coupled []*mat.Dense) (*Alignment, error) {
	if len(draws) == 0 {
		return nil, errors.New("no draws to align")
	}
	refIdx := a.opts.ReferenceIndex
	if refIdx < 0 || refIdx >= len(draws) {
		return nil, fmt.Errorf("reference index %d out of range for %d draws", refIdx, len(draws))
	}
	if coupled != nil && len(coupled) != len(draws) {
		return nil, fmt.Errorf("coupled sequence has %d entries for %d draws", len(coupled), len(draws))
	}

	out := &Alignment{
		Draws:   make([]*mat.Dense, len(draws)),
		Results: make([]DrawResult, len(draws)),
	}
	if coupled != nil {
		out.Coupled = make([]*mat.Dense, len(draws))
	}

	reference := draws[refIdx]
	_, dims := reference.Dims()

	// Reference passes through under the identity.
	out.Draws[refIdx] = draws[refIdx]
	if coupled != nil {
		out.Coupled[refIdx] = coupled[refIdx]
	}
	out.Results[refIdx] = DrawResult{
		Index:     refIdx,
		Status:    StatusOK,
		Transform: IdentityTransformation(dims),
	}

	workers := a.opts.Workers
	if workers <= 0 {
		workers = DefaultOptions().Workers
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := range draws {
		if i == refIdx {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			a.alignOne(idx, draws[idx], coupledAt(coupled, idx), reference, out)
		}(i)
	}
	wg.Wait()

	ok, degenerate, failed := out.Counts()
	log.Info().
		Int("ok", ok).
		Int("degenerate", degenerate).
		Int("failed", failed).
		Msgf("Aligned %d draw(s) against reference %d", len(draws), refIdx)
	return out, nil
}

// alignOne writes only to index idx of the output slices, so concurrent
// calls for distinct draws need no locking.
func (a *Aligner) alignOne(idx int, source, coupledSet, reference *mat.Dense, out *Alignment) {
	res := DrawResult{Index: idx}

	transform, err := FitTransformation(source, reference, a.opts.AllowScaling, a.opts.AllowReflection)
	var degenerate *DegenerateInputError
	switch {
	case err == nil:
		res.Status = StatusOK
	case errors.As(err, &degenerate) && transform != nil:
		res.Status = StatusDegenerate
		res.Err = err
		log.Warn().Err(err).Msgf("Draw %d alignment is under-determined, keeping best-effort transformation", idx)
	default:
		res.Status = StatusFailed
		res.Err = err
		log.Error().Err(err).Msgf("Draw %d failed to align, passing through unaligned", idx)
	}

	if transform != nil && coupledSet != nil {
		if _, cd := coupledSet.Dims(); cd != len(transform.Translation) {
			cr, _ := coupledSet.Dims()
			rr, rd := reference.Dims()
			res.Status = StatusFailed
			res.Transform = nil
			res.Err = &ShapeMismatchError{SourceRows: cr, SourceCols: cd, RefRows: rr, RefCols: rd}
			log.Error().Err(res.Err).Msgf("Draw %d coupled set disagrees in dimensionality, passing through unaligned", idx)
			transform = nil
		}
	}

	if transform != nil {
		res.Transform = transform
		out.Draws[idx] = ApplyTransformation(source, transform)
		if out.Coupled != nil && coupledSet != nil {
			out.Coupled[idx] = ApplyTransformation(coupledSet, transform)
		}
		res.Disparity = Disparity(out.Draws[idx], reference)
		log.Debug().Msgf("Aligning draw %d to reference. Disparity: %.4f", idx, res.Disparity)
	} else {
		out.Draws[idx] = source
		if out.Coupled != nil {
			out.Coupled[idx] = coupledSet
		}
	}

	out.Results[idx] = res
}

func coupledAt(coupled []*mat.Dense, idx int) *mat.Dense {
	if coupled == nil {
		return nil
	}
	return coupled[idx]
}
