package procrustes

import (
	"runtime"

	"gonum.org/v1/gonum/mat"
)

// Transformation is a rigid (optionally scaled) map of a coordinate set:
// y = Scale * Rotation * x + Translation, applied per entity.
type Transformation struct {
	Scale       float64
	Rotation    *mat.Dense // D×D orthogonal
	Translation []float64  // length D
}

// DrawStatus reports the outcome of aligning a single draw.
type DrawStatus string

const (
	StatusOK         DrawStatus = "ok"
	StatusDegenerate DrawStatus = "degenerate"
	StatusFailed     DrawStatus = "failed"
)

// DrawResult carries the per-draw transformation, fit quality and any
// error captured while aligning that draw. Errors never abort the batch.
type DrawResult struct {
	Index     int
	Status    DrawStatus
	Transform *Transformation
	Disparity float64
	Err       error
}

// Alignment is the output of a batch alignment: one entry per input draw,
// index-aligned with the inputs. Failed draws pass through unaligned.
type Alignment struct {
	Draws   []*mat.Dense
	Coupled []*mat.Dense // nil when no coupled input was supplied
	Results []DrawResult
}

// Counts tallies per-draw statuses for end-of-batch reporting.
func (a *Alignment) Counts() (ok, degenerate, failed int) {
	for _, res := range a.Results {
		switch res.Status {
		case StatusOK:
			ok++
		case StatusDegenerate:
			degenerate++
		case StatusFailed:
			failed++
		}
	}
	return ok, degenerate, failed
}

type Options struct {
	AllowScaling    bool
	AllowReflection bool
	ReferenceIndex  int
	Workers         int
}

type Option func(*Options)

func WithScaling(allow bool) Option {
	return func(o *Options) {
		o.AllowScaling = allow
	}
}

func WithReflection(allow bool) Option {
	return func(o *Options) {
		o.AllowReflection = allow
	}
}

func WithReferenceIndex(idx int) Option {
	return func(o *Options) {
		o.ReferenceIndex = idx
	}
}

func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

func DefaultOptions() Options {
	return Options{
		AllowScaling:    false,
		AllowReflection: false,
		ReferenceIndex:  0,
		Workers:         runtime.NumCPU(),
	}
}
