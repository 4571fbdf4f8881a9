// Package problem defines the external problem contract the evolution
// core depends on: fitness evaluation, dimensions, thread-safety tier
// and the optional batch_fitness capability.
package problem

import (
	"encoding/gob"

	"github.com/volpe-framework/evocore/tier"
)

// Problem is the minimal external contract named in the data model: a
// fixed decision-vector length, a fixed fitness-vector length, a
// fitness call that increments an internal evaluation counter, a
// self-declared thread-safety tier, and a display name.
type Problem interface {
	// NX returns the decision vector length. Constant per instance.
	NX() int
	// NF returns the fitness vector length. Constant per instance.
	NF() int
	// Fitness evaluates a single decision vector of length NX, returning
	// a fitness vector of length NF. Increments the internal fevals
	// counter on success.
	Fitness(dv []float64) ([]float64, error)
	// ThreadSafety returns the problem's self-declared, stable tier.
	ThreadSafety() tier.Safety
	// Name returns a display name used in error messages and stream output.
	Name() string
	// IncrementFevals bumps the evaluation counter by n. Used by drivers
	// that evaluate on copies of the problem and must compensate the
	// original afterward (thread_bfe's basic-tier path).
	IncrementFevals(n int)
	// Clone returns a deep, independent copy. Required so drivers and
	// UDIs that need a per-worker or per-task copy (tier basic) can
	// obtain one without aliasing the original's internal state.
	Clone() Problem
}

// BatchFitnessEvaluator is the optional capability a Problem may
// implement: a native batch_fitness member. Gated by HasBatchFitness.
type BatchFitnessEvaluator interface {
	// BatchFitness evaluates a flat batch of decision vectors, stride NX,
	// returning a flat batch of fitness vectors, stride NF.
	BatchFitness(dvs []float64) ([]float64, error)
}

// HasBatchFitness reports whether p implements BatchFitnessEvaluator.
func HasBatchFitness(p Problem) bool {
	_, ok := p.(BatchFitnessEvaluator)
	return ok
}

// Register registers a concrete Problem type with the process-wide gob
// registry, so populations holding it can round-trip through
// population.GobEncode/GobDecode.
func Register(sample Problem) {
	gob.Register(sample)
}
