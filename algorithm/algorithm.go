// Package algorithm defines the external algorithm contract: a
// copy-constructible evolve step plus the thread-safety and naming
// attributes the island core reads on every evolve task.
package algorithm

import (
	"encoding/gob"

	"github.com/volpe-framework/evocore/population"
	"github.com/volpe-framework/evocore/tier"
)

// Algorithm is the minimal external contract named in the data model.
type Algorithm interface {
	// Evolve runs one evolutionary step over pop, returning the evolved
	// population. Implementations must treat pop as read-only and return
	// a new value rather than mutating in place, so the thread island
	// UDI's copy-release-evolve-relock-assign pattern stays correct.
	Evolve(pop population.Population) (population.Population, error)
	// ThreadSafety returns the algorithm's self-declared, stable tier.
	ThreadSafety() tier.Safety
	// Name returns a display name used in error messages and stream output.
	Name() string
	// Clone returns a deep, independent copy of the algorithm, used by
	// the thread island UDI before it releases its algorithm lock.
	Clone() Algorithm
}

// Register registers a concrete Algorithm type with the process-wide
// gob registry, so islands holding it can round-trip through Island.Save/Load.
func Register(sample Algorithm) {
	gob.Register(sample)
}
