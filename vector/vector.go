// Package vector validates the flat decision-vector/fitness-vector
// batches that flow through the BFE container: stride checks and an
// overflow guard for the output vector's size.
package vector

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/volpe-framework/evocore/evoerr"
)

// CheckInputDVs validates a flat decision-vector batch against nx: nx
// must be positive and the batch length a multiple of nx (an empty
// batch is accepted). No side effects on failure.
func CheckInputDVs(dvs []float64, nx int, problemName string) error {
	if nx <= 0 {
		return evoerr.InvalidArgumentf("problem '%s' declares a non-positive decision vector length %d", problemName, nx)
	}
	if len(dvs)%nx != 0 {
		return evoerr.InvalidArgumentf("the size of the input batch of decision vectors (%d) is not a multiple of the problem '%s' dimension (%d)", len(dvs), problemName, nx)
	}
	return nil
}

// CheckOutputFVs validates that a returned fitness batch has exactly
// k*nf entries, where k is the number of individuals in the input batch.
func CheckOutputFVs(fvs []float64, k, nf int, problemName string) error {
	want := k * nf
	if len(fvs) != want {
		return evoerr.InvalidArgumentf("the batch fitness evaluator for problem '%s' returned a vector of length %d, but the expected length is %d", problemName, len(fvs), want)
	}
	return nil
}

// NumIndividuals returns len(dvs)/nx. Callers must call CheckInputDVs first.
func NumIndividuals(dvs []float64, nx int) int {
	return len(dvs) / nx
}

// CheckOverflow rejects batch sizes whose fitness-output length (k*nf)
// would overflow a machine int.
func CheckOverflow(k, nf int, problemName string) error {
	if nf <= 0 {
		return nil
	}
	if k > math.MaxInt/nf {
		return evoerr.Overflowf("overflow detected in the computation of the size of the output of a batch fitness evaluation for problem '%s'", problemName)
	}
	return nil
}

// HasNaN reports whether any coordinate of v is NaN. Used only by the
// opt-in debug NaN check (bfe.StrictNaN); NaN policy is left
// to the fitness caller by default.
func HasNaN(v []float64) bool {
	return floats.HasNaN(v)
}
