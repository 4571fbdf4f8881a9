// Package demoproblem provides a reference Problem implementation so
// the evolution core is runnable and testable end to end.
package demoproblem

import (
	"bytes"
	"encoding/gob"
	"sync/atomic"

	"github.com/volpe-framework/evocore/problem"
	"github.com/volpe-framework/evocore/tier"
)

// Sphere is a separable real-valued minimization problem:
// f(x) = sum(x_i^2), nf == 1. Bounds default to [-bound, bound] per
// dimension, in the spirit of the Bounds/RealSolution shape used for
// real-valued problems elsewhere in the pack.
type Sphere struct {
	nx     int
	bound  float64
	ts     tier.Safety
	fevals *atomic.Int64
}

// NewSphere builds an nx-dimensional Sphere problem with the given
// bound and declared thread-safety tier.
func NewSphere(nx int, bound float64, ts tier.Safety) *Sphere {
	return &Sphere{nx: nx, bound: bound, ts: ts, fevals: new(atomic.Int64)}
}

// NX implements problem.Problem.
func (s *Sphere) NX() int { return s.nx }

// NF implements problem.Problem.
func (s *Sphere) NF() int { return 1 }

// Name implements problem.Problem.
func (s *Sphere) Name() string { return "Sphere" }

// ThreadSafety implements problem.Problem.
func (s *Sphere) ThreadSafety() tier.Safety { return s.ts }

// Fitness implements problem.Problem.
func (s *Sphere) Fitness(dv []float64) ([]float64, error) {
	var sum float64
	for _, x := range dv {
		sum += x * x
	}
	s.fevals.Add(1)
	return []float64{sum}, nil
}

// IncrementFevals implements problem.Problem.
func (s *Sphere) IncrementFevals(n int) {
	s.fevals.Add(int64(n))
}

// Fevals returns the number of fitness evaluations recorded so far.
func (s *Sphere) Fevals() int64 {
	return s.fevals.Load()
}

// Clone implements problem.Problem. fevals is a fresh independent
// counter, matching the contract that copies are used to compensate a
// shared original via IncrementFevals rather than share state directly.
func (s *Sphere) Clone() problem.Problem {
	return &Sphere{nx: s.nx, bound: s.bound, ts: s.ts, fevals: new(atomic.Int64)}
}

// Bound returns the symmetric per-dimension bound [-Bound, Bound].
func (s *Sphere) Bound() float64 { return s.bound }

// sphereWire is the exported shape Sphere's unexported fields encode
// through; gob silently drops unexported struct fields, so Sphere
// implements GobEncode/GobDecode explicitly rather than relying on the
// default struct codec.
type sphereWire struct {
	NX    int
	Bound float64
	Tier  tier.Safety
}

// GobEncode implements gob.GobEncoder. The fevals counter is not
// persisted; a loaded Sphere starts with a fresh counter, matching
// Clone's contract.
func (s *Sphere) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(sphereWire{NX: s.nx, Bound: s.bound, Tier: s.ts})
	return buf.Bytes(), err
}

// GobDecode implements gob.GobDecoder.
func (s *Sphere) GobDecode(data []byte) error {
	var w sphereWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	s.nx, s.bound, s.ts = w.NX, w.Bound, w.Tier
	s.fevals = new(atomic.Int64)
	return nil
}

func init() {
	problem.Register(&Sphere{fevals: new(atomic.Int64)})
}
