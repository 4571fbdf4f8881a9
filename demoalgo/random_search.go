// Package demoalgo provides a reference Algorithm implementation so the
// evolution core is runnable and testable end to end.
package demoalgo

import (
	"bytes"
	"encoding/gob"
	"math/rand/v2"
	"sync/atomic"

	"github.com/volpe-framework/evocore/algorithm"
	"github.com/volpe-framework/evocore/population"
	"github.com/volpe-framework/evocore/tier"
)

// RandomSearch resamples every individual's decision vector uniformly
// within a per-dimension bound and keeps whichever of the old/new
// individual has the lower (assumed single-objective, minimization)
// fitness. Its only internal state is an ever-advancing generation
// counter shared by every clone of a given instance, used to vary the
// random stream from one Evolve call to the next; that counter is
// advanced only via atomic.Uint64.Add, so concurrent calls against
// clones sharing it stay safe, and it declares tier.Constant.
type RandomSearch struct {
	Bound float64
	Seed  uint64
	gen   *atomic.Uint64
}

// NewRandomSearch builds a RandomSearch with the given per-dimension
// sampling bound and seed.
func NewRandomSearch(bound float64, seed uint64) *RandomSearch {
	return &RandomSearch{Bound: bound, Seed: seed, gen: new(atomic.Uint64)}
}

// Name implements algorithm.Algorithm.
func (r *RandomSearch) Name() string { return "Random search" }

// ThreadSafety implements algorithm.Algorithm.
func (r *RandomSearch) ThreadSafety() tier.Safety { return tier.Constant }

// Clone implements algorithm.Algorithm. The clone shares the source's
// generation counter rather than resetting it: an island only ever
// holds one logical RandomSearch across its lifetime, cloning a fresh
// copy for each evolve task, so the shared counter is what lets
// successive generations draw different random streams instead of
// repeating the first generation's result forever.
func (r *RandomSearch) Clone() algorithm.Algorithm {
	return &RandomSearch{Bound: r.Bound, Seed: r.Seed, gen: r.gen}
}

// Evolve implements algorithm.Algorithm. It builds its own copy of pop
// to mutate rather than writing through the caller's individual slice,
// since pop.SetIndividual mutates its receiver's backing array in
// place and Evolve must treat its input as read-only.
func (r *RandomSearch) Evolve(pop population.Population) (population.Population, error) {
	out := pop.Clone()
	prob := out.Problem()
	nx := prob.NX()
	gen := r.gen.Add(1)
	src := rand.New(rand.NewPCG(r.Seed, pop.Seed()^gen))

	indvs := pop.Individuals()
	for i, ind := range indvs {
		candidate := make([]float64, nx)
		for d := range candidate {
			candidate[d] = (src.Float64()*2 - 1) * r.Bound
		}
		fv, err := prob.Fitness(candidate)
		if err != nil {
			return population.Population{}, err
		}
		if len(ind.Fitness) > 0 && len(fv) > 0 && fv[0] >= ind.Fitness[0] {
			continue // keep the incumbent, it is no worse
		}
		out.SetIndividual(i, candidate, fv)
	}
	return out, nil
}

// randomSearchWire is the exported shape RandomSearch's unexported gen
// field encodes through; the generation counter is process-local
// bookkeeping, not meaningful across a save/load round trip, so it is
// not persisted.
type randomSearchWire struct {
	Bound float64
	Seed  uint64
}

// GobEncode implements gob.GobEncoder.
func (r *RandomSearch) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(randomSearchWire{Bound: r.Bound, Seed: r.Seed})
	return buf.Bytes(), err
}

// GobDecode implements gob.GobDecoder. The generation counter starts
// fresh: unlike a Clone, a decoded value shares no counter with the
// value it was saved from.
func (r *RandomSearch) GobDecode(data []byte) error {
	var w randomSearchWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	r.Bound, r.Seed = w.Bound, w.Seed
	r.gen = new(atomic.Uint64)
	return nil
}

func init() {
	algorithm.Register(&RandomSearch{gen: new(atomic.Uint64)})
}
