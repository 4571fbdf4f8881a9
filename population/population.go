// Package population implements the external population contract: a
// problem held by value, a set of individuals, copyable and
// move-assignable as required by the island and UDI contracts.
package population

import (
	"bytes"
	"encoding/gob"
	"math/rand/v2"

	"github.com/volpe-framework/evocore/problem"
)

// Individual is one member of a population: a decision vector and its
// evaluated fitness vector. Fitness may be nil if never evaluated.
type Individual struct {
	DV      []float64
	Fitness []float64
}

// Population carries a problem by value and a set of individuals. Only
// the embedded problem contributes to safety-tier checks performed by
// the core.
type Population struct {
	prob  problem.Problem
	indvs []Individual
	seed  uint64
}

// New builds an empty population around prob with the given seed.
func New(prob problem.Problem, seed uint64) Population {
	return Population{prob: prob, seed: seed}
}

// NewSeeded builds an empty population drawing its seed from the
// process-wide random source, for callers that don't need a
// reproducible, caller-supplied seed.
func NewSeeded(prob problem.Problem) Population {
	return New(prob, rand.Uint64())
}

// NewWithSize builds a population of size individuals around prob,
// drawing each decision vector with sampler and evaluating its fitness
// via prob. sampler draws one decision vector of length prob.NX() per call.
func NewWithSize(prob problem.Problem, size int, seed uint64, sampler func(nx int, r *rand.Rand) []float64) (Population, error) {
	pop := New(prob, seed)
	src := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := 0; i < size; i++ {
		dv := sampler(prob.NX(), src)
		if err := pop.PushBack(dv); err != nil {
			return Population{}, err
		}
	}
	return pop, nil
}

// Problem returns the population's problem.
func (p *Population) Problem() problem.Problem { return p.prob }

// Seed returns the seed the population was constructed with.
func (p *Population) Seed() uint64 { return p.seed }

// Size returns the number of individuals.
func (p *Population) Size() int { return len(p.indvs) }

// Individuals returns a copy of the individual slice; mutating it does
// not affect the population.
func (p *Population) Individuals() []Individual {
	out := make([]Individual, len(p.indvs))
	for i, ind := range p.indvs {
		out[i] = Individual{
			DV:      append([]float64(nil), ind.DV...),
			Fitness: append([]float64(nil), ind.Fitness...),
		}
	}
	return out
}

// PushBack appends a new individual, evaluating its fitness via the
// population's problem.
func (p *Population) PushBack(dv []float64) error {
	fv, err := p.prob.Fitness(dv)
	if err != nil {
		return err
	}
	dvCopy := append([]float64(nil), dv...)
	p.indvs = append(p.indvs, Individual{DV: dvCopy, Fitness: fv})
	return nil
}

// SetIndividual overwrites the individual at index i with a pre-evaluated
// decision/fitness pair, used by algorithms replacing the whole set in
// one step without re-invoking Fitness.
func (p *Population) SetIndividual(i int, dv, fv []float64) {
	p.indvs[i] = Individual{
		DV:      append([]float64(nil), dv...),
		Fitness: append([]float64(nil), fv...),
	}
}

// Clone returns a deep copy of p; individuals and decision/fitness
// vectors are copied, and the problem is copied via its Clone method.
func (p *Population) Clone() Population {
	out := Population{prob: p.prob.Clone(), seed: p.seed}
	out.indvs = make([]Individual, len(p.indvs))
	for i, ind := range p.indvs {
		out.indvs[i] = Individual{
			DV:      append([]float64(nil), ind.DV...),
			Fitness: append([]float64(nil), ind.Fitness...),
		}
	}
	return out
}

// GobEncode implements gob.GobEncoder, since Population's fields are
// unexported. The problem is encoded polymorphically; its concrete type
// must have been registered via problem.Register.
func (p Population) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(&p.prob); err != nil {
		return nil, err
	}
	if err := enc.Encode(p.indvs); err != nil {
		return nil, err
	}
	if err := enc.Encode(p.seed); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (p *Population) GobDecode(data []byte) error {
	dec := gob.NewDecoder(bytes.NewReader(data))
	var prob problem.Problem
	if err := dec.Decode(&prob); err != nil {
		return err
	}
	var indvs []Individual
	if err := dec.Decode(&indvs); err != nil {
		return err
	}
	var seed uint64
	if err := dec.Decode(&seed); err != nil {
		return err
	}
	p.prob = prob
	p.indvs = indvs
	p.seed = seed
	return nil
}
