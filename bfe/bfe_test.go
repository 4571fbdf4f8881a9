package bfe_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/volpe-framework/evocore/bfe"
	"github.com/volpe-framework/evocore/evoerr"
	"github.com/volpe-framework/evocore/problem"
	"github.com/volpe-framework/evocore/tier"
)

// squareProblem is a minimal fixture problem: fitness(x) = [x*x] for a
// 1-dimensional decision vector.
type squareProblem struct {
	ts     tier.Safety
	fevals atomic.Int64
}

func (p *squareProblem) NX() int                 { return 1 }
func (p *squareProblem) NF() int                 { return 1 }
func (p *squareProblem) Name() string            { return "square" }
func (p *squareProblem) ThreadSafety() tier.Safety { return p.ts }
func (p *squareProblem) IncrementFevals(n int)   { p.fevals.Add(int64(n)) }
func (p *squareProblem) Fitness(dv []float64) ([]float64, error) {
	p.fevals.Add(1)
	return []float64{dv[0] * dv[0]}, nil
}
func (p *squareProblem) Clone() problem.Problem {
	return &squareProblem{ts: p.ts}
}

// doublingBatchProblem exposes batch_fitness directly, for member_bfe tests.
type doublingBatchProblem struct {
	fitnessCalls atomic.Int64
}

func (p *doublingBatchProblem) NX() int      { return 1 }
func (p *doublingBatchProblem) NF() int      { return 1 }
func (p *doublingBatchProblem) Name() string { return "doubler" }
func (p *doublingBatchProblem) ThreadSafety() tier.Safety {
	return tier.Basic
}
func (p *doublingBatchProblem) IncrementFevals(int) {}
func (p *doublingBatchProblem) Fitness(dv []float64) ([]float64, error) {
	p.fitnessCalls.Add(1)
	return []float64{2 * dv[0]}, nil
}
func (p *doublingBatchProblem) Clone() problem.Problem {
	return &doublingBatchProblem{}
}
func (p *doublingBatchProblem) BatchFitness(dvs []float64) ([]float64, error) {
	out := make([]float64, len(dvs))
	for i, x := range dvs {
		out[i] = 2 * x
	}
	return out, nil
}

func TestBFE_CallValidatesShape(t *testing.T) {
	p := &squareProblem{ts: tier.Basic}
	b := bfe.New(bfe.ThreadBFE{})

	fvs, err := b.Call(p, []float64{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 4, 9}, fvs)
}

func TestBFE_RejectsRaggedInput(t *testing.T) {
	p := &twoDimProblem{}
	b := bfe.New(bfe.ThreadBFE{})

	_, err := b.Call(p, []float64{1, 2, 3})
	require.Error(t, err)
	require.True(t, evoerr.IsInvalidArgument(err))
}

// twoDimProblem has nx=2, used to exercise the ragged-input rejection.
type twoDimProblem struct{}

func (twoDimProblem) NX() int                  { return 2 }
func (twoDimProblem) NF() int                  { return 1 }
func (twoDimProblem) Name() string             { return "twodim" }
func (twoDimProblem) ThreadSafety() tier.Safety { return tier.Basic }
func (twoDimProblem) IncrementFevals(int)      {}
func (twoDimProblem) Fitness(dv []float64) ([]float64, error) {
	return []float64{dv[0] + dv[1]}, nil
}
func (twoDimProblem) Clone() problem.Problem { return twoDimProblem{} }

func TestBFE_NameAndTierCached(t *testing.T) {
	b := bfe.New(bfe.ThreadBFE{})
	require.Equal(t, "Thread batch fitness evaluator", b.Name())
	require.Equal(t, tier.Basic, b.ThreadSafety())
}

func TestBFE_ExtractAndIs(t *testing.T) {
	b := bfe.New(bfe.MemberBFE{})
	require.True(t, bfe.Is[bfe.MemberBFE](b))
	require.False(t, bfe.Is[bfe.ThreadBFE](b))

	v, ok := bfe.Extract[bfe.MemberBFE](b)
	require.True(t, ok)
	require.Equal(t, bfe.MemberBFE{}, v)
}

func TestBFE_String(t *testing.T) {
	b := bfe.New(bfe.ThreadBFE{})
	s := b.String()
	require.Contains(t, s, "BFE name: Thread batch fitness evaluator")
	require.Contains(t, s, "Thread safety: basic")
}

func TestBFE_SaveLoadRoundTrip(t *testing.T) {
	b := bfe.New(bfe.MemberBFE{})
	data, err := b.Bytes()
	require.NoError(t, err)

	loaded, err := bfe.FromBytes(data)
	require.NoError(t, err)
	require.Equal(t, b.Name(), loaded.Name())
	require.Equal(t, b.ThreadSafety(), loaded.ThreadSafety())
	require.True(t, bfe.Is[bfe.MemberBFE](loaded))
}

func TestBFE_ThreadSafetyGate(t *testing.T) {
	p := &squareProblem{ts: tier.None}
	b := bfe.New(bfe.ThreadBFE{})

	_, err := b.Call(p, []float64{0, 0})
	require.Error(t, err)
	require.True(t, evoerr.IsInvalidArgument(err))
	require.Contains(t, err.Error(), "square")
	require.Contains(t, err.Error(), "thread safety")
	require.Equal(t, int64(0), p.fevals.Load())
}
