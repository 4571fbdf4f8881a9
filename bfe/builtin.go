package bfe

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/volpe-framework/evocore/evoerr"
	"github.com/volpe-framework/evocore/problem"
	"github.com/volpe-framework/evocore/tier"
	"github.com/volpe-framework/evocore/vector"
)

var workerCount atomic.Int64

func init() {
	workerCount.Store(int64(runtime.GOMAXPROCS(0)))
	// Register the built-in drivers under the "udbfe <type>" tag convention.
	RegisterDriver(ThreadBFE{})
	RegisterDriver(MemberBFE{})
	RegisterDriver(DefaultBFE{})
}

// SetWorkerCount overrides ThreadBFE's data-parallel worker pool size.
// n < 1 is ignored. Intended for process-startup configuration (see
// runtimeconfig).
func SetWorkerCount(n int) {
	if n < 1 {
		return
	}
	workerCount.Store(int64(n))
}

// WorkerCount returns ThreadBFE's current worker pool size.
func WorkerCount() int {
	return int(workerCount.Load())
}

var strictNaN atomic.Bool

// SetStrictNaN toggles the opt-in debug NaN check on BFE.Call's output
// validation. Off by default: NaN rejection is not enforced unless a
// caller opts in.
func SetStrictNaN(on bool) {
	strictNaN.Store(on)
}

// StrictNaN reports whether the debug NaN check is enabled.
func StrictNaN() bool {
	return strictNaN.Load()
}

func blockedFor(k, workers int, fn func(lo, hi int) error) error {
	if k == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > k {
		workers = k
	}
	chunk := (k + workers - 1) / workers
	var g errgroup.Group
	for lo := 0; lo < k; lo += chunk {
		lo := lo
		hi := lo + chunk
		if hi > k {
			hi = k
		}
		g.Go(func() error {
			return fn(lo, hi)
		})
	}
	return g.Wait()
}

// ThreadBFE is the built-in data-parallel driver. It dispatches across
// a blocked index range [0, k) using a separate worker pool unrelated
// to any island's dedicated worker thread.
type ThreadBFE struct{}

// Clone returns a new ThreadBFE; the driver is stateless.
func (ThreadBFE) Clone() Driver { return ThreadBFE{} }

// Name reports the driver's display name.
func (ThreadBFE) Name() string { return "Thread batch fitness evaluator" }

// Call implements Driver.
func (ThreadBFE) Call(p problem.Problem, dvs []float64) ([]float64, error) {
	nx, nf := p.NX(), p.NF()
	k := vector.NumIndividuals(dvs, nx)
	if err := vector.CheckOverflow(k, nf, p.Name()); err != nil {
		return nil, err
	}
	retval := make([]float64, k*nf)
	ts := p.ThreadSafety()

	switch {
	case ts >= tier.Constant:
		// p is shared by reference across workers; each worker copies
		// its own slice of the input into thread-local scratch. fitness
		// itself updates the shared fevals counter.
		err := blockedFor(k, WorkerCount(), func(lo, hi int) error {
			tmp := make([]float64, nx)
			for i := lo; i < hi; i++ {
				copy(tmp, dvs[i*nx:(i+1)*nx])
				fv, err := p.Fitness(tmp)
				if err != nil {
					return err
				}
				copy(retval[i*nf:(i+1)*nf], fv)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return retval, nil
	case ts == tier.Basic:
		// Each worker gets its own copy of p; the original is
		// compensated with a single increment_fevals(k) afterward.
		err := blockedFor(k, WorkerCount(), func(lo, hi int) error {
			pc := p.Clone()
			tmp := make([]float64, nx)
			for i := lo; i < hi; i++ {
				copy(tmp, dvs[i*nx:(i+1)*nx])
				fv, err := pc.Fitness(tmp)
				if err != nil {
					return err
				}
				copy(retval[i*nf:(i+1)*nf], fv)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		p.IncrementFevals(k)
		return retval, nil
	default:
		return nil, evoerr.InvalidArgumentf(
			"cannot use a thread batch fitness evaluator on the problem '%s', which does not provide the required level of thread safety (has '%s', needs at least 'basic')",
			p.Name(), ts)
	}
}

// MemberBFE delegates to the problem's own batch_fitness member.
type MemberBFE struct{}

// Clone returns a new MemberBFE; the driver is stateless.
func (MemberBFE) Clone() Driver { return MemberBFE{} }

// Name reports the driver's display name.
func (MemberBFE) Name() string { return "Member function batch fitness evaluator" }

// Call implements Driver. Errors surface from the problem unchanged.
func (MemberBFE) Call(p problem.Problem, dvs []float64) ([]float64, error) {
	bf, ok := p.(problem.BatchFitnessEvaluator)
	if !ok {
		return nil, evoerr.InvalidArgumentf("the problem '%s' does not implement the batch_fitness method required by a member batch fitness evaluator", p.Name())
	}
	return bf.BatchFitness(dvs)
}

// Selector picks a Driver for a problem; installed process-wide via
// SetDefaultSelector, invoked by DefaultBFE.
type Selector func(p problem.Problem) (Driver, error)

var defaultSelector atomic.Pointer[Selector]

func init() {
	s := Selector(defaultSelectorImpl)
	defaultSelector.Store(&s)
}

func defaultSelectorImpl(p problem.Problem) (Driver, error) {
	if problem.HasBatchFitness(p) {
		return MemberBFE{}, nil
	}
	if p.ThreadSafety() >= tier.Basic {
		return ThreadBFE{}, nil
	}
	return nil, evoerr.InvalidArgumentf(
		"cannot execute fitness evaluations in batch mode for a problem of type '%s': the problem does not implement the batch_fitness method, and its thread safety level (%s) is not sufficient to run a thread-based batch fitness evaluation",
		p.Name(), p.ThreadSafety())
}

// SetDefaultSelector installs a process-wide replacement for the
// selection logic invoked by DefaultBFE. Last-writer-wins; races
// between installation and use are not guarded — intended for
// setup-time configuration, not per-call switching.
func SetDefaultSelector(s Selector) {
	defaultSelector.Store(&s)
}

// DefaultBFE is the heuristic dispatcher: MemberBFE if the problem
// exposes a batch fitness method, else ThreadBFE if the tier allows
// it, else an error naming the missing capabilities.
type DefaultBFE struct{}

// Clone returns a new DefaultBFE; the driver is stateless.
func (DefaultBFE) Clone() Driver { return DefaultBFE{} }

// Name reports the driver's display name.
func (DefaultBFE) Name() string { return "Default batch fitness evaluator" }

// Call implements Driver, delegating to the installed Selector.
func (DefaultBFE) Call(p problem.Problem, dvs []float64) ([]float64, error) {
	sel := defaultSelector.Load()
	driver, err := (*sel)(p)
	if err != nil {
		return nil, err
	}
	return driver.Call(p, dvs)
}
