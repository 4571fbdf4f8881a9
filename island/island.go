// Package island implements the Island container: a handle around
// (algorithm, population, UDI driver) offering FIFO asynchronous evolve
// tasks, concurrent read access, and deterministic teardown.
package island

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/volpe-framework/evocore/algorithm"
	"github.com/volpe-framework/evocore/evoerr"
	"github.com/volpe-framework/evocore/metrics"
	"github.com/volpe-framework/evocore/population"
	"github.com/volpe-framework/evocore/problem"
	"github.com/volpe-framework/evocore/task"
	"github.com/volpe-framework/evocore/tier"
)

// data is the island's internal state: a heap object referenced by a
// single owning pointer so that moving the Island handle is an O(1)
// pointer reassignment. It is never copied or moved internally; the
// block outlives any in-flight task referring to it (enforced by wait
// in Close).
type data struct {
	isl UDI // unguarded: required to be fully thread-safe on its own

	algoMutex sync.Mutex
	algo      algorithm.Algorithm

	popMutex sync.Mutex
	pop      population.Population

	futuresMutex sync.Mutex
	futures      []*task.Handle

	queue *task.Queue

	archiRef any // non-owning, optional back-reference to an archipelago
	id       string
}

// Island exclusively owns a heap-allocated data block. The zero value
// is not usable; construct with New or one of the NewWith* helpers.
type Island struct {
	ptr *data
}

func newData(isl UDI, algo algorithm.Algorithm, pop population.Population) *data {
	return &data{
		isl:   isl,
		algo:  algo,
		pop:   pop,
		queue: task.NewQueue(),
		id:    uuid.NewString(),
	}
}

// New constructs an island from an algorithm and a population, choosing
// the UDI via the process-wide Factory.
func New(algo algorithm.Algorithm, pop population.Population) (*Island, error) {
	udi, err := (*defaultFactory.Load())(algo, pop)
	if err != nil {
		return nil, err
	}
	return &Island{ptr: newData(udi, algo, pop)}, nil
}

// NewWithUDI constructs an island from an explicit UDI, algorithm and population.
func NewWithUDI(udi UDI, algo algorithm.Algorithm, pop population.Population) *Island {
	return &Island{ptr: newData(udi, algo, pop)}
}

// Default constructs an island around a trivial, always-thread-safe
// null algorithm and null problem, choosing the UDI via the
// process-wide Factory. Mirrors the zero-argument island constructor,
// whose algorithm and population are themselves default-constructed.
func Default() (*Island, error) {
	return New(nullAlgorithm{}, population.New(nullProblem{}, 0))
}

// NewFromProblem builds a population of size individuals around prob
// (sampling each decision vector uniformly in [-1, 1] per dimension,
// since problem.Problem carries no bounds of its own) and then
// constructs the island as New would, choosing the UDI via the
// process-wide Factory.
func NewFromProblem(algo algorithm.Algorithm, prob problem.Problem, size int, seed uint64) (*Island, error) {
	pop, err := population.NewWithSize(prob, size, seed, uniformSampler)
	if err != nil {
		return nil, err
	}
	return New(algo, pop)
}

// NewFromProblemWithUDI is the explicit-UDI counterpart of
// NewFromProblem: it builds the population the same way, then
// constructs the island around the given UDI directly.
func NewFromProblemWithUDI(udi UDI, algo algorithm.Algorithm, prob problem.Problem, size int, seed uint64) (*Island, error) {
	pop, err := population.NewWithSize(prob, size, seed, uniformSampler)
	if err != nil {
		return nil, err
	}
	return NewWithUDI(udi, algo, pop), nil
}

// uniformSampler draws each decision vector coordinate uniformly from
// [-1, 1]; the default sampler used by NewFromProblem and
// NewFromProblemWithUDI.
func uniformSampler(nx int, r *rand.Rand) []float64 {
	dv := make([]float64, nx)
	for i := range dv {
		dv[i] = r.Float64()*2 - 1
	}
	return dv
}

// nullProblem is a trivial always-thread-safe placeholder problem used
// only by Default.
type nullProblem struct{}

func (nullProblem) NX() int                     { return 1 }
func (nullProblem) NF() int                     { return 1 }
func (nullProblem) Fitness([]float64) ([]float64, error) { return []float64{0}, nil }
func (nullProblem) ThreadSafety() tier.Safety   { return tier.Constant }
func (nullProblem) Name() string                { return "Null problem" }
func (nullProblem) IncrementFevals(int)         {}
func (nullProblem) Clone() problem.Problem      { return nullProblem{} }

// nullAlgorithm is a trivial always-thread-safe placeholder algorithm
// used only by Default; Evolve is a no-op.
type nullAlgorithm struct{}

func (nullAlgorithm) Evolve(pop population.Population) (population.Population, error) {
	return pop, nil
}
func (nullAlgorithm) ThreadSafety() tier.Safety { return tier.Constant }
func (nullAlgorithm) Name() string              { return "Null algorithm" }
func (nullAlgorithm) Clone() algorithm.Algorithm { return nullAlgorithm{} }

func init() {
	problem.Register(nullProblem{})
	algorithm.Register(nullAlgorithm{})
}

// Copy constructs a new island containing a clone of the source's UDI,
// a copy of its algorithm (acquired under algoMutex) and a copy of its
// population (acquired under popMutex). The two locks are acquired
// separately, so the snapshot is consistent but not necessarily
// simultaneous; safe to call while the source is evolving.
func (isl *Island) Copy() *Island {
	udi := isl.ptr.isl.Clone() // the UDI is required to be thread-safe on its own, no mutex needed
	algo := isl.GetAlgorithm()
	pop := isl.GetPopulation()
	return &Island{ptr: newData(udi, algo, pop)}
}

// Evolve submits one evolution task to the island's FIFO task queue and
// returns immediately. Tasks execute strictly in submission order on
// the island's dedicated worker goroutine. Errors raised during
// evolution are never returned here; they are captured in the pending
// handle and surfaced by the next Wait.
func (isl *Island) Evolve() error {
	d := isl.ptr
	d.futuresMutex.Lock()
	defer d.futuresMutex.Unlock()

	d.futures = append(d.futures, nil)
	h, err := d.queue.Enqueue(func() error {
		d.algoMutex.Lock()
		d.popMutex.Lock()
		err := d.isl.RunEvolve(&d.algo, &d.algoMutex, &d.pop, &d.popMutex)
		d.popMutex.Unlock()
		return err
	})
	if err != nil {
		d.futures = d.futures[:len(d.futures)-1]
		return err
	}
	d.futures[len(d.futures)-1] = h
	metrics.Get().IslandEvolveTotal.WithLabelValues(d.id).Inc()
	metrics.Get().QueueDepth.WithLabelValues(d.id).Set(float64(len(d.futures)))
	log.Debug().Str("island", d.id).Msg("evolve task submitted")
	return nil
}

// waitHook is a process-wide hook invoked at the top of Wait; its
// scope (via the returned cleanup) spans the whole wait.
type waitHookFunc func() (cleanup func())

var waitHook atomic.Pointer[waitHookFunc]

func init() {
	h := waitHookFunc(func() func() { return func() {} })
	waitHook.Store(&h)
}

// SetWaitHook installs a process-wide hook invoked at the start of
// every Wait call; its returned cleanup runs when Wait returns. Intended
// for cooperative suspension in embedded interpreters.
func SetWaitHook(h func() (cleanup func())) {
	f := waitHookFunc(h)
	waitHook.Store(&f)
}

// Wait blocks until all evolution tasks submitted since the last Wait
// have completed, and raises the first error observed among them. It
// drains every pending handle regardless of failures before returning;
// a second Wait with no intervening Evolve is a no-op.
func (isl *Island) Wait() error {
	cleanup := (*waitHook.Load())()
	defer cleanup()

	d := isl.ptr
	d.futuresMutex.Lock()
	defer d.futuresMutex.Unlock()

	var firstErr error
	for i, h := range d.futures {
		err := h.Get()
		if err != nil && firstErr == nil {
			firstErr = evoerr.NewTaskError(err)
			for j := i + 1; j < len(d.futures); j++ {
				d.futures[j].Get() // drain, discarding errors
			}
			break
		}
	}
	d.futures = nil
	metrics.Get().QueueDepth.WithLabelValues(d.id).Set(0)
	if firstErr != nil {
		metrics.Get().IslandWaitErrors.WithLabelValues(d.id).Inc()
	}
	return firstErr
}

// Busy reports whether any pending handle is not yet ready. It does not
// advance or consume handles.
func (isl *Island) Busy() bool {
	d := isl.ptr
	d.futuresMutex.Lock()
	defer d.futuresMutex.Unlock()
	for _, h := range d.futures {
		if !h.IsReady() {
			return true
		}
	}
	return false
}

// GetAlgorithm returns a copy of the island's algorithm. Safe
// concurrently with evolution.
func (isl *Island) GetAlgorithm() algorithm.Algorithm {
	d := isl.ptr
	d.algoMutex.Lock()
	defer d.algoMutex.Unlock()
	return d.algo.Clone()
}

// GetPopulation returns a copy of the island's population. Safe
// concurrently with evolution.
func (isl *Island) GetPopulation() population.Population {
	d := isl.ptr
	d.popMutex.Lock()
	defer d.popMutex.Unlock()
	return d.pop.Clone()
}

// Name returns the UDI's display name.
func (isl *Island) Name() string {
	return udiName(isl.ptr.isl)
}

// ExtraInfo returns the UDI's extra info, or the empty string.
func (isl *Island) ExtraInfo() string {
	return udiExtraInfo(isl.ptr.isl)
}

// String renders name, algorithm, population and an optional extra-info
// block, each separated by a blank line.
func (isl *Island) String() string {
	algo := isl.GetAlgorithm()
	pop := isl.GetPopulation()
	s := fmt.Sprintf("Island name: %s\n\n", isl.Name())
	s += fmt.Sprintf("Algorithm name: %s\n\n", algo.Name())
	s += fmt.Sprintf("Population size: %d\n\n", pop.Size())
	if extra := isl.ExtraInfo(); extra != "" {
		s += fmt.Sprintf("\nExtra info:\n%s\n", extra)
	}
	return s
}

// Close waits for any in-flight evolution to finish and tears down the
// dedicated worker goroutine, mirroring the island destructor: task
// errors are swallowed (already surfaced, or discarded per Wait's
// drain-on-failure semantics), but a SystemError indicating a
// locking-primitive failure is considered unrecoverable and panics.
func (isl *Island) Close() {
	if isl.ptr == nil {
		return
	}
	err := isl.Wait()
	if err != nil && evoerr.IsSystem(err) {
		panic(err)
	}
	isl.ptr.queue.Stop()
}

// Take returns a new Island sharing the same data block and nils out
// isl's pointer, mirroring move-construction: isl becomes moved-from
// (only Close is safe to call on it afterward).
func (isl *Island) Take() *Island {
	out := &Island{ptr: isl.ptr}
	isl.ptr = nil
	return out
}
