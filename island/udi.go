package island

import (
	"sync"
	"sync/atomic"

	"github.com/volpe-framework/evocore/algorithm"
	"github.com/volpe-framework/evocore/evoerr"
	"github.com/volpe-framework/evocore/population"
	"github.com/volpe-framework/evocore/tier"
)

// UDI is the user-defined island driver contract. RunEvolve receives
// the already-locked algorithm and population mutexes; it must release
// each lock as soon as it has captured what it needs and must, on
// every return path (success or error), return with popLock held —
// the caller always unlocks popLock itself after RunEvolve returns.
type UDI interface {
	// RunEvolve evolves *pop in place using *algo. algoLock and popLock
	// are held on entry; RunEvolve must return with popLock held.
	RunEvolve(algo *algorithm.Algorithm, algoLock *sync.Mutex, pop *population.Population, popLock *sync.Mutex) error
	// Clone returns a deep, independent copy of the driver.
	Clone() UDI
}

// namedUDI is the optional get_name() capability.
type namedUDI interface {
	Name() string
}

// extraInfoUDI is the optional get_extra_info() capability.
type extraInfoUDI interface {
	ExtraInfo() string
}

func udiName(u UDI) string {
	if n, ok := u.(namedUDI); ok {
		return n.Name()
	}
	return "unnamed UDI"
}

func udiExtraInfo(u UDI) string {
	if e, ok := u.(extraInfoUDI); ok {
		return e.ExtraInfo()
	}
	return ""
}

// ThreadIsland is the built-in UDI: it runs evolutions directly inside
// the island's dedicated worker goroutine using the algorithm's own
// Evolve method.
type ThreadIsland struct{}

// Name reports the driver's display name.
func (ThreadIsland) Name() string { return "Thread island" }

// Clone returns a new ThreadIsland; the driver is stateless.
func (ThreadIsland) Clone() UDI { return ThreadIsland{} }

func checkThreadSafety(name string, t tier.Safety) error {
	if t < tier.Basic {
		return evoerr.InvalidArgumentf(
			"thread islands require objects which provide at least the basic thread safety level, but the object '%s' provides only the '%s' thread safety guarantee",
			name, t)
	}
	return nil
}

// RunEvolve implements UDI. It copies the algorithm and population,
// releases both locks, runs the evolution, then re-acquires popLock and
// assigns the evolved population back.
func (ThreadIsland) RunEvolve(algoPtr *algorithm.Algorithm, algoLock *sync.Mutex, popPtr *population.Population, popLock *sync.Mutex) error {
	algo := *algoPtr
	pop := *popPtr

	if err := checkThreadSafety(algo.Name(), algo.ThreadSafety()); err != nil {
		algoLock.Unlock()
		return err
	}
	prob := pop.Problem()
	if err := checkThreadSafety(prob.Name(), prob.ThreadSafety()); err != nil {
		algoLock.Unlock()
		return err
	}

	algoCopy := algo.Clone()
	algoLock.Unlock()
	popCopy := pop.Clone()
	popLock.Unlock()

	newPop, err := algoCopy.Evolve(popCopy)

	popLock.Lock()
	if err != nil {
		return err
	}
	*popPtr = newPop
	return nil
}

// Factory selects a UDI given the declared thread-safety of an
// (algorithm, population) pair at island construction. Invoked only
// during construction — never during evolve.
type Factory func(algo algorithm.Algorithm, pop population.Population) (UDI, error)

var defaultFactory atomic.Pointer[Factory]

func init() {
	f := Factory(defaultFactoryImpl)
	defaultFactory.Store(&f)
}

// defaultFactoryImpl always selects ThreadIsland: it is the only
// built-in UDI, and any conforming algorithm/population is always
// compatible with it as long as their thread-safety tiers allow it.
func defaultFactoryImpl(algorithm.Algorithm, population.Population) (UDI, error) {
	return ThreadIsland{}, nil
}

// SetDefaultFactory installs a process-wide replacement for the UDI
// selection logic. Last-writer-wins; races between installation and
// use are not guarded — intended for setup-time configuration, not
// per-call switching.
func SetDefaultFactory(f Factory) {
	defaultFactory.Store(&f)
}
