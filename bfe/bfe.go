// Package bfe implements the polymorphic Batch Fitness Evaluator
// container: a type-erased holder over a user driver, validating input
// and output batch shapes around the delegated call.
package bfe

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/volpe-framework/evocore/evoerr"
	"github.com/volpe-framework/evocore/metrics"
	"github.com/volpe-framework/evocore/problem"
	"github.com/volpe-framework/evocore/tier"
	"github.com/volpe-framework/evocore/vector"
)

// Driver is the user-defined batch fitness evaluator (UDBFE) contract:
// a call operation plus a deep Clone used by BFE's copy semantics.
type Driver interface {
	// Call evaluates the flat batch dvs (stride p.NX()) against p,
	// returning a flat fitness batch (stride p.NF()).
	Call(p problem.Problem, dvs []float64) ([]float64, error)
	// Clone returns a deep, independent copy of the driver.
	Clone() Driver
}

// namedDriver is the optional get_name() capability; missing drivers
// fall back to their Go type name.
type namedDriver interface {
	Name() string
}

// extraInfoDriver is the optional get_extra_info() capability; missing
// drivers fall back to the empty string.
type extraInfoDriver interface {
	ExtraInfo() string
}

// threadSafetyDriver is the optional get_thread_safety() capability;
// missing drivers fall back to tier.Basic.
type threadSafetyDriver interface {
	ThreadSafety() tier.Safety
}

func driverName(d Driver) string {
	if nd, ok := d.(namedDriver); ok {
		return nd.Name()
	}
	return reflect.TypeOf(d).String()
}

func driverExtraInfo(d Driver) string {
	if ed, ok := d.(extraInfoDriver); ok {
		return ed.ExtraInfo()
	}
	return ""
}

func driverThreadSafety(d Driver) tier.Safety {
	if td, ok := d.(threadSafetyDriver); ok {
		return td.ThreadSafety()
	}
	return tier.Basic
}

// FuncDriver adapts a bare function with Driver.Call's signature into
// a conforming Driver, so BFE can be constructed from a free function
// as well as from any user type implementing Driver by value. Clone
// returns the same function value, since a Go function value carries
// no per-instance mutable state to copy.
type FuncDriver func(p problem.Problem, dvs []float64) ([]float64, error)

// Call implements Driver by invoking the wrapped function.
func (f FuncDriver) Call(p problem.Problem, dvs []float64) ([]float64, error) {
	return f(p, dvs)
}

// Clone implements Driver.
func (f FuncDriver) Clone() Driver { return f }

// NewFromFunc constructs a BFE from a bare function with Driver.Call's
// signature, normalizing it into a FuncDriver container.
func NewFromFunc(fn func(p problem.Problem, dvs []float64) ([]float64, error)) *BFE {
	return New(FuncDriver(fn))
}

// BFE is a heap-owned polymorphic holder around a Driver: the driver
// is always non-nil for a live BFE, and name/thread safety are cached
// at construction and frozen thereafter.
type BFE struct {
	driver Driver
	name   string
	ts     tier.Safety
}

// New constructs a BFE from a conforming driver. The name and tier are
// cached immediately.
func New(d Driver) *BFE {
	return &BFE{
		driver: d,
		name:   driverName(d),
		ts:     driverThreadSafety(d),
	}
}

// Clone deep-clones the inner driver via its Clone method, producing an
// independent BFE with the same cached name and tier.
func (b *BFE) Clone() *BFE {
	return &BFE{
		driver: b.driver.Clone(),
		name:   b.name,
		ts:     b.ts,
	}
}

// Name returns the cached display name.
func (b *BFE) Name() string { return b.name }

// ThreadSafety returns the cached thread-safety tier.
func (b *BFE) ThreadSafety() tier.Safety { return b.ts }

// ExtraInfo calls through to the inner driver; unlike Name and
// ThreadSafety it is not cached.
func (b *BFE) ExtraInfo() string { return driverExtraInfo(b.driver) }

// Extract yields the inner driver cast to T if and only if the held
// driver's concrete type is exactly T; the sole downcast primitive.
func Extract[T Driver](b *BFE) (T, bool) {
	v, ok := b.driver.(T)
	return v, ok
}

// Is reports whether the held driver's concrete type is exactly T.
func Is[T Driver](b *BFE) bool {
	_, ok := b.driver.(T)
	return ok
}

// Call validates dvs against p, delegates to the inner driver, then
// validates the returned fitness batch's shape. No side effects occur
// if the input check fails; the returned buffer is discarded if the
// output check fails.
func (b *BFE) Call(p problem.Problem, dvs []float64) ([]float64, error) {
	start := time.Now()
	defer func() {
		c := metrics.Get()
		c.BFECallsTotal.WithLabelValues(b.name).Inc()
		c.BFECallDuration.WithLabelValues(b.name).Observe(time.Since(start).Seconds())
	}()

	if err := vector.CheckInputDVs(dvs, p.NX(), p.Name()); err != nil {
		return nil, err
	}
	fvs, err := b.driver.Call(p, dvs)
	if err != nil {
		return nil, err
	}
	k := vector.NumIndividuals(dvs, p.NX())
	if err := vector.CheckOutputFVs(fvs, k, p.NF(), p.Name()); err != nil {
		return nil, err
	}
	if StrictNaN() && vector.HasNaN(fvs) {
		return nil, evoerr.InvalidArgumentf("the batch fitness evaluator for problem '%s' returned a NaN fitness coordinate", p.Name())
	}
	return fvs, nil
}

// String renders the three-block text form: name, thread safety, and
// an optional extra-info block.
func (b *BFE) String() string {
	s := fmt.Sprintf("BFE name: %s\n\n\tThread safety: %s\n", b.name, b.ts)
	if extra := b.ExtraInfo(); extra != "" {
		s += fmt.Sprintf("\nExtra info:\n%s\n", extra)
	}
	return s
}

// gobPayload is the on-wire shape saved/loaded for a BFE: the tagged
// polymorphic driver plus the cached name and tier.
type gobPayload struct {
	Driver Driver
	Name   string
	Tier   tier.Safety
}

// RegisterDriver registers a concrete driver type with the process-wide
// gob registry under the conventional "udbfe <type>" tag, so BFE values
// holding it can round-trip through Save/Load. Must be called once at
// process startup for every UDBFE type that will be serialized.
func RegisterDriver(sample Driver) {
	tag := "udbfe " + reflect.TypeOf(sample).String()
	gob.RegisterName(tag, sample)
}

// Save writes a tagged, polymorphic encoding of b to w.
func (b *BFE) Save(w io.Writer) error {
	return gob.NewEncoder(w).Encode(gobPayload{Driver: b.driver, Name: b.name, Tier: b.ts})
}

// Load deserializes into a fresh BFE and only then swaps it into *b, so
// a partially-failed decode never corrupts a live BFE.
func (b *BFE) Load(r io.Reader) error {
	var payload gobPayload
	if err := gob.NewDecoder(r).Decode(&payload); err != nil {
		return err
	}
	*b = BFE{driver: payload.Driver, name: payload.Name, ts: payload.Tier}
	return nil
}

// Bytes returns the Save encoding of b.
func (b *BFE) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromBytes loads a BFE from the Save encoding produced by Bytes.
func FromBytes(data []byte) (*BFE, error) {
	b := &BFE{}
	if err := b.Load(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return b, nil
}
