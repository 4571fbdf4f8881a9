package island

import (
	"bytes"
	"encoding/gob"
	"io"
	"reflect"

	"github.com/volpe-framework/evocore/algorithm"
	"github.com/volpe-framework/evocore/population"
)

// RegisterUDI registers a concrete UDI type with the process-wide gob
// registry under the conventional "udi <type>" tag, so islands holding
// it can round-trip through Save/Load. Must be called once at process
// startup for every UDI type that will be serialized.
func RegisterUDI(sample UDI) {
	tag := "udi " + reflect.TypeOf(sample).String()
	gob.RegisterName(tag, sample)
}

func init() {
	RegisterUDI(ThreadIsland{})
}

// gobPayload is the on-wire shape for Save/Load: the UDI, a snapshot
// copy of the algorithm, and a snapshot copy of the population.
type gobPayload struct {
	UDI  UDI
	Algo algorithm.Algorithm
	Pop  population.Population
}

// Save writes a tagged encoding of isl's UDI, algorithm and population
// to w. Safe to call while the island is evolving.
func (isl *Island) Save(w io.Writer) error {
	return gob.NewEncoder(w).Encode(gobPayload{
		UDI:  isl.ptr.isl.Clone(),
		Algo: isl.GetAlgorithm(),
		Pop:  isl.GetPopulation(),
	})
}

// Load deserializes into a fresh island in isolation and only then
// moves it into *isl; any evolution in flight on the prior *isl is
// waited upon implicitly by Close before the swap.
func (isl *Island) Load(r io.Reader) error {
	var payload gobPayload
	if err := gob.NewDecoder(r).Decode(&payload); err != nil {
		return err
	}
	tmp := NewWithUDI(payload.UDI, payload.Algo, payload.Pop)
	if isl.ptr != nil {
		isl.Close()
	}
	isl.ptr = tmp.ptr
	return nil
}

// Bytes returns the Save encoding of isl.
func (isl *Island) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := isl.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromBytes loads an island from the Save encoding produced by Bytes.
func FromBytes(data []byte) (*Island, error) {
	isl := &Island{}
	if err := isl.Load(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return isl, nil
}
