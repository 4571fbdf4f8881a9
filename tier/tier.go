// Package tier defines the thread-safety tier that every problem,
// algorithm and BFE/UDI driver self-declares through get_thread_safety.
package tier

// Safety is a totally ordered thread-safety guarantee. Comparisons
// across the core always use >=; a tier is fixed at construction time
// and is never lowered at runtime.
type Safety int

const (
	// None means the object is unsafe to even read concurrently.
	None Safety = iota
	// CopyOnly means concurrent copies are safe but calls are not reentrant.
	CopyOnly
	// Basic means multiple instances are usable from multiple threads, but
	// a single instance is not reentrant.
	Basic
	// Constant means a single instance can be called reentrantly from
	// multiple threads at once.
	Constant
)

// String renders the tier the way the core's stream output and error
// messages expect it.
func (s Safety) String() string {
	switch s {
	case None:
		return "none"
	case CopyOnly:
		return "copyonly"
	case Basic:
		return "basic"
	case Constant:
		return "constant"
	default:
		return "unknown"
	}
}
