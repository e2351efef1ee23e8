package binding

import "github.com/five82/thwip/internal/catalog"

// Phase is the lifecycle stage of a FetchState.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FetchState is an immutable snapshot of one view's remote collection.
// Transitions always build a new value through the constructors below.
type FetchState[R any] struct {
	phase      Phase
	endpoint   string
	generation uint64
	records    []R
	err        *catalog.FetchError
}

// Idle is the state before the first mount.
func Idle[R any]() FetchState[R] {
	return FetchState[R]{phase: PhaseIdle}
}

// Loading marks a request for endpoint tagged with generation.
func Loading[R any](endpoint string, generation uint64) FetchState[R] {
	return FetchState[R]{phase: PhaseLoading, endpoint: endpoint, generation: generation}
}

// Loaded holds a decoded collection. A nil collection is stored as empty.
func Loaded[R any](endpoint string, generation uint64, records []R) FetchState[R] {
	if records == nil {
		records = []R{}
	}
	return FetchState[R]{phase: PhaseLoaded, endpoint: endpoint, generation: generation, records: records}
}

// Failed holds a classified fetch failure.
func Failed[R any](endpoint string, generation uint64, err *catalog.FetchError) FetchState[R] {
	return FetchState[R]{phase: PhaseFailed, endpoint: endpoint, generation: generation, err: err}
}

func (s FetchState[R]) Phase() Phase             { return s.phase }
func (s FetchState[R]) Endpoint() string         { return s.endpoint }
func (s FetchState[R]) Generation() uint64       { return s.generation }
func (s FetchState[R]) Err() *catalog.FetchError { return s.err }

// Records returns a copy of the loaded collection, or nil outside Loaded.
func (s FetchState[R]) Records() []R {
	if s.phase != PhaseLoaded {
		return nil
	}
	out := make([]R, len(s.records))
	copy(out, s.records)
	return out
}
