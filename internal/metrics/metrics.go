package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"enrichment-dash/internal/gene"
)

// Observer receives one event per filter invocation.
type Observer interface {
	ObserveFilter(origin string, path gene.Path, rows int, d time.Duration)
}

// Origins of filter calls.
const (
	OriginTUI  = "tui"
	OriginHTTP = "http"
	OriginCLI  = "cli"
)

// Visible runs gene.Visible and reports the call to obs (which may be nil).
func Visible(obs Observer, origin string, ds *gene.Dataset, v gene.ViewState) *roaring.Bitmap {
	start := time.Now()
	bm := gene.Visible(ds, v)
	if obs != nil {
		obs.ObserveFilter(origin, gene.PathOf(v), int(bm.GetCardinality()), time.Since(start))
	}
	return bm
}

// Recorder holds lightweight counters for filter activity.
type Recorder struct {
	TotalCalls     atomic.Int64
	SelectionCalls atomic.Int64
	ViewportCalls  atomic.Int64
	TotalNanos     atomic.Int64
	LastRows       atomic.Int64

	mu           sync.Mutex
	originCounts map[string]int64
	emptyResults int64
}

// NewRecorder creates a new recorder.
func NewRecorder() *Recorder { return &Recorder{originCounts: make(map[string]int64)} }

// ObserveFilter implements Observer.
func (r *Recorder) ObserveFilter(origin string, path gene.Path, rows int, d time.Duration) {
	r.TotalCalls.Add(1)
	switch path {
	case gene.PathSelection:
		r.SelectionCalls.Add(1)
	default:
		r.ViewportCalls.Add(1)
	}
	r.TotalNanos.Add(d.Nanoseconds())
	r.LastRows.Store(int64(rows))

	r.mu.Lock()
	r.originCounts[origin]++
	if rows == 0 {
		r.emptyResults++
	}
	r.mu.Unlock()
}

// Snapshot is a read-only copy of recorder state.
type Snapshot struct {
	TotalCalls     int64
	SelectionCalls int64
	ViewportCalls  int64
	TotalNanos     int64
	LastRows       int64
	EmptyResults   int64
	OriginCounts   map[string]int64
}

// Snapshot returns a copy of the counters.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	origins := make(map[string]int64, len(r.originCounts))
	for k, v := range r.originCounts {
		origins[k] = v
	}
	return Snapshot{
		TotalCalls:     r.TotalCalls.Load(),
		SelectionCalls: r.SelectionCalls.Load(),
		ViewportCalls:  r.ViewportCalls.Load(),
		TotalNanos:     r.TotalNanos.Load(),
		LastRows:       r.LastRows.Load(),
		EmptyResults:   r.emptyResults,
		OriginCounts:   origins,
	}
}

// MeanLatency returns the average filter duration.
func (s Snapshot) MeanLatency() time.Duration {
	if s.TotalCalls == 0 {
		return 0
	}
	return time.Duration(s.TotalNanos / s.TotalCalls)
}

// Multi fans events out to several observers.
type Multi []Observer

// ObserveFilter implements Observer.
func (m Multi) ObserveFilter(origin string, path gene.Path, rows int, d time.Duration) {
	for _, o := range m {
		if o != nil {
			o.ObserveFilter(origin, path, rows, d)
		}
	}
}
