package statsd

import (
	"sync"
	"time"
)

// RecordedMetric captures a single emission for assertions.
type RecordedMetric struct {
	Name  string
	Value int64
	Tags  map[string]string
}

// Recorder is an in-memory Sink for tests.
type Recorder struct {
	mu     sync.Mutex
	counts []RecordedMetric
}

var _ Sink = (*Recorder)(nil)

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Count(name string, value int64, tags map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts = append(r.counts, RecordedMetric{Name: name, Value: value, Tags: tags})
}

func (r *Recorder) Timing(name string, value time.Duration, tags map[string]string) {}

// Counts returns a copy of the recorded counter emissions.
func (r *Recorder) Counts() []RecordedMetric {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedMetric, len(r.counts))
	copy(out, r.counts)
	return out
}

// CountTotal sums all counter values recorded for a metric name.
func (r *Recorder) CountTotal(name string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, m := range r.counts {
		if m.Name == name {
			total += m.Value
		}
	}
	return total
}
