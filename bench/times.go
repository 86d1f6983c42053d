package bench

import "math"

// Unset marks a sample that has not been observed yet.
const Unset uint64 = math.MaxUint64

// Sample is the best-of-N record for one implementation.
type Sample struct {
	Name string
	// Best is the smallest elapsed time seen, in nanoseconds.
	Best     uint64
	Runs     int
	Failures int
}

// Observed reports whether at least one run was recorded.
func (s Sample) Observed() bool {
	return s.Runs > 0
}

// Micros is Best in whole microseconds, truncated.
func (s Sample) Micros() uint64 {
	return s.Best / 1000
}

// Times holds one Sample per implementation in benchmark order.
type Times struct {
	Op      string
	Runs    int
	Samples []Sample
}

func NewTimes(op string, runs int, names []string) *Times {
	t := &Times{Op: op, Runs: runs, Samples: make([]Sample, len(names))}
	for i, name := range names {
		t.Samples[i] = Sample{Name: name, Best: Unset}
	}
	return t
}

// Observe folds one elapsed time into sample i. Failed runs still count
// towards the minimum.
func (t *Times) Observe(i int, elapsed uint64, failed bool) {
	s := &t.Samples[i]
	s.Runs++
	if failed {
		s.Failures++
	}
	if elapsed < s.Best {
		s.Best = elapsed
	}
}

func (t *Times) Names() []string {
	names := make([]string, len(t.Samples))
	for i, s := range t.Samples {
		names[i] = s.Name
	}
	return names
}
