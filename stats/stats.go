// Package stats keeps the running numbers a search reports while it works:
// how much was checked, found and written, and how long jobs take.
package stats

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// Counters are shared by every worker of a search. All fields are atomics so
// the hot path never takes a lock.
type Counters struct {
	Checked atomic.Int64
	Found   atomic.Int64
	Written atomic.Int64
	Jobs    atomic.Int64
	Failed  atomic.Int64
}

type Snapshot struct {
	Checked int64
	Found   int64
	Written int64
	Jobs    int64
	Failed  int64
}

func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Checked: c.Checked.Load(),
		Found:   c.Found.Load(),
		Written: c.Written.Load(),
		Jobs:    c.Jobs.Load(),
		Failed:  c.Failed.Load(),
	}
}

// Statistic is a running mean and variance, updated with Welford's
// algorithm.
type Statistic struct {
	n    int
	mean float64
	m2   float64
}

func (s *Statistic) Push(val float64) {
	s.n++
	delta := val - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (val - s.mean)
}

func (s *Statistic) Mean() float64 {
	return s.mean
}

// Variance is the sample variance; zero with fewer than two values.
func (s *Statistic) Variance() float64 {
	if s.n <= 1 {
		return 0.0
	}
	return s.m2 / float64(s.n-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistic) Count() int {
	return s.n
}

// JobTimer records how long finished jobs took and estimates how long the
// rest will take.
type JobTimer struct {
	sync.Mutex
	total   int
	workers int
	stat    Statistic
}

func NewJobTimer(total, workers int) *JobTimer {
	if workers < 1 {
		workers = 1
	}
	return &JobTimer{total: total, workers: workers}
}

func (t *JobTimer) Observe(d time.Duration) {
	t.Lock()
	defer t.Unlock()
	t.stat.Push(d.Seconds())
}

// Mean and Stdev of job durations so far.
func (t *JobTimer) Mean() time.Duration {
	t.Lock()
	defer t.Unlock()
	return seconds(t.stat.Mean())
}

func (t *JobTimer) Stdev() time.Duration {
	t.Lock()
	defer t.Unlock()
	return seconds(t.stat.Stdev())
}

// Remaining assumes the unfinished jobs take the mean time and are spread
// evenly over the workers.
func (t *JobTimer) Remaining() time.Duration {
	t.Lock()
	defer t.Unlock()
	left := t.total - t.stat.Count()
	if left <= 0 || t.stat.Count() == 0 {
		return 0
	}
	return seconds(t.stat.Mean() * float64(left) / float64(t.workers))
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
