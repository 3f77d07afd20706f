package feed

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// Sample is one meter report: how many events arrived in the window that
// just closed, and the long-run average per interval since the stream
// started. The average is cumulative on purpose; it smooths out bursts
// instead of chasing them.
type Sample struct {
	Count   int
	Average float64
}

// AverageString formats the average to one decimal, dropping a trailing
// ".0" so a steady stream reads "12" rather than "12.0".
func (s Sample) AverageString() string {
	out := strconv.FormatFloat(s.Average, 'f', 1, 64)
	return strings.TrimSuffix(out, ".0")
}

// Meter counts events and reports a Sample once per elapsed interval. Add
// may fire the callback early when the interval has already passed, which
// keeps reports prompt under bursty arrival. After Kill the meter is
// terminal: late ticks and late Adds do nothing.
type Meter struct {
	interval time.Duration
	callback func(Sample)

	mu     sync.Mutex
	count  int
	total  int
	start  time.Time
	since  time.Time
	killed bool

	done chan struct{}
}

// NewMeter starts a meter sampling at the given interval. The callback is
// invoked outside the meter's lock, at most once per elapsed interval.
func NewMeter(interval time.Duration, callback func(Sample)) *Meter {
	now := time.Now()
	m := &Meter{
		interval: interval,
		callback: callback,
		start:    now,
		since:    now,
		done:     make(chan struct{}),
	}
	go m.run()
	return m
}

func (m *Meter) run() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.check()
		}
	}
}

// Add records n events against both the window counter and the running
// total.
func (m *Meter) Add(n int) {
	m.mu.Lock()
	if m.killed {
		m.mu.Unlock()
		return
	}
	m.count += n
	m.total += n
	m.mu.Unlock()
	m.check()
}

// Total returns the number of events recorded since the meter started.
func (m *Meter) Total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total
}

// check fires the callback and resets the window if a full interval has
// elapsed since the last report.
func (m *Meter) check() {
	m.mu.Lock()
	if m.killed {
		m.mu.Unlock()
		return
	}
	now := time.Now()
	if now.Sub(m.since) < m.interval {
		m.mu.Unlock()
		return
	}
	elapsedTotal := now.Sub(m.start)
	sample := Sample{
		Count:   m.count,
		Average: float64(m.total) / (float64(elapsedTotal) / float64(m.interval)),
	}
	m.since = now
	m.count = 0
	cb := m.callback
	m.mu.Unlock()

	if cb != nil {
		cb(sample)
	}
}

// Kill stops sampling permanently. Safe to call more than once.
func (m *Meter) Kill() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.killed {
		return
	}
	m.killed = true
	close(m.done)
}
