package admission

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// GuardOptions configures the duplicate-submission guard.
type GuardOptions struct {
	// History is the trailing window of timestamps retained per student.
	History time.Duration

	// Debounce is the minimum gap between two submissions from the same
	// student.
	Debounce time.Duration

	// SweepEvery is how often students with an empty history are dropped.
	SweepEvery time.Duration

	// Clock overrides time.Now, for tests.
	Clock func() time.Time
}

// DefaultGuardOptions returns the production policy: 5 minutes of history,
// a 60-second debounce, swept every 10 minutes.
func DefaultGuardOptions() GuardOptions {
	return GuardOptions{
		History:    5 * time.Minute,
		Debounce:   time.Minute,
		SweepEvery: 10 * time.Minute,
	}
}

// DuplicateGuard debounces repeat submissions per student name. Unlike the
// Limiter it keys on identity rather than network address, so it holds for
// students sharing a campus NAT or proxy.
type DuplicateGuard struct {
	logger *zap.Logger
	opts   GuardOptions
	clock  func() time.Time

	mu      sync.Mutex
	history map[string][]time.Time
}

// NewDuplicateGuard creates a DuplicateGuard. Zero or negative option fields
// fall back to the defaults.
func NewDuplicateGuard(logger *zap.Logger, opts GuardOptions) *DuplicateGuard {
	def := DefaultGuardOptions()
	if opts.History <= 0 {
		opts.History = def.History
	}
	if opts.Debounce <= 0 {
		opts.Debounce = def.Debounce
	}
	if opts.SweepEvery <= 0 {
		opts.SweepEvery = def.SweepEvery
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &DuplicateGuard{
		logger:  logger.Named("dupguard"),
		opts:    opts,
		clock:   clock,
		history: make(map[string][]time.Time),
	}
}

// Check records a submission attempt for the student and reports whether it
// is a duplicate. On duplicate it returns how long until the debounce
// expires; the rejected attempt itself is NOT recorded, so the debounce
// stays anchored to the last accepted submission rather than refreshing on
// every retry.
func (g *DuplicateGuard) Check(studentName string) (retryAfter time.Duration, duplicate bool) {
	now := g.clock()

	g.mu.Lock()
	defer g.mu.Unlock()

	past, ok := g.history[studentName]
	if !ok {
		g.history[studentName] = []time.Time{now}
		duplicateDecisions.WithLabelValues("allowed").Inc()
		return 0, false
	}

	// Prune anything outside the retained history window.
	kept := past[:0]
	for _, ts := range past {
		if now.Sub(ts) < g.opts.History {
			kept = append(kept, ts)
		}
	}

	var latest time.Time
	for _, ts := range kept {
		if now.Sub(ts) < g.opts.Debounce && ts.After(latest) {
			latest = ts
		}
	}
	if !latest.IsZero() {
		g.history[studentName] = kept
		remaining := g.opts.Debounce - now.Sub(latest)
		duplicateDecisions.WithLabelValues("denied").Inc()
		g.logger.Debug("Duplicate submission suppressed",
			zap.String("student", studentName),
			zap.Duration("retry_after", remaining),
		)
		return remaining, true
	}

	g.history[studentName] = append(kept, now)
	duplicateDecisions.WithLabelValues("allowed").Inc()
	return 0, false
}

// Len reports the number of students with retained history.
func (g *DuplicateGuard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.history)
}

// Run sweeps students whose entire history has aged out, until the context
// is cancelled.
func (g *DuplicateGuard) Run(ctx context.Context) {
	ticker := time.NewTicker(g.opts.SweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.sweep()
		}
	}
}

func (g *DuplicateGuard) sweep() {
	now := g.clock()

	g.mu.Lock()
	removed := 0
	for name, past := range g.history {
		stale := true
		for _, ts := range past {
			if now.Sub(ts) < g.opts.History {
				stale = false
				break
			}
		}
		if stale {
			delete(g.history, name)
			removed++
		}
	}
	g.mu.Unlock()

	if removed > 0 {
		g.logger.Debug("Swept stale submission histories", zap.Int("removed", removed))
	}
}
