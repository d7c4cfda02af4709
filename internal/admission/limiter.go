package admission

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/types"
)

// LimiterOptions configures the fixed-window rate limiter.
type LimiterOptions struct {
	// Interval is the length of a counting window.
	Interval time.Duration

	// MaxRequests is the number of requests allowed per window.
	MaxRequests int

	// SweepEvery is how often expired entries are removed.
	SweepEvery time.Duration

	// Clock overrides time.Now, for tests.
	Clock func() time.Time
}

// DefaultLimiterOptions returns the production policy: 3 submissions per
// client identifier per 60-second window, swept every 10 minutes.
func DefaultLimiterOptions() LimiterOptions {
	return LimiterOptions{
		Interval:    time.Minute,
		MaxRequests: 3,
		SweepEvery:  10 * time.Minute,
	}
}

// windowEntry tracks one identifier's current window.
type windowEntry struct {
	count   int
	resetAt time.Time
}

// Limiter is a fixed-window rate limiter keyed by client identifier.
type Limiter struct {
	logger *zap.Logger
	opts   LimiterOptions
	clock  func() time.Time

	mu      sync.Mutex
	entries map[string]windowEntry
}

// NewLimiter creates a Limiter. Zero or negative option fields fall back to
// the defaults.
func NewLimiter(logger *zap.Logger, opts LimiterOptions) *Limiter {
	def := DefaultLimiterOptions()
	if opts.Interval <= 0 {
		opts.Interval = def.Interval
	}
	if opts.MaxRequests <= 0 {
		opts.MaxRequests = def.MaxRequests
	}
	if opts.SweepEvery <= 0 {
		opts.SweepEvery = def.SweepEvery
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Limiter{
		logger:  logger.Named("limiter"),
		opts:    opts,
		clock:   clock,
		entries: make(map[string]windowEntry),
	}
}

// Check charges one request against the identifier's window and reports
// whether it is admitted. A fresh or expired window restarts at count 1.
// Denied attempts are not rolled back: they keep charging the window so a
// client probing the limit never resets it.
func (l *Limiter) Check(identifier string) types.Decision {
	now := l.clock()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[identifier]
	if !ok || !now.Before(entry.resetAt) {
		l.entries[identifier] = windowEntry{count: 1, resetAt: now.Add(l.opts.Interval)}
		rateDecisions.WithLabelValues("allowed").Inc()
		return types.Decision{Allowed: true, Remaining: l.opts.MaxRequests - 1}
	}

	entry.count++
	l.entries[identifier] = entry

	if entry.count > l.opts.MaxRequests {
		retryAfter := int((entry.resetAt.Sub(now) + time.Second - 1) / time.Second)
		rateDecisions.WithLabelValues("denied").Inc()
		l.logger.Debug("Identifier rate limited",
			zap.String("identifier", identifier),
			zap.Int("count", entry.count),
			zap.Int("retry_after_s", retryAfter),
		)
		return types.Decision{Allowed: false, RetryAfter: retryAfter}
	}

	rateDecisions.WithLabelValues("allowed").Inc()
	return types.Decision{Allowed: true, Remaining: l.opts.MaxRequests - entry.count}
}

// Len reports the number of tracked identifiers, for the status surface.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Run sweeps expired windows until the context is cancelled. Non-blocking
// callers should invoke it in a goroutine.
func (l *Limiter) Run(ctx context.Context) {
	ticker := time.NewTicker(l.opts.SweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

// sweep removes every entry whose window has already expired. Identifiers
// mid-window are untouched, bounding memory growth from one-time clients
// without ever shortening an active window.
func (l *Limiter) sweep() {
	now := l.clock()

	l.mu.Lock()
	removed := 0
	for id, entry := range l.entries {
		if !now.Before(entry.resetAt) {
			delete(l.entries, id)
			removed++
		}
	}
	remaining := len(l.entries)
	l.mu.Unlock()

	if removed > 0 {
		l.logger.Debug("Swept expired rate-limit entries",
			zap.Int("removed", removed),
			zap.Int("remaining", remaining),
		)
	}
}
