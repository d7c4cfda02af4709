package admission

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeClock is a manually advanced clock shared by the admission tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(clock *fakeClock) *Limiter {
	return NewLimiter(zap.NewNop(), LimiterOptions{
		Interval:    time.Minute,
		MaxRequests: 3,
		Clock:       clock.Now,
	})
}

func TestLimiter_AllowsUpToMax(t *testing.T) {
	l := newTestLimiter(newFakeClock())

	for i := 1; i <= 3; i++ {
		d := l.Check("203.0.113.7")
		require.True(t, d.Allowed, "request %d should be allowed", i)
		assert.Equal(t, 3-i, d.Remaining)
	}

	d := l.Check("203.0.113.7")
	assert.False(t, d.Allowed)
	assert.Positive(t, d.RetryAfter)
	assert.LessOrEqual(t, d.RetryAfter, 60)
}

func TestLimiter_IdentifiersIndependent(t *testing.T) {
	l := newTestLimiter(newFakeClock())

	for i := 0; i < 4; i++ {
		l.Check("203.0.113.7")
	}
	d := l.Check("198.51.100.2")
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Remaining)
}

func TestLimiter_WindowResetsAfterExpiry(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(clock)

	for i := 0; i < 5; i++ {
		l.Check("203.0.113.7")
	}
	require.False(t, l.Check("203.0.113.7").Allowed)

	clock.Advance(61 * time.Second)

	d := l.Check("203.0.113.7")
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Remaining, "window should restart at count 1")
}

func TestLimiter_DeniedAttemptsStillCharge(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(clock)

	for i := 0; i < 3; i++ {
		l.Check("203.0.113.7")
	}

	// Half a window of denied probing must not move the reset boundary.
	clock.Advance(30 * time.Second)
	d := l.Check("203.0.113.7")
	require.False(t, d.Allowed)
	assert.Equal(t, 30, d.RetryAfter)
}

func TestLimiter_RetryAfterRoundsUp(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(clock)

	for i := 0; i < 3; i++ {
		l.Check("203.0.113.7")
	}
	clock.Advance(59*time.Second + 500*time.Millisecond)

	d := l.Check("203.0.113.7")
	require.False(t, d.Allowed)
	assert.Equal(t, 1, d.RetryAfter)
}

func TestLimiter_SweepRemovesOnlyExpired(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(clock)

	l.Check("stale")
	clock.Advance(90 * time.Second)
	l.Check("fresh")
	require.Equal(t, 2, l.Len())

	l.sweep()

	assert.Equal(t, 1, l.Len())

	// A check after deletion recreates the entry as if fresh.
	d := l.Check("stale")
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Remaining)
}

func TestLimiter_ConcurrentChecksNeverExceedMax(t *testing.T) {
	l := newTestLimiter(newFakeClock())

	var wg sync.WaitGroup
	allowed := make(chan struct{}, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Check("203.0.113.7").Allowed {
				allowed <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(allowed)

	count := 0
	for range allowed {
		count++
	}
	assert.Equal(t, 3, count)
}

func TestLimiter_ZeroOptionsFallBackToDefaults(t *testing.T) {
	l := NewLimiter(zap.NewNop(), LimiterOptions{})
	assert.Equal(t, time.Minute, l.opts.Interval)
	assert.Equal(t, 3, l.opts.MaxRequests)
	assert.Equal(t, 10*time.Minute, l.opts.SweepEvery)
}
