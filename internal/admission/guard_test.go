package admission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGuard(clock *fakeClock) *DuplicateGuard {
	return NewDuplicateGuard(zap.NewNop(), GuardOptions{
		History:  5 * time.Minute,
		Debounce: time.Minute,
		Clock:    clock.Now,
	})
}

func TestGuard_FirstSubmissionAllowed(t *testing.T) {
	g := newTestGuard(newFakeClock())

	retry, dup := g.Check("ACHEUK Achraf")
	assert.False(t, dup)
	assert.Zero(t, retry)
}

func TestGuard_SecondWithinDebounceIsDuplicate(t *testing.T) {
	clock := newFakeClock()
	g := newTestGuard(clock)

	g.Check("ACHEUK Achraf")
	clock.Advance(15 * time.Second)

	retry, dup := g.Check("ACHEUK Achraf")
	require.True(t, dup)
	assert.Equal(t, 45*time.Second, retry)
}

func TestGuard_AllowedAgainAfterDebounce(t *testing.T) {
	clock := newFakeClock()
	g := newTestGuard(clock)

	g.Check("ACHEUK Achraf")
	clock.Advance(61 * time.Second)

	_, dup := g.Check("ACHEUK Achraf")
	assert.False(t, dup)
}

func TestGuard_StudentsIndependent(t *testing.T) {
	g := newTestGuard(newFakeClock())

	g.Check("ACHEUK Achraf")
	_, dup := g.Check("BOUDIAF Lina")
	assert.False(t, dup)
}

func TestGuard_RejectedAttemptsDoNotRefreshDebounce(t *testing.T) {
	clock := newFakeClock()
	g := newTestGuard(clock)

	g.Check("ACHEUK Achraf")

	// A burst of rejected retries anchors to the original submission, not
	// to the latest attempt: the remaining wait keeps shrinking toward the
	// original expiry instead of resetting to a full debounce.
	for i := 0; i < 2; i++ {
		clock.Advance(20 * time.Second)
		retry, dup := g.Check("ACHEUK Achraf")
		require.True(t, dup)
		assert.Equal(t, time.Minute-time.Duration(i+1)*20*time.Second, retry)
	}

	// 61s after the accepted submission the debounce has expired, even
	// though the last rejected attempt was only 21s ago.
	clock.Advance(21 * time.Second)
	_, dup := g.Check("ACHEUK Achraf")
	assert.False(t, dup)
}

func TestGuard_HistoryPrunedLazily(t *testing.T) {
	clock := newFakeClock()
	g := newTestGuard(clock)

	g.Check("ACHEUK Achraf")
	clock.Advance(6 * time.Minute)

	_, dup := g.Check("ACHEUK Achraf")
	assert.False(t, dup)

	g.mu.Lock()
	defer g.mu.Unlock()
	assert.Len(t, g.history["ACHEUK Achraf"], 1, "aged-out timestamps should be pruned")
}

func TestGuard_SweepDropsStaleStudents(t *testing.T) {
	clock := newFakeClock()
	g := newTestGuard(clock)

	g.Check("ACHEUK Achraf")
	clock.Advance(2 * time.Minute)
	g.Check("BOUDIAF Lina")
	clock.Advance(4 * time.Minute)

	g.sweep()

	assert.Equal(t, 1, g.Len(), "only the student with live history survives")
}

func TestGuard_ZeroOptionsFallBackToDefaults(t *testing.T) {
	g := NewDuplicateGuard(zap.NewNop(), GuardOptions{})
	assert.Equal(t, 5*time.Minute, g.opts.History)
	assert.Equal(t, time.Minute, g.opts.Debounce)
}
