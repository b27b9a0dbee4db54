package parking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kaposvar-plus-backend/internal/kv"
)

func testSession(startedAt time.Time) Session {
	return Session{
		Plate:         "ABC-123",
		Zone:          "Z1", // 400 Ft/h
		StartedAt:     startedAt.UnixMilli(),
		ConvenienceFt: 60,
	}
}

func TestTotalsMinimumChargeFloor(t *testing.T) {
	ledger := NewLedger(kv.NewMemStore(), nil, testPolicy)
	start := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	session := testSession(start)

	// A session lasting under a minute still bills one minute.
	for _, elapsed := range []time.Duration{0, time.Second, 59 * time.Second} {
		got := ledger.Totals(session, start.Add(elapsed))
		assert.Equal(t, 1, got.Minutes, "elapsed %v", elapsed)
	}
}

func TestTotalsFeeMath(t *testing.T) {
	ledger := NewLedger(kv.NewMemStore(), nil, testPolicy)
	start := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	session := testSession(start)

	// 90 minutes in Z1: ceil(1.5h * 400) = 600, plus the 60 Ft add-on.
	got := ledger.Totals(session, start.Add(90*time.Minute))
	assert.Equal(t, 90, got.Minutes)
	assert.Equal(t, 600, got.FeeFt)
	assert.Equal(t, 660, got.TotalFt)

	// Partial minutes bill as whole minutes (ceiling).
	got = ledger.Totals(session, start.Add(61*time.Second))
	assert.Equal(t, 2, got.Minutes)
}

func TestTotalsStoppedSessionBillsToStopInstant(t *testing.T) {
	ledger := NewLedger(kv.NewMemStore(), nil, testPolicy)
	start := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	session := testSession(start)
	session.StoppedAt = start.Add(20 * time.Minute).UnixMilli()

	atStop := ledger.Totals(session, start.Add(20*time.Minute))
	muchLater := ledger.Totals(session, start.Add(8*time.Hour))
	assert.Equal(t, atStop, muchLater, "terminal sessions are immutable")
}

func TestTotalsFeeIsMonotonic(t *testing.T) {
	ledger := NewLedger(kv.NewMemStore(), nil, testPolicy)
	start := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	session := testSession(start)

	prev := ledger.Totals(session, start)
	for elapsed := time.Minute; elapsed <= 6*time.Hour; elapsed += 7 * time.Minute {
		got := ledger.Totals(session, start.Add(elapsed))
		assert.GreaterOrEqual(t, got.FeeFt, prev.FeeFt)
		assert.GreaterOrEqual(t, got.TotalFt, prev.TotalFt)
		prev = got
	}
}

// The wire key says mmss, but the two components are floor(minutes/60)
// and minutes%60: the clock actually renders hours:minutes. The
// behavior is preserved deliberately; this test pins it.
func TestTotalsClockIsHoursMinutes(t *testing.T) {
	ledger := NewLedger(kv.NewMemStore(), nil, testPolicy)
	start := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	session := testSession(start)

	assert.Equal(t, "00:01", ledger.Totals(session, start.Add(30*time.Second)).Clock)
	assert.Equal(t, "00:59", ledger.Totals(session, start.Add(59*time.Minute)).Clock)
	assert.Equal(t, "01:00", ledger.Totals(session, start.Add(60*time.Minute)).Clock)
	assert.Equal(t, "02:15", ledger.Totals(session, start.Add(135*time.Minute)).Clock)
}
