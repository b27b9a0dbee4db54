package parking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kaposvar-plus-backend/internal/kv"
)

func newTestMeter(now time.Time) (*Meter, *kv.MemStore, *time.Time) {
	store := kv.NewMemStore()
	meter := NewMeter(store)
	clock := now
	meter.now = func() time.Time { return clock }
	seq := 0
	meter.newID = func() string {
		seq++
		return fmt.Sprintf("car-%d", seq)
	}
	return meter, store, &clock
}

func TestCost(t *testing.T) {
	assert.Equal(t, 0, Cost(0, 480), "zero elapsed time costs zero, no floor")
	assert.Equal(t, 480, Cost(3600, 480), "one full hour costs the hourly rate")
	assert.Equal(t, 240, Cost(1800, 480))
	assert.Equal(t, 4, Cost(30, 480), "rounds to nearest forint")
}

func TestMeterAddCar(t *testing.T) {
	meter, _, _ := newTestMeter(time.Now())
	ctx := context.Background()

	car, err := meter.AddCar(ctx, "Családi autó", "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "ABC-123", car.Plate, "plate is uppercased")

	// Adding a car auto-selects it.
	selected, _ := meter.Selection(ctx)
	require.NotNil(t, selected)
	assert.Equal(t, car.ID, selected.ID)

	_, err = meter.AddCar(ctx, "", "ABC-123")
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = meter.AddCar(ctx, "Kisautó", "AB")
	assert.ErrorIs(t, err, ErrShortPlate)

	assert.Len(t, meter.Cars(ctx), 1)
}

func TestMeterStartRequiresSelection(t *testing.T) {
	meter, _, _ := newTestMeter(time.Now())
	ctx := context.Background()

	_, err := meter.Start(ctx)
	assert.ErrorIs(t, err, ErrNoSelection)

	_, err = meter.AddCar(ctx, "Autó", "ABC-123")
	require.NoError(t, err)
	_, err = meter.Start(ctx)
	assert.ErrorIs(t, err, ErrNoSelection, "a zone is still missing")

	require.NoError(t, meter.SelectZone(ctx, "zone-2"))
	_, err = meter.Start(ctx)
	assert.NoError(t, err)
}

func TestMeterSelectionLockedWhileActive(t *testing.T) {
	meter, _, _ := newTestMeter(time.Now())
	ctx := context.Background()

	car, err := meter.AddCar(ctx, "Autó", "ABC-123")
	require.NoError(t, err)
	require.NoError(t, meter.SelectZone(ctx, "zone-1"))
	_, err = meter.Start(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, meter.SelectCar(ctx, car.ID), ErrSessionActive)
	assert.ErrorIs(t, meter.SelectZone(ctx, "zone-3"), ErrSessionActive)

	// Stopping unlocks the selections and keeps them.
	require.NoError(t, meter.Stop(ctx))
	require.NoError(t, meter.SelectZone(ctx, "zone-3"))
	selCar, selZone := meter.Selection(ctx)
	require.NotNil(t, selCar)
	require.NotNil(t, selZone)
	assert.Equal(t, car.ID, selCar.ID)
	assert.Equal(t, "zone-3", selZone.ID)
}

func TestMeterStatus(t *testing.T) {
	start := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	meter, _, clock := newTestMeter(start)
	ctx := context.Background()

	_, err := meter.AddCar(ctx, "Autó", "ABC-123")
	require.NoError(t, err)
	require.NoError(t, meter.SelectZone(ctx, "zone-1")) // 480 Ft/h

	idle := meter.Status(ctx, start)
	assert.False(t, idle.Active)
	assert.Zero(t, idle.CostFt)
	assert.Equal(t, "00:00:00", idle.Clock)

	_, err = meter.Start(ctx)
	require.NoError(t, err)

	*clock = start.Add(90 * time.Minute)
	running := meter.Status(ctx, *clock)
	assert.True(t, running.Active)
	assert.Equal(t, int64(5400), running.ElapsedSeconds)
	assert.Equal(t, "01:30:00", running.Clock)
	assert.Equal(t, 720, running.CostFt)

	// Recomputation is idempotent for a fixed instant.
	assert.Equal(t, running, meter.Status(ctx, *clock))

	require.NoError(t, meter.Stop(ctx))
	stopped := meter.Status(ctx, *clock)
	assert.False(t, stopped.Active)
	assert.Zero(t, stopped.ElapsedSeconds, "stop resets elapsed and cost")
	assert.Zero(t, stopped.CostFt)
}

func TestMeterMalformedStartReadsAsInactive(t *testing.T) {
	meter, store, _ := newTestMeter(time.Now())
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, StartTimeSlotKey, "not-a-number"))
	_, active := meter.Active(ctx)
	assert.False(t, active)
}

func TestMeterRecordLocationAutoSelectsZone(t *testing.T) {
	meter, store, _ := newTestMeter(time.Now())
	ctx := context.Background()

	loc := Location{Latitude: 46.3593, Longitude: 17.7968, Accuracy: 12}
	require.NoError(t, meter.RecordLocation(ctx, loc))

	zoneID, ok, err := store.Get(ctx, SelectedZoneSlotKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "zone-1", zoneID)

	// An existing selection is not clobbered by a later fix.
	require.NoError(t, meter.SelectZone(ctx, "zone-5"))
	require.NoError(t, meter.RecordLocation(ctx, loc))
	zoneID, _, _ = store.Get(ctx, SelectedZoneSlotKey)
	assert.Equal(t, "zone-5", zoneID)
}
