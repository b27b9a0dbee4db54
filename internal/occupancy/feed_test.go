package occupancy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kaposvar-plus-backend/config"
)

func TestSnapshotCoversAllSpots(t *testing.T) {
	svc := NewService(&config.OccupancyConfig{OccupiedProbability: 0.6})

	statuses, _ := svc.Snapshot()
	require.Len(t, statuses, 6)
	seen := map[string]bool{}
	for _, st := range statuses {
		seen[st.ID] = true
	}
	for _, id := range []string{"P1", "P2", "P3", "P4", "P5", "P6"} {
		assert.True(t, seen[id], "missing spot %s", id)
	}
}

func TestRegenerateUpdatesGenerationInstant(t *testing.T) {
	svc := NewService(&config.OccupancyConfig{OccupiedProbability: 0.6})

	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	svc.Regenerate(now)
	_, generatedAt := svc.Snapshot()
	assert.Equal(t, now, generatedAt)
}

func TestOccupancyProbabilityExtremes(t *testing.T) {
	allFree := NewService(&config.OccupancyConfig{OccupiedProbability: 0.0000001})
	allFree.Regenerate(time.Now())
	statuses, _ := allFree.Snapshot()
	for _, st := range statuses {
		assert.False(t, st.Occupied)
	}

	allTaken := NewService(&config.OccupancyConfig{OccupiedProbability: 1})
	allTaken.Regenerate(time.Now())
	statuses, _ = allTaken.Snapshot()
	for _, st := range statuses {
		assert.True(t, st.Occupied)
	}
}

func TestZonesCatalog(t *testing.T) {
	zones := Zones()
	require.Len(t, zones, 3)
	assert.Equal(t, "Z1", zones[0].ID)
	assert.Len(t, zones[0].Coordinates, 4)
}
