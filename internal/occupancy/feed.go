// Package occupancy serves the static map catalog (zone polygons and
// parking spots) and a periodically regenerated mock occupancy feed.
package occupancy

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"kaposvar-plus-backend/config"
)

// MapZone is a zone polygon drawn on the city map.
type MapZone struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Color       string       `json:"color"`
	Coordinates [][2]float64 `json:"coordinates"`
}

// Spot is a parking lot marker on the map.
type Spot struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Zone string  `json:"zone"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

var mapZones = []MapZone{
	{ID: "Z1", Name: "I. Zóna", Color: "#3b82f6", Coordinates: [][2]float64{
		{46.365, 17.785}, {46.365, 17.795}, {46.355, 17.795}, {46.355, 17.785},
	}},
	{ID: "Z2", Name: "II. Zóna", Color: "#f59e0b", Coordinates: [][2]float64{
		{46.375, 17.785}, {46.375, 17.795}, {46.365, 17.795}, {46.365, 17.785},
	}},
	{ID: "Z3", Name: "III. Zóna", Color: "#8b5cf6", Coordinates: [][2]float64{
		{46.365, 17.775}, {46.365, 17.785}, {46.355, 17.785}, {46.355, 17.775},
	}},
}

var spots = []Spot{
	{ID: "P1", Name: "P1 Parkoló", Zone: "Z1", Lat: 46.3617, Lng: 17.7875},
	{ID: "P2", Name: "P2 Parkoló", Zone: "Z1", Lat: 46.3607, Lng: 17.7885},
	{ID: "P3", Name: "P3 Parkoló", Zone: "Z2", Lat: 46.3717, Lng: 17.7885},
	{ID: "P4", Name: "P4 Parkoló", Zone: "Z2", Lat: 46.3727, Lng: 17.7875},
	{ID: "P5", Name: "P5 Parkoló", Zone: "Z3", Lat: 46.3607, Lng: 17.7775},
	{ID: "P6", Name: "P6 Parkoló", Zone: "Z3", Lat: 46.3617, Lng: 17.7785},
}

// Zones returns the static zone polygons.
func Zones() []MapZone {
	out := make([]MapZone, len(mapZones))
	copy(out, mapZones)
	return out
}

// SpotStatus is a spot plus its current mock occupancy.
type SpotStatus struct {
	Spot
	Occupied bool `json:"occupied"`
}

// Service regenerates the mock occupancy feed on a fixed interval.
// Each generation depends only on the tick, so missed ticks
// self-correct on the next one.
type Service struct {
	cfg *config.OccupancyConfig

	mu          sync.RWMutex
	occupied    map[string]bool
	generatedAt time.Time
}

// NewService creates the feed and seeds an initial generation.
func NewService(cfg *config.OccupancyConfig) *Service {
	s := &Service{cfg: cfg, occupied: make(map[string]bool)}
	s.Regenerate(time.Now())
	return s
}

// Run regenerates the feed on the configured interval until the
// context is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		log.Println("Occupancy feed is disabled. Not starting.")
		return
	}
	log.Println("Starting occupancy feed...")

	timer := time.NewTimer(s.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Occupancy feed shutting down.")
			return
		case now := <-timer.C:
			s.Regenerate(now)
			timer.Reset(s.cfg.Interval)
		}
	}
}

// Regenerate rolls fresh occupancy for every spot.
func (s *Service) Regenerate(now time.Time) {
	occupied := make(map[string]bool, len(spots))
	for _, spot := range spots {
		occupied[spot.ID] = rand.Float64() < s.cfg.OccupiedProbability
	}

	s.mu.Lock()
	s.occupied = occupied
	s.generatedAt = now
	s.mu.Unlock()
}

// Snapshot returns the spot list with current occupancy and the
// generation instant.
func (s *Service) Snapshot() ([]SpotStatus, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]SpotStatus, len(spots))
	for i, spot := range spots {
		out[i] = SpotStatus{Spot: spot, Occupied: s.occupied[spot.ID]}
	}
	return out, s.generatedAt
}
