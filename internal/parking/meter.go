package parking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"kaposvar-plus-backend/internal/kv"
)

// Durable slots of the car/zone meter. The session is reconstructed
// from three independent values; it is active iff a start instant is
// present.
const (
	CarsSlotKey         = "parking_cars"
	SelectedCarSlotKey  = "selectedCarId"
	SelectedZoneSlotKey = "selectedZoneId"
	StartTimeSlotKey    = "parkingStartTime"
	LocationSlotKey     = "locationData"
)

var (
	ErrSessionActive = errors.New("selection is locked while parking is active")
	ErrNoSelection   = errors.New("a car and a zone must be selected first")
	ErrUnknownCar    = errors.New("unknown car")
	ErrShortPlate    = errors.New("plate is too short")
	ErrEmptyName     = errors.New("car name is required")
)

// Car is a user-registered vehicle.
type Car struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Plate string `json:"plate"`
}

// Location is a single geolocation fix supplied by the client.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}

// Meter is the car/zone-keyed parking flow: a registry of cars, a
// selected car and zone, and a start instant. Unlike the ledger it has
// no convenience fee and no minimum charge, and stopping clears only
// the start instant, so the selections carry over to the next session.
type Meter struct {
	store kv.Store
	now   func() time.Time
	newID func() string
}

// NewMeter creates a meter over the given store.
func NewMeter(store kv.Store) *Meter {
	return &Meter{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Cars lists the registered cars. Malformed storage reads as empty.
func (m *Meter) Cars(ctx context.Context) []Car {
	raw, ok, err := m.store.Get(ctx, CarsSlotKey)
	if err != nil || !ok {
		return nil
	}
	var cars []Car
	if err := json.Unmarshal([]byte(raw), &cars); err != nil {
		return nil
	}
	return cars
}

// AddCar registers a car and selects it. The plate is uppercased; the
// only format rule here is a minimum length, matching the looser intake
// of this flow.
func (m *Meter) AddCar(ctx context.Context, name, plate string) (Car, error) {
	name = strings.TrimSpace(name)
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if name == "" {
		return Car{}, ErrEmptyName
	}
	if len(plate) < 3 {
		return Car{}, ErrShortPlate
	}

	car := Car{ID: m.newID(), Name: name, Plate: plate}
	cars := append(m.Cars(ctx), car)

	raw, err := json.Marshal(cars)
	if err != nil {
		return Car{}, fmt.Errorf("failed to encode car list: %w", err)
	}
	if err := m.store.Set(ctx, CarsSlotKey, string(raw)); err != nil {
		return Car{}, err
	}
	if err := m.store.Set(ctx, SelectedCarSlotKey, car.ID); err != nil {
		return Car{}, err
	}
	return car, nil
}

// SelectCar picks a registered car. Rejected while parking is active.
func (m *Meter) SelectCar(ctx context.Context, id string) error {
	if _, active := m.Active(ctx); active {
		return ErrSessionActive
	}
	for _, c := range m.Cars(ctx) {
		if c.ID == id {
			return m.store.Set(ctx, SelectedCarSlotKey, id)
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCar, id)
}

// SelectZone picks a catalog zone. Rejected while parking is active.
func (m *Meter) SelectZone(ctx context.Context, id string) error {
	if _, active := m.Active(ctx); active {
		return ErrSessionActive
	}
	if _, ok := MeterZone(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownZone, id)
	}
	return m.store.Set(ctx, SelectedZoneSlotKey, id)
}

// Selection returns the currently selected car and zone, if any.
func (m *Meter) Selection(ctx context.Context) (*Car, *Zone) {
	var car *Car
	if id, ok, _ := m.store.Get(ctx, SelectedCarSlotKey); ok {
		for _, c := range m.Cars(ctx) {
			if c.ID == id {
				picked := c
				car = &picked
				break
			}
		}
	}
	var zone *Zone
	if id, ok, _ := m.store.Get(ctx, SelectedZoneSlotKey); ok {
		if z, found := MeterZone(id); found {
			zone = &z
		}
	}
	return car, zone
}

// Start begins a session. Without both a selected car and zone it
// refuses; with an already-running session the start instant is simply
// overwritten, same as the ledger's overwrite-wins policy.
func (m *Meter) Start(ctx context.Context) (time.Time, error) {
	car, zone := m.Selection(ctx)
	if car == nil || zone == nil {
		return time.Time{}, ErrNoSelection
	}
	startedAt := m.now()
	err := m.store.Set(ctx, StartTimeSlotKey, strconv.FormatInt(startedAt.UnixMilli(), 10))
	if err != nil {
		return time.Time{}, err
	}
	return startedAt, nil
}

// Stop clears only the start instant; car and zone selections persist
// for the next session. Idempotent.
func (m *Meter) Stop(ctx context.Context) error {
	return m.store.Delete(ctx, StartTimeSlotKey)
}

// Active returns the session start instant, if one is present and well
// formed.
func (m *Meter) Active(ctx context.Context) (time.Time, bool) {
	raw, ok, err := m.store.Get(ctx, StartTimeSlotKey)
	if err != nil || !ok {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// Cost bills elapsed seconds at an hourly rate, rounding to the nearest
// forint. Zero elapsed time costs zero: this flow has no minimum-charge
// floor, unlike the ledger.
func Cost(elapsedSeconds int64, hourlyRateFt int) int {
	if elapsedSeconds == 0 {
		return 0
	}
	hours := float64(elapsedSeconds) / 3600
	return int(math.Round(hours * float64(hourlyRateFt)))
}

// Status is the meter state at a given instant.
type Status struct {
	Active         bool   `json:"active"`
	ElapsedSeconds int64  `json:"elapsedSeconds"`
	Clock          string `json:"clock"`
	CostFt         int    `json:"costFt"`
	Car            *Car   `json:"car,omitempty"`
	Zone           *Zone  `json:"zone,omitempty"`
}

// Status recomputes elapsed time and cost from the persisted start
// instant and the given now. It is a pure read: repeated calls at the
// same instant yield the same result, and missed ticks self-correct.
func (m *Meter) Status(ctx context.Context, now time.Time) Status {
	car, zone := m.Selection(ctx)
	st := Status{Car: car, Zone: zone, Clock: formatClock(0)}

	startedAt, active := m.Active(ctx)
	if !active {
		return st
	}
	st.Active = true
	st.ElapsedSeconds = int64(now.Sub(startedAt).Seconds())
	if st.ElapsedSeconds < 0 {
		st.ElapsedSeconds = 0
	}
	st.Clock = formatClock(st.ElapsedSeconds)
	if zone != nil {
		st.CostFt = Cost(st.ElapsedSeconds, zone.HourlyRateFt)
	}
	return st
}

// RecordLocation stores the client-supplied geolocation fix and, when
// no zone is selected yet, auto-selects the first catalog zone.
func (m *Meter) RecordLocation(ctx context.Context, loc Location) error {
	raw, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("failed to encode location: %w", err)
	}
	if err := m.store.Set(ctx, LocationSlotKey, string(raw)); err != nil {
		return err
	}
	if _, ok, _ := m.store.Get(ctx, SelectedZoneSlotKey); !ok {
		return m.store.Set(ctx, SelectedZoneSlotKey, meterZones[0].ID)
	}
	return nil
}

func formatClock(seconds int64) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
