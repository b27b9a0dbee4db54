package parking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"kaposvar-plus-backend/internal/kv"
)

// SessionSlotKey is the durable slot holding the single ledger session.
const SessionSlotKey = "kaposvar_parking_session"

var (
	ErrBadPlate    = errors.New("plate does not match the required format")
	ErrUnknownZone = errors.New("unknown parking zone")
)

// Session is the plate-keyed parking session record. Instants are epoch
// milliseconds to keep the persisted layout identical across clients.
// A zero StoppedAt means the session is active; a set StoppedAt makes
// the record terminal and immutable.
type Session struct {
	Plate         string `json:"plate"`
	Zone          string `json:"zone"`
	StartedAt     int64  `json:"startedAt"`
	ConvenienceFt int    `json:"convenienceFt"`
	StoppedAt     int64  `json:"stoppedAt,omitempty"`
}

// FeePolicy is the deployment-level billing policy. The ledger runs
// with a flat convenience fee and a minimum-charge floor; the meter
// runs with neither. The asymmetry between the two flows is policy,
// not an accident, so it lives in one value instead of two code paths.
type FeePolicy struct {
	ConvenienceFt  int
	MinimumMinutes int
}

// Ledger owns the single active plate-keyed parking session. It holds
// exactly one durable slot: starting a session overwrites whatever was
// there before, active or stopped, with no cross-device coordination.
type Ledger struct {
	store  kv.Store
	zones  map[string]LedgerZone
	policy FeePolicy
	now    func() time.Time
}

// NewLedger creates a ledger over the given store. A nil zones map
// selects the built-in tariff.
func NewLedger(store kv.Store, zones map[string]LedgerZone, policy FeePolicy) *Ledger {
	if zones == nil {
		zones = DefaultLedgerZones()
	}
	return &Ledger{
		store:  store,
		zones:  zones,
		policy: policy,
		now:    time.Now,
	}
}

// Zones returns the ledger tariff.
func (l *Ledger) Zones() map[string]LedgerZone {
	out := make(map[string]LedgerZone, len(l.zones))
	for k, v := range l.zones {
		out[k] = v
	}
	return out
}

// Start begins a new session, overwriting any prior record.
func (l *Ledger) Start(ctx context.Context, plate, zone string) (Session, error) {
	if !ValidPlate(plate) {
		return Session{}, ErrBadPlate
	}
	if _, ok := l.zones[zone]; !ok {
		return Session{}, fmt.Errorf("%w: %q", ErrUnknownZone, zone)
	}

	session := Session{
		Plate:         plate,
		Zone:          zone,
		StartedAt:     l.now().UnixMilli(),
		ConvenienceFt: l.policy.ConvenienceFt,
	}
	if err := l.persist(ctx, session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Active returns the stored session iff it has not been stopped.
// Missing, malformed, or already-stopped storage content all read as
// "no active session".
func (l *Ledger) Active(ctx context.Context) (Session, bool) {
	raw, ok, err := l.store.Get(ctx, SessionSlotKey)
	if err != nil || !ok {
		return Session{}, false
	}
	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return Session{}, false
	}
	if session.StoppedAt != 0 {
		return Session{}, false
	}
	return session, true
}

// Stop ends the active session. With no active session it is an
// idempotent no-op.
func (l *Ledger) Stop(ctx context.Context) (Session, bool) {
	session, ok := l.Active(ctx)
	if !ok {
		return Session{}, false
	}
	session.StoppedAt = l.now().UnixMilli()
	if err := l.persist(ctx, session); err != nil {
		return Session{}, false
	}
	return session, true
}

// Clear removes the session slot entirely.
func (l *Ledger) Clear(ctx context.Context) error {
	return l.store.Delete(ctx, SessionSlotKey)
}

func (l *Ledger) persist(ctx context.Context, session Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return l.store.Set(ctx, SessionSlotKey, string(raw))
}

// Totals is the billing summary for a session at a given instant.
type Totals struct {
	Minutes int     `json:"minutes"`
	Hours   float64 `json:"hours"`
	FeeFt   int     `json:"feeFt"`
	TotalFt int     `json:"totalFt"`
	// Clock is serialized as "mmss" for client compatibility but its
	// two components are floor(minutes/60) and minutes%60, so it reads
	// as hours:minutes, not minutes:seconds.
	Clock string `json:"mmss"`
}

// Totals computes the billing summary as a pure function of the session
// and the given instant. For an active session the fee grows with now;
// a stopped session always bills to its StoppedAt.
func (l *Ledger) Totals(session Session, now time.Time) Totals {
	end := session.StoppedAt
	if end == 0 {
		end = now.UnixMilli()
	}

	minutes := int(math.Ceil(float64(end-session.StartedAt) / 60000))
	if minutes < l.policy.MinimumMinutes {
		minutes = l.policy.MinimumMinutes
	}
	hours := float64(minutes) / 60

	feeFt := int(math.Ceil(hours * float64(l.zones[session.Zone].HourlyFt)))
	totalFt := feeFt + session.ConvenienceFt

	return Totals{
		Minutes: minutes,
		Hours:   hours,
		FeeFt:   feeFt,
		TotalFt: totalFt,
		Clock:   fmt.Sprintf("%02d:%02d", minutes/60, minutes%60),
	}
}
