// Package inspector classifies plates against a small offline snapshot
// of valid parking authorizations.
package inspector

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kaposvar-plus-backend/internal/kv"
)

// SnapshotSlotKey is the durable slot holding the authorization rows.
const SnapshotSlotKey = "kaposvar_inspector_snapshot"

// Row is one offline-cacheable authorization record. ValidUntil is
// epoch milliseconds; rows are never evicted, they simply become
// EXPIRED in place as time passes.
type Row struct {
	Plate      string `json:"plate"`
	Zone       string `json:"zone"`
	ValidUntil int64  `json:"validUntil"`
}

// State is the three-way classification of a checked plate.
type State string

const (
	StateActive   State = "ACTIVE"
	StateExpired  State = "EXPIRED"
	StateNotFound State = "NOT_FOUND"
)

// Snapshot reads and replaces the authorization list. Refresh is a
// wholesale replace: a single write, no merge, no versioning.
type Snapshot struct {
	store kv.Store
}

// NewSnapshot creates a snapshot store over the given KV store.
func NewSnapshot(store kv.Store) *Snapshot {
	return &Snapshot{store: store}
}

// Rows returns the current snapshot. Missing or malformed storage
// reads as an empty list.
func (s *Snapshot) Rows(ctx context.Context) []Row {
	raw, ok, err := s.store.Get(ctx, SnapshotSlotKey)
	if err != nil || !ok {
		return nil
	}
	var rows []Row
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil
	}
	return rows
}

// Refresh replaces the whole snapshot atomically from the caller's
// perspective (one slot write).
func (s *Snapshot) Refresh(ctx context.Context, rows []Row) error {
	raw, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return s.store.Set(ctx, SnapshotSlotKey, string(raw))
}

// DemoRows builds the demo snapshot: ABC-123 and XYZ-456 valid for 30
// days, ZZZ-999 expired yesterday.
func DemoRows(now time.Time) []Row {
	thirtyDays := now.Add(30 * 24 * time.Hour).UnixMilli()
	yesterday := now.Add(-24 * time.Hour).UnixMilli()
	return []Row{
		{Plate: "ABC-123", Zone: "Z1", ValidUntil: thirtyDays},
		{Plate: "ZZZ-999", Zone: "Z2", ValidUntil: yesterday},
		{Plate: "XYZ-456", Zone: "Z3", ValidUntil: thirtyDays},
	}
}

// Validate classifies a plate: no row is NOT_FOUND, a row with
// ValidUntil strictly in the future is ACTIVE, anything else is
// EXPIRED. Matching is exact and case-sensitive; callers normalize to
// uppercase first.
func (s *Snapshot) Validate(ctx context.Context, plate string, now time.Time) State {
	row, ok := s.Record(ctx, plate)
	if !ok {
		return StateNotFound
	}
	if row.ValidUntil > now.UnixMilli() {
		return StateActive
	}
	return StateExpired
}

// Record returns the full row for a plate, if present.
func (s *Snapshot) Record(ctx context.Context, plate string) (Row, bool) {
	for _, row := range s.Rows(ctx) {
		if row.Plate == plate {
			return row, true
		}
	}
	return Row{}, false
}

// Clear removes the snapshot slot.
func (s *Snapshot) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, SnapshotSlotKey)
}
