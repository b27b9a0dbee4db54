// Package tickets holds the event catalog and the seat-purchase flow.
package tickets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"kaposvar-plus-backend/internal/kv"
)

// PurchasesSlotKey is the durable slot holding the purchase history.
const PurchasesSlotKey = "kaposvar_tickets"

var (
	ErrUnknownEvent = errors.New("unknown event")
	ErrNoSeats      = errors.New("at least one seat must be selected")
)

// Event is a catalog entry. PriceFt is per seat.
type Event struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Date    string `json:"date"`
	Venue   string `json:"venue"`
	PriceFt int    `json:"price"`
}

// Purchase is a completed seat purchase for one event.
type Purchase struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Date    string   `json:"date"`
	Venue   string   `json:"venue"`
	Seats   []string `json:"seats"`
	PriceFt int      `json:"price"`
}

var catalog = []Event{
	{ID: "szinhaz", Title: "Színház est", Date: "2026-02-14 19:00", Venue: "Kaposvári Csiky Gergely Színház", PriceFt: 3500},
	{ID: "koncert", Title: "Városi koncert", Date: "2026-03-01 18:30", Venue: "Kaposvári Szabadtéri Színpad", PriceFt: 3000},
}

// Office sells demo tickets against the static catalog.
type Office struct {
	store kv.Store
}

// NewOffice creates a ticket office over the given store.
func NewOffice(store kv.Store) *Office {
	return &Office{store: store}
}

// Events returns the catalog.
func (o *Office) Events() []Event {
	out := make([]Event, len(catalog))
	copy(out, catalog)
	return out
}

// Event looks up a catalog entry by id.
func (o *Office) Event(id string) (Event, bool) {
	for _, e := range catalog {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}

// Purchase appends a purchase for the given event and seats.
func (o *Office) Purchase(ctx context.Context, eventID string, seats []string) (Purchase, error) {
	event, ok := o.Event(eventID)
	if !ok {
		return Purchase{}, fmt.Errorf("%w: %q", ErrUnknownEvent, eventID)
	}
	if len(seats) == 0 {
		return Purchase{}, ErrNoSeats
	}

	purchase := Purchase{
		ID:      event.ID,
		Title:   event.Title,
		Date:    event.Date,
		Venue:   event.Venue,
		Seats:   seats,
		PriceFt: event.PriceFt,
	}
	purchases := append(o.Purchases(ctx), purchase)

	raw, err := json.Marshal(purchases)
	if err != nil {
		return Purchase{}, fmt.Errorf("failed to encode purchases: %w", err)
	}
	if err := o.store.Set(ctx, PurchasesSlotKey, string(raw)); err != nil {
		return Purchase{}, err
	}
	return purchase, nil
}

// Purchases lists the purchase history. Malformed storage reads as
// empty.
func (o *Office) Purchases(ctx context.Context) []Purchase {
	raw, ok, err := o.store.Get(ctx, PurchasesSlotKey)
	if err != nil || !ok {
		return nil
	}
	var purchases []Purchase
	if err := json.Unmarshal([]byte(raw), &purchases); err != nil {
		return nil
	}
	return purchases
}
