package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"kaposvar-plus-backend/internal/account"
	"kaposvar-plus-backend/internal/inspector"
	"kaposvar-plus-backend/internal/occupancy"
	"kaposvar-plus-backend/internal/parking"
	"kaposvar-plus-backend/internal/tickets"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	ledger    *parking.Ledger
	meter     *parking.Meter
	snapshot  *inspector.Snapshot
	office    *tickets.Office
	accounts  *account.Accounts
	occupancy *occupancy.Service
	db        *gorm.DB
	webpush   *webpush.Options

	// validateDelay paces the inspector result for UI feedback. It has
	// no cancellation semantics; a second scan while one is pending is
	// not guarded against.
	validateDelay time.Duration

	now func() time.Time
}

// Deps bundles the handler dependencies.
type Deps struct {
	Ledger        *parking.Ledger
	Meter         *parking.Meter
	Snapshot      *inspector.Snapshot
	Office        *tickets.Office
	Accounts      *account.Accounts
	Occupancy     *occupancy.Service
	DB            *gorm.DB
	Webpush       *webpush.Options
	ValidateDelay time.Duration
}

// NewHandler creates a new API handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		ledger:        deps.Ledger,
		meter:         deps.Meter,
		snapshot:      deps.Snapshot,
		office:        deps.Office,
		accounts:      deps.Accounts,
		occupancy:     deps.Occupancy,
		db:            deps.DB,
		webpush:       deps.Webpush,
		validateDelay: deps.ValidateDelay,
		now:           time.Now,
	}
}
