package notify

import (
	"context"
	"log"
	"time"

	"kaposvar-plus-backend/config"
	"kaposvar-plus-backend/internal/parking"
)

// Reminder periodically checks the parking ledger and dispatches one
// push reminder per session once its elapsed time crosses the
// configured threshold. A new session (new start instant) re-arms it.
type Reminder struct {
	cfg    *config.ReminderConfig
	ledger *parking.Ledger
	pool   *WorkerPool
	now    func() time.Time

	notifiedStart int64
}

// NewReminder creates the reminder sweep.
func NewReminder(cfg *config.ReminderConfig, ledger *parking.Ledger, pool *WorkerPool) *Reminder {
	return &Reminder{
		cfg:    cfg,
		ledger: ledger,
		pool:   pool,
		now:    time.Now,
	}
}

// Run sweeps on the configured interval until the context is
// cancelled.
func (r *Reminder) Run(ctx context.Context) {
	if !r.cfg.Enabled {
		log.Println("Parking reminders are disabled. Not starting.")
		return
	}
	log.Println("Starting parking reminder sweep...")

	timer := time.NewTimer(r.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Parking reminder sweep shutting down.")
			return
		case <-timer.C:
			r.Sweep(ctx, r.now())
			timer.Reset(r.cfg.Interval)
		}
	}
}

// Sweep dispatches a reminder if the active session has run past the
// threshold and has not been notified yet.
func (r *Reminder) Sweep(ctx context.Context, now time.Time) {
	session, ok := r.ledger.Active(ctx)
	if !ok {
		return
	}
	if session.StartedAt == r.notifiedStart {
		return
	}

	threshold := time.Duration(r.cfg.ThresholdMinutes) * time.Minute
	if now.Sub(time.UnixMilli(session.StartedAt)) < threshold {
		return
	}

	r.pool.Dispatch(session.Plate)
	r.notifiedStart = session.StartedAt
}
