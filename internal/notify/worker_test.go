package notify

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kaposvar-plus-backend/config"
	"kaposvar-plus-backend/internal/kv"
	"kaposvar-plus-backend/internal/model"
	"kaposvar-plus-backend/internal/parking"
)

// mockSender records sent payloads and answers with a fixed status.
type mockSender struct {
	mu       sync.Mutex
	status   int
	payloads []string
	targets  []string
}

func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, _ *webpush.Options) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payloads = append(m.payloads, string(payload))
	m.targets = append(m.targets, sub.Endpoint)
	return &http.Response{
		StatusCode: m.status,
		Body:       io.NopCloser(strings.NewReader("")),
	}, nil
}

func (m *mockSender) sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.payloads...)
}

func newNotifyDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.PushSubscription{}))
	return db
}

func TestWorkerPoolSendsToAllSubscriptions(t *testing.T) {
	db := newNotifyDB(t)
	require.NoError(t, db.Create(&model.PushSubscription{Endpoint: "https://push.example/a", P256DH: "k1", Auth: "a1"}).Error)
	require.NoError(t, db.Create(&model.PushSubscription{Endpoint: "https://push.example/b", P256DH: "k2", Auth: "a2"}).Error)

	pool := NewWorkerPool(1, db, &webpush.Options{})
	sender := &mockSender{status: http.StatusCreated}
	pool.SetSender(sender)

	pool.sendReminders(context.Background(), "ABC-123")

	payloads := sender.sent()
	require.Len(t, payloads, 2)
	assert.Contains(t, payloads[0], "ABC-123")
}

func TestWorkerPoolDeletesGoneSubscriptions(t *testing.T) {
	db := newNotifyDB(t)
	require.NoError(t, db.Create(&model.PushSubscription{Endpoint: "https://push.example/dead", P256DH: "k", Auth: "a"}).Error)

	pool := NewWorkerPool(1, db, &webpush.Options{})
	pool.SetSender(&mockSender{status: http.StatusGone})

	pool.sendReminders(context.Background(), "ABC-123")

	var count int64
	db.Model(&model.PushSubscription{}).Count(&count)
	assert.Zero(t, count, "410 responses delete the subscription")
}

func TestReminderSweepDispatchesOncePerSession(t *testing.T) {
	db := newNotifyDB(t)
	require.NoError(t, db.Create(&model.PushSubscription{Endpoint: "https://push.example/a", P256DH: "k", Auth: "a"}).Error)

	store := kv.NewMemStore()
	ledger := parking.NewLedger(store, nil, parking.FeePolicy{ConvenienceFt: 60, MinimumMinutes: 1})
	pool := NewWorkerPool(1, db, &webpush.Options{})
	sender := &mockSender{status: http.StatusCreated}
	pool.SetSender(sender)

	cfg := &config.ReminderConfig{Enabled: true, ThresholdMinutes: 120}
	reminder := NewReminder(cfg, ledger, pool)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool.Start(ctx)

	_, err := ledger.Start(ctx, "ABC-123", "Z1")
	require.NoError(t, err)
	session, ok := ledger.Active(ctx)
	require.True(t, ok)
	startedAt := time.UnixMilli(session.StartedAt)

	// Below the threshold nothing is dispatched.
	reminder.Sweep(ctx, startedAt.Add(30*time.Minute))
	assert.Empty(t, sender.sent())

	// Past the threshold exactly one reminder goes out, and repeated
	// sweeps for the same session stay silent.
	reminder.Sweep(ctx, startedAt.Add(3*time.Hour))
	reminder.Sweep(ctx, startedAt.Add(4*time.Hour))

	assert.Eventually(t, func() bool {
		return len(sender.sent()) == 1
	}, time.Second, 10*time.Millisecond)
}
