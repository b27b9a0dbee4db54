package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/joho/godotenv"

	"kaposvar-plus-backend/config"
	"kaposvar-plus-backend/internal/account"
	"kaposvar-plus-backend/internal/api"
	"kaposvar-plus-backend/internal/db"
	"kaposvar-plus-backend/internal/inspector"
	"kaposvar-plus-backend/internal/kv"
	"kaposvar-plus-backend/internal/notify"
	"kaposvar-plus-backend/internal/occupancy"
	"kaposvar-plus-backend/internal/parking"
	"kaposvar-plus-backend/internal/tickets"
)

func main() {
	logger := log.New(os.Stdout, "kaposvard ", log.LstdFlags)

	if err := godotenv.Load(); err == nil {
		logger.Println("loaded environment from .env")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := kv.NewGormStore(gormDB)
	ledger := parking.NewLedger(store, ledgerZones(cfg), parking.FeePolicy{
		ConvenienceFt:  cfg.Parking.ConvenienceFeeFt,
		MinimumMinutes: cfg.Parking.MinimumMinutes,
	})
	meter := parking.NewMeter(store)
	snapshot := inspector.NewSnapshot(store)
	office := tickets.NewOffice(store)
	accounts := account.NewAccounts(store)

	feed := occupancy.NewService(&cfg.Occupancy)
	go feed.Run(ctx)

	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}
	if cfg.Reminder.Enabled && (cfg.Push.PublicKey == "" || cfg.Push.PrivateKey == "") {
		logger.Fatalf("parking reminders require VAPID keys; generate them and add them to your config file")
	}

	pool := notify.NewWorkerPool(cfg.WorkerPool.Size, gormDB, &webpushOptions)
	pool.Start(ctx)
	reminder := notify.NewReminder(&cfg.Reminder, ledger, pool)
	go reminder.Run(ctx)

	handler := api.NewHandler(api.Deps{
		Ledger:        ledger,
		Meter:         meter,
		Snapshot:      snapshot,
		Office:        office,
		Accounts:      accounts,
		Occupancy:     feed,
		DB:            gormDB,
		Webpush:       &webpushOptions,
		ValidateDelay: time.Duration(cfg.Inspector.ValidateDelayMS) * time.Millisecond,
	})
	router := api.NewRouter(&cfg.Server, handler)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}

// ledgerZones applies configured rate overrides to the built-in tariff.
func ledgerZones(cfg *config.Config) map[string]parking.LedgerZone {
	zones := parking.DefaultLedgerZones()
	for id, rate := range cfg.Parking.ZoneRatesFt {
		if zone, ok := zones[id]; ok && rate > 0 {
			zone.HourlyFt = rate
			zones[id] = zone
		}
	}
	return zones
}
