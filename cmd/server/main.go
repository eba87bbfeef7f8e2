package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"tenant-platform/internal/api"
	"tenant-platform/internal/auth"
	"tenant-platform/internal/booking"
	"tenant-platform/internal/config"
	"tenant-platform/internal/consumer"
	"tenant-platform/internal/logging"
	"tenant-platform/internal/manager"
	"tenant-platform/internal/messaging"
	"tenant-platform/internal/metrics"
	"tenant-platform/internal/storage"
	"tenant-platform/internal/worker"
	"tenant-platform/internal/zkey"
)

// @title Tenant Platform API
// @version 1.0
// @description Tenant administration, hosted login applications and booking admin
// @host localhost:8080
// @BasePath /
// @schemes http

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	// Init Metrics
	metrics.Init()

	// Load Configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Pretty)
	log.Info().Msg("Configuration loaded")

	// Setup JWT Secret
	auth.SetSecret(cfg.Auth.JWTSecret)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init PostgreSQL
	db, err := storage.NewStorage(cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init DB")
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate DB")
	}
	log.Info().Msg("PostgreSQL connected")

	// Init RabbitMQ
	rabbitClient, err := messaging.NewRabbitClient(cfg.RabbitMQ.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to RabbitMQ")
	}
	defer rabbitClient.Close()
	log.Info().Msg("RabbitMQ connected")

	// Init TenantManager
	rabbitConn := rabbitClient.GetConnection()
	startConsumer := func(tenantID string, workers int, handler worker.Handler) (manager.TenantConsumer, error) {
		return consumer.StartConsumer(rabbitConn, tenantID, workers, handler)
	}
	tm := manager.NewTenantManager(db, rabbitClient, startConsumer, manager.Options{
		DefaultWorkers:     cfg.Workers,
		DefaultCountryCode: cfg.Contacts.DefaultCountryCode,
		UploadsDir:         cfg.Server.UploadsDir,
		PublicBaseURL:      cfg.Server.PublicBaseURL,
	})

	// Recover Existing Tenants
	if err := tm.Recover(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to recover tenants")
	}

	// Login applications and the hosted widget
	locales := zkey.NewLocalizer(cfg.Zkey.Locales)
	limiter := zkey.NewLimiter(cfg.Zkey.RatePerMinute)
	apps := zkey.NewApplications(db, locales)
	widget := zkey.NewWidget(zkey.NewClient(cfg.Zkey.ServiceURL, nil), db, locales, limiter, cfg.Zkey.WalletLinkBase)

	// Background loop for queue depth metrics and limiter cleanup
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for _, tenantID := range tm.ListTenantIDs() {
					rabbitClient.UpdateQueueDepth(tenantID)
				}
				limiter.Sweep()
			}
		}
	}()

	// Init API
	apiHandler := api.NewAPI(tm, apps, widget, cfg)
	if cfg.Booking.ServiceURL != "" {
		apiHandler.Booking = booking.NewClient(cfg.Booking.ServiceURL, cfg.Booking.APIKey, nil)
	}
	if cfg.OIDCEnabled() {
		oidcCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		o, err := auth.NewOIDC(oidcCtx, auth.OIDCConfig{
			Issuer:       cfg.Auth.OIDC.Issuer,
			ClientID:     cfg.Auth.OIDC.ClientID,
			ClientSecret: cfg.Auth.OIDC.ClientSecret,
			RedirectURL:  cfg.Auth.OIDC.RedirectURL,
		})
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to set up OIDC")
		}
		apiHandler.OIDC = o
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           apiHandler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	<-ctx.Done() // Wait for interrupt signal
	log.Info().Msg("Shutdown initiated...")

	// Shutdown sequence
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Stop HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown error")
	}

	// Stop all tenant consumers
	tm.ShutdownAll()

	log.Info().Msg("Graceful shutdown complete")
}
