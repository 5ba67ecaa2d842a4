package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/bloomwithanjli/checkout/internal/application/checkout"
	"github.com/bloomwithanjli/checkout/internal/application/download"
	"github.com/bloomwithanjli/checkout/internal/application/journal"
	"github.com/bloomwithanjli/checkout/internal/application/verification"
	"github.com/bloomwithanjli/checkout/internal/application/webhook"
	"github.com/bloomwithanjli/checkout/internal/config"
	"github.com/bloomwithanjli/checkout/internal/domain/event"
	"github.com/bloomwithanjli/checkout/internal/infra/logging"
	"github.com/bloomwithanjli/checkout/internal/infra/metrics"
	"github.com/bloomwithanjli/checkout/internal/infrastructure/eventbus"
	"github.com/bloomwithanjli/checkout/internal/infrastructure/gateway"
	httpapi "github.com/bloomwithanjli/checkout/internal/infrastructure/http"
	"github.com/bloomwithanjli/checkout/internal/infrastructure/mail"
	"github.com/bloomwithanjli/checkout/internal/infrastructure/persistence/inmemory"
	"github.com/bloomwithanjli/checkout/internal/infrastructure/persistence/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := &logging.StdoutLogger{}
	counters := &metrics.Counters{}

	bus := eventbus.NewInMemoryBus()

	journalRepo, err := openJournal(cfg)
	if err != nil {
		log.Fatalf("journal: %v", err)
	}

	recorder := &journal.Recorder{Repo: journalRepo}
	bus.Subscribe(event.PaymentVerified, recorder.Handle)
	bus.Subscribe(event.PaymentCaptured, recorder.Handle)
	bus.Subscribe(event.PaymentFailed, recorder.Handle)

	gatewayClient := gateway.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	verificationService := &verification.Service{
		KeySecret:    cfg.RazorpayKeySecret,
		Gateway:      gatewayClient,
		EventBus:     bus,
		Logger:       logger,
		Metrics:      counters,
		DownloadPath: "/api/download-guide/",
	}

	if cfg.Email.Configured() {
		verificationService.Mailer = mail.NewGuideMailer(
			cfg.Email.Host,
			cfg.Email.Port,
			cfg.Email.User,
			cfg.Email.Password,
			cfg.Email.From,
			cfg.ProductName,
		)
	}

	handler := &httpapi.Handler{
		Checkout: &checkout.Service{
			Gateway:  gatewayClient,
			Currency: cfg.Currency,
			Product:  cfg.ProductName,
			Logger:   logger,
			Metrics:  counters,
		},
		Verification: verificationService,
		Download: &download.Service{
			Gateway:   gatewayClient,
			GuidePath: cfg.GuidePath,
			Filename:  cfg.GuideFilename,
			Logger:    logger,
			Metrics:   counters,
		},
		Webhook: &webhook.Service{
			Secret:   cfg.WebhookSecret,
			EventBus: bus,
			Logger:   logger,
			Metrics:  counters,
		},
	}

	router := httpapi.NewRouter(handler, cfg.AllowedOrigins, logger)

	server := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	mode := "LIVE"
	if cfg.TestMode() {
		mode = "TEST"
	}

	logger.Info("server starting", map[string]any{
		"addr":         cfg.Port,
		"gateway_mode": mode,
		"mail":         cfg.Email.Configured(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", map[string]any{"error": err.Error()})
	}
}

func openJournal(cfg *config.Config) (journal.Repository, error) {
	if cfg.JournalPath == "" {
		return inmemory.NewJournalRepository(), nil
	}

	db, err := sqlite.Open(cfg.JournalPath)
	if err != nil {
		return nil, err
	}

	if err := sqlite.RunMigrations(db); err != nil {
		return nil, err
	}

	return sqlite.NewJournalRepository(db), nil
}
