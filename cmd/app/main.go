// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"vaultvpn-bot/internal/application"
	"vaultvpn-bot/internal/config"
	"vaultvpn-bot/internal/domain"
	"vaultvpn-bot/internal/domain/model"
	"vaultvpn-bot/internal/domain/ports/repository"
	"vaultvpn-bot/internal/infra/i18n"
	"vaultvpn-bot/internal/infra/logging"
	"vaultvpn-bot/internal/infra/memstore"
	"vaultvpn-bot/internal/infra/metrics"
	"vaultvpn-bot/internal/infra/outline"
	"vaultvpn-bot/internal/infra/proc"
	red "vaultvpn-bot/internal/infra/redis"
	"vaultvpn-bot/internal/infra/sched"
	"vaultvpn-bot/internal/infra/telegram"
	"vaultvpn-bot/internal/infra/web"
	"vaultvpn-bot/internal/usecase"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log)

	// ---- Single-instance guard ----
	lock, err := proc.Acquire(cfg.Runtime.LockFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("instance lock")
	}

	metrics.MustRegister()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr, err := i18n.NewTranslator(i18n.LocalesFS)
	if err != nil {
		logger.Fatal().Err(err).Msg("i18n")
	}

	// ---- Stores ----
	var sessions repository.SessionRepository
	if cfg.Redis.URL != "" {
		client, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer client.Close()
		sessions = red.NewSessionRepo(client, cfg.Redis.TTL)
		logger.Info().Msg("sessions: redis")
	} else {
		sessions = memstore.NewSessionStore()
		logger.Info().Msg("sessions: in-memory")
	}
	ledger := memstore.NewLedger()
	records := memstore.NewRecordStore()

	// ---- Provisioning ----
	provisioner, err := outline.New(map[model.Region]string{
		model.RegionUS: cfg.Provision.USBaseURL,
		model.RegionSG: cfg.Provision.SGBaseURL,
	}, cfg.Provision.InsecureSkipVerify, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("outline")
	}

	// ---- Telegram transport ----
	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram")
	}
	notifier := telegram.NewNotifier(api, tr, cfg.Runtime.SupportURL, cfg.Runtime.SupportEmail, logger)

	// ---- Use cases ----
	catalog := model.DefaultCatalog()
	watcher := usecase.NewProofWatcher(cfg.Runtime.ProofWindow)
	purchaseUC := usecase.NewPurchaseUseCase(catalog, sessions, ledger, records, logger)
	reviewUC := usecase.NewReviewUseCase(
		cfg.Bot.AdminID, catalog, ledger, records,
		provisioner, notifier, watcher, tr, cfg.Runtime.SupportURL, logger,
	)
	facade := application.NewBotFacade(purchaseUC, reviewUC, watcher, tr, cfg.Runtime.SupportURL, cfg.Runtime.SupportEmail)

	bot, err := telegram.NewBot(api, notifier, facade, tr, cfg.Payment, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("bot")
	}

	// ---- HTTP liveness + metrics ----
	srv := web.NewServer(cfg.Web.Port, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Error().Err(err).Msg("http server")
		}
	}()

	// ---- Expiry sweep ----
	worker := sched.NewExpiryWorker(cfg.Runtime.ExpirySweep, records, catalog, notifier, tr, logger)
	go func() { _ = worker.Run(ctx) }()

	// ---- Polling ----
	botErr := make(chan error, 1)
	go func() { botErr <- bot.Run(ctx) }()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case s := <-sigc:
		logger.Info().Str("signal", s.String()).Msg("shutdown requested")
	case err := <-botErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			exitCode = 1
			if errors.Is(err, domain.ErrConflict) {
				logger.Error().Err(err).Msg("getUpdates conflict; yielding to the other instance")
			} else {
				logger.Error().Err(err).Msg("polling stopped")
			}
		}
	}

	cancel()
	shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
	_ = srv.Shutdown(shCtx)
	shCancel()
	lock.Release()
	os.Exit(exitCode)
}
