package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"aktau-afisha-bot/internal/application"
	"aktau-afisha-bot/internal/config"
	"aktau-afisha-bot/internal/dialog"
	"aktau-afisha-bot/internal/domain/ports/adapter"
	tele "aktau-afisha-bot/internal/infra/adapters/telegram"
	"aktau-afisha-bot/internal/infra/api"
	pg "aktau-afisha-bot/internal/infra/db/postgres"
	"aktau-afisha-bot/internal/infra/i18n"
	"aktau-afisha-bot/internal/infra/logging"
	"aktau-afisha-bot/internal/infra/metrics"
	red "aktau-afisha-bot/internal/infra/redis"
	"aktau-afisha-bot/internal/infra/worker"
	"aktau-afisha-bot/internal/usecase"

	"aktau-afisha-bot/internal/domain/model"
	"aktau-afisha-bot/internal/domain/ports/repository"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (noop telegram, console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	if err := pg.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
		logger.Fatal().Err(err).Msg("migrations")
	}

	// ---- Redis / sessions ----
	var (
		sessions    dialog.Store
		rateLimiter *red.RateLimiter
		redisClient *red.Client
	)
	if cfg.Session.Backend == "redis" {
		redisClient, err = red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		sessions = red.NewSessionStore(redisClient, cfg.Redis.SessionTTL)
		rateLimiter = red.NewRateLimiter(redisClient)
	} else {
		sessions = dialog.NewMemoryStore()
	}

	// ---- Repositories ----
	txm := pg.NewTxManager(pool)
	var eventRepo repository.EventRepository = pg.NewPostgresEventRepo(pool)
	if redisClient != nil {
		eventRepo = pg.NewEventRepoCacheDecorator(eventRepo, redisClient, cfg.Redis.CacheTTL)
	}
	promoRepo := pg.NewPostgresPromotionRepo(pool)
	feedbackRepo := pg.NewPostgresFeedbackRepo(pool)
	favoriteRepo := pg.NewPostgresFavoriteRepo(pool)
	subscriberRepo := pg.NewPostgresSubscriberRepo(pool)
	langRepo := pg.NewPostgresUserLanguageRepo(pool)

	// ---- Worker pool ----
	pool2 := worker.NewPool(cfg.Bot.Workers, logger)
	pool2.Start(ctx)
	defer pool2.Stop()

	// ---- Use cases ----
	eventUC := usecase.NewEventUseCase(eventRepo, txm, logger)
	promoUC := usecase.NewPromotionUseCase(promoRepo, txm, logger)
	feedbackUC := usecase.NewFeedbackUseCase(feedbackRepo, logger)
	favoriteUC := usecase.NewFavoriteUseCase(favoriteRepo, eventRepo, logger)
	subUC := usecase.NewSubscriberUseCase(subscriberRepo, logger)
	langUC := usecase.NewLanguageUseCase(langRepo, logger)
	statsUC := usecase.NewStatsUseCase(langRepo, subscriberRepo, eventRepo, promoRepo, favoriteRepo, logger)

	// ---- Telegram / dispatcher ----
	dispatcher := dialog.NewDispatcher(sessions, logger)

	var bot adapter.Messenger
	var realBot *tele.RealBotAdapter
	if cfg.Runtime.Dev && cfg.Bot.Token == "" {
		bot = tele.NewNoopBotAdapter(logger)
	} else {
		realBot, err = tele.NewRealBotAdapter(&cfg.Bot, dispatcher, rateLimiter, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("telegram")
		}
		bot = realBot
	}

	broadcastUC := usecase.NewBroadcastUseCase(subUC, bot, pool2, logger)

	bundle, err := i18n.NewBundle(i18n.LocalesFS, model.LangRU, model.LangKZ, model.LangEN)
	if err != nil {
		logger.Fatal().Err(err).Msg("i18n")
	}

	facade := application.NewBotFacade(application.Deps{
		Auth:        application.NewAuthorizationPolicy(cfg.Bot.AdminIDs),
		Sessions:    sessions,
		Bot:         bot,
		I18n:        bundle,
		EventUC:     eventUC,
		PromoUC:     promoUC,
		FeedbackUC:  feedbackUC,
		FavoriteUC:  favoriteUC,
		SubUC:       subUC,
		LangUC:      langUC,
		StatsUC:     statsUC,
		BroadcastUC: broadcastUC,
		Log:         logger,
	})
	facade.Register(dispatcher)

	if realBot != nil {
		if strings.ToLower(cfg.Bot.Mode) != "polling" {
			logger.Warn().Str("mode", cfg.Bot.Mode).Msg("bot mode not implemented, falling back to polling")
		}
		go func() {
			if err := realBot.StartPolling(ctx); err != nil && ctx.Err() == nil {
				logger.Error().Err(err).Msg("telegram polling stopped")
			}
		}()
	}

	// ---- HTTP API ----
	authMgr := api.NewAuthManager(cfg.API.JWTSecret, cfg.API.SessionTTL)
	apiSrv := api.NewServer(eventUC, promoUC, statsUC, authMgr, cfg.API.AdminToken, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.API.Port),
		Handler: apiSrv.Handler(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http api listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server")
		}
	}()

	// ---- Shutdown ----
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info().Msg("shutting down")

	if realBot != nil {
		realBot.StopPolling()
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
