package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lapin-reform/siteops/internal/api"
	"github.com/lapin-reform/siteops/internal/core/ports"
	"github.com/lapin-reform/siteops/internal/core/service"
	"github.com/lapin-reform/siteops/internal/identity"
	"github.com/lapin-reform/siteops/internal/infrastructure/config"
	mongoinfra "github.com/lapin-reform/siteops/internal/infrastructure/db/mongo"
	redisinfra "github.com/lapin-reform/siteops/internal/infrastructure/db/redis"
	"github.com/lapin-reform/siteops/internal/infrastructure/queue"
	"github.com/lapin-reform/siteops/internal/session"
	"github.com/lapin-reform/siteops/internal/sheet"
	"github.com/lapin-reform/siteops/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Sheet gateway ---
	// An empty SHEET_URL runs the service in demo mode: mutations resolve
	// locally after an artificial delay, reads keep whatever state exists.
	client := sheet.NewClient(cfg.Sheet.URL, &http.Client{Timeout: 30 * time.Second}, log)
	gateway := sheet.NewMockFallback(client, cfg.Sheet.MockDelay, log)
	if !client.Configured() {
		log.Warn().Msg("SHEET_URL not set, running in mock mode")
	}

	// --- Session store (Redis when deployed, memory otherwise) ---
	var (
		sessionStore session.Store
		guard        *redisinfra.SubmitGuard
		redisClient  *redis.Client
	)
	if cfg.Redis.Addr != "" {
		c, err := redisinfra.Connect(ctx, redisinfra.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect failed")
		}
		defer c.Close()
		sessionStore = session.NewRedisStore(c)
		guard = redisinfra.NewSubmitGuard(c)
		redisClient = c
	} else {
		sessionStore = session.NewMemoryStore()
		log.Info().Msg("REDIS_ADDR not set, using in-memory session store")
	}

	// --- Submission journal (Mongo when deployed, discard otherwise) ---
	var (
		journal ports.SubmissionJournal = mongoinfra.DiscardJournal{}
		mongoDB *mongo.Database
	)
	if cfg.Mongo.URI != "" {
		mc, db, err := mongoinfra.Connect(ctx, mongoinfra.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connect failed")
		}
		defer func() {
			_ = mc.Disconnect(context.Background())
		}()
		repo := mongoinfra.NewJournalRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("journal index creation failed")
		}
		journal = repo
		mongoDB = db
	} else {
		log.Info().Msg("MONGO_URI not set, submission journal disabled")
	}

	dispatcher := queue.NewJournalDispatcher(0, journal, log)
	dispatcher.Start(ctx)

	// --- Identity ---
	sessions := session.NewManager(sessionStore, gateway, log)
	var verifier identity.Verifier
	if cfg.Line.ChannelID != "" {
		verifier = identity.NewLineVerifier(cfg.Line.ChannelID, cfg.Line.VerifyURL, nil)
	} else {
		log.Warn().Msg("LINE_CHANNEL_ID not set, logins resolve to the demo identity")
	}
	boot := identity.NewBootstrapper(gateway, sessions, verifier, client.Configured(), log)

	// --- Services ---
	authService := service.NewAuthService(boot, cfg.JWTSecret, cfg.AdminPasscodeHash, 24*time.Hour)
	expenseService := service.NewExpenseService(gateway, dispatcher, guard, log)
	attendanceService := service.NewAttendanceService(gateway, dispatcher, log)
	reportService := service.NewReportService(gateway, dispatcher, log)
	photoService := service.NewPhotoService(gateway, dispatcher, log)
	meetingService := service.NewMeetingService(gateway, dispatcher, log)
	projectService := service.NewProjectService(gateway, dispatcher, log)
	noticeService := service.NewNoticeService(gateway, dispatcher, log)
	dashboardService := service.NewDashboardService(gateway, expenseService, projectService, log)

	e := api.NewRouter(api.Deps{
		JWTSecret: cfg.JWTSecret,
		Sessions:  sessionStore,
		Gateway:   client,
		Mongo:     mongoDB,
		Redis:     redisClient,
		Log:       log,

		Auth:       authService,
		Expenses:   expenseService,
		Attendance: attendanceService,
		Reports:    reportService,
		Photos:     photoService,
		Meetings:   meetingService,
		Projects:   projectService,
		Notices:    noticeService,
		Dashboard:  dashboardService,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("siteops listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
