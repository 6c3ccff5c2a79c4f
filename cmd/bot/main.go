package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"goal-board-api/internal/auth"
	"goal-board-api/internal/bot"
	"goal-board-api/internal/client"
	"goal-board-api/internal/config"
	"goal-board-api/internal/database"
	"goal-board-api/internal/job"
	"goal-board-api/internal/metrics"
	"goal-board-api/internal/repository"
	"goal-board-api/internal/service"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if cfg.Telegram.BotToken == "" {
		logger.Fatal("TELEGRAM_BOT_TOKEN is required for the bot")
	}

	logger.Info("Starting Goal Board bot")

	dbConfig := database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	db, err := database.New(dbConfig)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	m := metrics.NewWithLogger(logger)

	// Conversation state: Redis when reachable, in-memory otherwise
	var store bot.ConversationStore
	scheduler := cron.New()
	if redisClient, err := database.NewRedis(cfg.Redis, logger); err == nil {
		store = bot.NewRedisStore(redisClient, cfg.Telegram.ConversationTTL)
	} else {
		logger.Warn("Redis unavailable, using in-memory conversation store", zap.Error(err))
		memStore := bot.NewMemoryStore(cfg.Telegram.ConversationTTL)
		store = memStore
		sweepJob := job.NewConversationSweepJob(memStore, logger)
		if _, err := scheduler.AddJob("@every 5m", sweepJob); err != nil {
			logger.Error("Failed to schedule conversation sweep job", zap.Error(err))
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	transport := client.NewTelegramClient(cfg.Telegram.APIBaseURL, cfg.Telegram.BotToken, logger)

	// Repositories and services shared with the HTTP API
	boardRepo := repository.NewBoardRepository(db)
	userRepo := repository.NewUserRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	telegramLinkRepo := repository.NewTelegramLinkRepository(db)

	authorizer := auth.NewAuthorizer(participantRepo, categoryRepo, goalRepo)
	boardService := service.NewBoardService(boardRepo, userRepo, authorizer, m, logger)
	categoryService := service.NewCategoryService(categoryRepo, boardRepo, authorizer, logger)
	goalService := service.NewGoalService(goalRepo, categoryRepo, authorizer, m, logger)
	telegramService := service.NewTelegramService(telegramLinkRepo, transport, m, logger)

	dispatcher := bot.NewDispatcher(
		transport,
		store,
		telegramService,
		boardService,
		categoryService,
		goalService,
		m,
		logger,
	)
	poller := bot.NewPoller(transport, dispatcher, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("Shutting down bot...")
		cancel()
	}()

	if err := poller.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("Poller stopped", zap.Error(err))
	}

	// Give in-flight handlers a moment to finish
	time.Sleep(time.Second)
	logger.Info("Bot exited gracefully")
}

func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
