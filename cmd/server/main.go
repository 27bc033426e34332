package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/studybuddy/backend/api/handler"
	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/internal/config"
	"github.com/studybuddy/backend/internal/infrastructure/buffer"
	"github.com/studybuddy/backend/internal/infrastructure/monitor"
	pgInfra "github.com/studybuddy/backend/internal/infrastructure/postgres"
	redisInfra "github.com/studybuddy/backend/internal/infrastructure/redis"
	"github.com/studybuddy/backend/internal/middleware"
	"github.com/studybuddy/backend/internal/router"
	"github.com/studybuddy/backend/internal/services"
	"github.com/studybuddy/backend/internal/services/lifecycle"
	"github.com/studybuddy/backend/pkg/httpcontext"
	"github.com/studybuddy/backend/pkg/logger"
	"github.com/studybuddy/backend/repository/postgres"
	redisRepo "github.com/studybuddy/backend/repository/redis"
	authUC "github.com/studybuddy/backend/usecase/auth"
	groupUC "github.com/studybuddy/backend/usecase/group"
	rewardUC "github.com/studybuddy/backend/usecase/reward"
	statsUC "github.com/studybuddy/backend/usecase/stats"
	taskUC "github.com/studybuddy/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Service:  cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "buffer")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	streakPolicy := domain.StreakPerCompletion
	if cfg.Gamification.StreakOncePerDay {
		streakPolicy = domain.StreakOncePerDay
	}

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	completionRepo := postgres.NewCompletionRepository(pool, streakPolicy)
	rewardRepo := postgres.NewRewardRepository(pool)
	groupRepo := postgres.NewGroupRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Auth.SessionTTL)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		taskRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  cfg.Buffer.BatchSize,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)

	authUseCase := authUC.New(userRepo, statsRepo, sessionRepo, authUC.Config{
		JWTSecret: cfg.Auth.JWTSecret,
		Issuer:    cfg.Auth.Issuer,
	}, zapLogger)
	taskUseCase := taskUC.New(taskRepo, completionRepo, bufferBridge, zapLogger)
	statsUseCase := statsUC.New(statsRepo, zapLogger)
	rewardUseCase := rewardUC.New(rewardRepo, statsRepo, zapLogger)
	groupUseCase := groupUC.New(groupRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:   apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, cfg.Auth.SessionTTL),
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Stats:  apiHandler.NewStatsHandler(statsUseCase, ctxAdapter, zapLogger),
		Reward: apiHandler.NewRewardHandler(rewardUseCase, ctxAdapter, zapLogger),
		Group:  apiHandler.NewGroupHandler(groupUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.Auth.JWTSecret, authUseCase, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
