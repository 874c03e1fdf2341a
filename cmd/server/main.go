package main // Entry point package

import (
	"context"
	"errors"
	"log" // used only until the structured logger exists
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/shopping-lists/internal/config"
	"github.com/iliyamo/shopping-lists/internal/database"
	"github.com/iliyamo/shopping-lists/internal/events"
	"github.com/iliyamo/shopping-lists/internal/handler"
	"github.com/iliyamo/shopping-lists/internal/logging"
	"github.com/iliyamo/shopping-lists/internal/middleware"
	"github.com/iliyamo/shopping-lists/internal/queue"
	"github.com/iliyamo/shopping-lists/internal/repository"
	"github.com/iliyamo/shopping-lists/internal/router"
	"github.com/iliyamo/shopping-lists/internal/service"
	"github.com/iliyamo/shopping-lists/internal/session"
)

const eventBuffer = 256

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load() // Load environment config

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal("database open", zap.Error(err))
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("database migrate", zap.Error(err))
	}

	rlCfg := config.LoadRateLimitConfig()
	rdb := openRedis(ctx, cfg.Session.Backend == session.BackendRedis || rlCfg.Enabled, cfg.Session.Backend == session.BackendRedis, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	sessions, err := newSessionStore(cfg.Session, rdb)
	if err != nil {
		logger.Fatal("session store", zap.Error(err))
	}

	var pub events.Publisher = events.Noop{}
	if cfg.Events.Enabled {
		p := events.NewAMQPPublisher(cfg.Events.RabbitMQURL, eventBuffer, logger)
		go p.Run(ctx)
		pub = p
	}
	if cfg.Events.Consumer {
		go queue.StartActivityConsumer(ctx, cfg.Events.RabbitMQURL, queue.NewActivityLog(cfg.Events.LogDir), logger)
	}

	authSvc := service.NewAuthService(repository.NewUserRepo(db), sessions, cfg.BcryptCost)
	listSvc := service.NewListService(repository.NewListRepo(db), repository.NewItemRepo(db), pub)

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.Recover(logger))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(authSvc, cfg.Session, logger), authSvc,
		middleware.NewTokenBucket(rlCfg, rdb, logger))
	router.RegisterLists(e, handler.NewListHandler(listSvc, logger), authSvc)

	addr := ":" + cfg.Port
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env),
			zap.String("session_backend", cfg.Session.Backend), zap.Bool("events", cfg.Events.Enabled))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

// openRedis connects when something needs Redis.  A failure is fatal only
// when required is set; otherwise the rate limiter runs open.
func openRedis(ctx context.Context, wanted, required bool, logger *zap.Logger) *redis.Client {
	if !wanted {
		return nil
	}
	rcfg := config.LoadRedisConfig()
	rdb, err := config.NewRedisClient(ctx, rcfg)
	if err != nil {
		if required {
			logger.Fatal("redis", zap.Error(err))
		}
		logger.Warn("redis unavailable, rate limiting disabled", zap.String("addr", rcfg.Addr), zap.Error(err))
		return nil
	}
	return rdb
}

func newSessionStore(cfg config.SessionConfig, rdb *redis.Client) (session.Store, error) {
	switch cfg.Backend {
	case session.BackendRedis:
		return session.NewRedisStore(rdb, cfg.TTL), nil
	case session.BackendJWT:
		return session.NewSignedStore(cfg.Secret, cfg.TTL)
	case session.BackendMemory:
		return session.NewMemoryStore(cfg.TTL), nil
	}
	return nil, session.ValidateBackend(cfg.Backend)
}
