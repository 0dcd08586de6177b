package main

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "os/signal"
    "syscall"
    "time"

    "github.com/getsentry/sentry-go"
    "github.com/gin-gonic/gin"
    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "github.com/d60-Lab/hopon/config"
    _ "github.com/d60-Lab/hopon/docs"
    "github.com/d60-Lab/hopon/internal/api/handler"
    "github.com/d60-Lab/hopon/internal/api/router"
    "github.com/d60-Lab/hopon/internal/cache"
    "github.com/d60-Lab/hopon/internal/repository"
    "github.com/d60-Lab/hopon/internal/service"
    "github.com/d60-Lab/hopon/pkg/database"
    "github.com/d60-Lab/hopon/pkg/logger"
    "github.com/d60-Lab/hopon/pkg/tracing"
)

// @title hopon API
// @version 1.0
// @description 运动约局服务：建局、加入/退出、附近发现、关注
// @BasePath /
func main() {
    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()

    cfg, err := config.Load()
    if err != nil {
        panic(err)
    }
    if err := logger.Init(cfg.Log.Level, cfg.Server.Mode); err != nil {
        panic(err)
    }
    defer logger.Sync()

    gin.SetMode(ginMode(cfg.Server.Mode))
    if err := handler.RegisterValidators(); err != nil {
        logger.Error("register validators", zap.Error(err))
    }

    if cfg.Sentry.DSN != "" {
        if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
            logger.Warn("sentry init failed", zap.Error(err))
        } else {
            defer sentry.Flush(2 * time.Second)
        }
    }

    shutdownTracing, err := tracing.Init(ctx, cfg, router.ServiceName)
    if err != nil {
        logger.Warn("tracing init failed", zap.Error(err))
        shutdownTracing = func(context.Context) error { return nil }
    }

    db, err := database.InitDB(cfg)
    if err != nil {
        logger.Error("init database", zap.Error(err))
        return
    }

    var rdb *redis.Client
    if cfg.Redis.Addr != "" {
        rdb = redis.NewClient(&redis.Options{
            Addr:     cfg.Redis.Addr,
            Password: cfg.Redis.Password,
            DB:       cfg.Redis.DB,
        })
        if err := rdb.Ping(ctx).Err(); err != nil {
            logger.Warn("redis unreachable, count cache disabled", zap.Error(err))
            rdb = nil
        }
    }

    counts := cache.NewCounts(db, rdb, cfg.Redis.CountTTL)
    refresher := service.NewCountRefresher(counts, 10000)
    stopRefresher := refresher.Start(4)

    eventRepo := repository.NewEventRepository(db)
    participantRepo := repository.NewParticipantRepository(db)
    userRepo := repository.NewUserRepository(db)
    followRepo := repository.NewFollowRepository(db)

    h := handler.New(
        service.NewEventService(eventRepo, participantRepo, counts),
        service.NewMembershipService(db, eventRepo, participantRepo, refresher),
        service.NewUserService(userRepo, counts),
        service.NewRelationshipService(followRepo),
    )

    srv := &http.Server{
        Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
        Handler: router.New(h),
    }

    go func() {
        logger.Info("server listening", zap.String("addr", srv.Addr))
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            logger.Error("server error", zap.Error(err))
            stop()
        }
    }()

    <-ctx.Done()
    logger.Info("shutting down")

    shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := srv.Shutdown(shutdownCtx); err != nil {
        logger.Error("server shutdown", zap.Error(err))
    }
    _ = stopRefresher(shutdownCtx)
    _ = shutdownTracing(shutdownCtx)
}

func ginMode(mode string) string {
    switch mode {
    case "release":
        return gin.ReleaseMode
    case "test":
        return gin.TestMode
    default:
        return gin.DebugMode
    }
}
