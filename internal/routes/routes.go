package routes

import (
    "fmt"
    "log/slog"
    "strings"

    "github.com/gofiber/fiber/v2"
    "github.com/gofiber/fiber/v2/middleware/cors"
    "github.com/gofiber/fiber/v2/middleware/recover"
    "github.com/jackc/pgx/v5/pgxpool"
    "github.com/redis/go-redis/v9"

    "github.com/congo-pay/wallet-reconciler/internal/config"
    "github.com/congo-pay/wallet-reconciler/internal/external"
    "github.com/congo-pay/wallet-reconciler/internal/middleware"
    "github.com/congo-pay/wallet-reconciler/internal/notification"
    "github.com/congo-pay/wallet-reconciler/internal/reconcile"
    "github.com/congo-pay/wallet-reconciler/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes. DB and Cache
// may be nil; Source defaults to the static external fixture.
type Deps struct {
    Cfg    config.Config
    DB     *pgxpool.Pool
    Cache  *redis.Client
    Logger *slog.Logger
    Source external.Source
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
    if d.DB == nil && !d.Cfg.IsDev() {
        return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
    }
    if d.Logger == nil {
        return fmt.Errorf("logger is required")
    }

    // Middlewares
    // Audit wraps recover so recovered panics still get a log line.
    app.Use(middleware.RequestID())
    app.Use(middleware.Audit(d.Logger))
    app.Use(recover.New())
    app.Use(cors.New(cors.Config{
        AllowOrigins:     strings.Join(d.Cfg.AllowedOrigins(), ","),
        AllowMethods:     "GET,POST,PUT,PATCH,DELETE,HEAD,OPTIONS",
        AllowHeaders:     "",
        AllowCredentials: true,
    }))
    app.Use(middleware.RateLimit(d.Cache, d.Cfg.RateLimitPerMinute, d.Logger))
    if d.Cache != nil {
        app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
    }

    // Health
    RegisterHealthRoutes(app, d)

    // Services and handlers
    var walletRepo wallet.Repository
    if d.DB != nil {
        walletRepo = wallet.NewPostgresRepository(d.DB)
    } else {
        d.Logger.Warn("no database configured, wallets are kept in memory")
        walletRepo = wallet.NewMemoryRepository()
    }
    walletSvc := wallet.NewService(walletRepo)

    source := d.Source
    if source == nil {
        source = external.NewStaticSource()
    }
    notifier := notification.NewLoggerNotifier(d.Logger)
    engine := reconcile.NewEngine(walletSvc, source, notifier, d.Logger)

    RegisterWalletRoutes(app, wallet.NewHandler(walletSvc), reconcile.NewHandler(engine))

    return nil
}
