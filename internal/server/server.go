package server

import (
    "context"
    "errors"
    "log/slog"
    "time"

    "github.com/gofiber/fiber/v2"
    "github.com/jackc/pgx/v5/pgxpool"
    "github.com/redis/go-redis/v9"

    "github.com/congo-pay/wallet-reconciler/internal/config"
    "github.com/congo-pay/wallet-reconciler/internal/routes"
)

// Server wraps the Fiber application and shared dependencies.
type Server struct {
    app *fiber.App
    cfg config.Config
}

// New instantiates the HTTP server and delegates route wiring to routes.Setup.
func New(cfg config.Config, db *pgxpool.Pool, cache *redis.Client, logger *slog.Logger) (*Server, error) {
    app := NewApp(cfg)
    if err := routes.Setup(app, routes.Deps{Cfg: cfg, DB: db, Cache: cache, Logger: logger}); err != nil {
        return nil, err
    }
    return &Server{app: app, cfg: cfg}, nil
}

// NewApp builds the bare Fiber application with the JSON error contract.
func NewApp(cfg config.Config) *fiber.App {
    return fiber.New(fiber.Config{
        AppName:      cfg.AppName,
        ReadTimeout:  30 * time.Second,
        WriteTimeout: 30 * time.Second,
        ErrorHandler: errorHandler,
    })
}

// errorHandler renders every error as {"detail": "..."}; anything that is not
// a *fiber.Error is reported as an opaque 500.
func errorHandler(c *fiber.Ctx, err error) error {
    code := fiber.StatusInternalServerError
    detail := "Internal Server Error"
    var fe *fiber.Error
    if errors.As(err, &fe) {
        code = fe.Code
        detail = fe.Message
    }
    return c.Status(code).JSON(fiber.Map{"detail": detail})
}

// Listen starts the HTTP server.
func (s *Server) Listen() error {
    return s.app.Listen(s.cfg.Address())
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
    return s.app.ShutdownWithContext(ctx)
}
