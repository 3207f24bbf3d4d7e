package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	eticket "github.com/Syed-Zahaab-Hussain/e-ticketing"
	fiberadapter "github.com/Syed-Zahaab-Hussain/e-ticketing/adapters/fiber"
	pgxadapter "github.com/Syed-Zahaab-Hussain/e-ticketing/adapters/pgx"
	"github.com/Syed-Zahaab-Hussain/e-ticketing/catalog"
	"github.com/Syed-Zahaab-Hussain/e-ticketing/pkg/config"
	"github.com/Syed-Zahaab-Hussain/e-ticketing/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("loading configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Backend).
		Msg("starting service")

	ctx := context.Background()

	var storage eticket.KVStore
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		storage = eticket.NewMemoryStore()
	case config.BackendFile:
		storage = eticket.NewFileStore(cfg.Storage.FilePath)
	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("connecting to PostgreSQL")
		}
		defer pool.Close()

		adapter := pgxadapter.New(pool)
		if err := adapter.Setup(ctx); err != nil {
			log.Fatal().Err(err).Msg("preparing storage table")
		}
		storage = adapter
	}

	var latency *eticket.LatencyConfig
	if cfg.App.DisableLatency {
		latency = &eticket.LatencyConfig{}
	}

	identity, err := eticket.New(eticket.Config{
		Storage: storage,
		Latency: latency,
		Logger:  &log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("building identity store")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	adapter := fiberadapter.New(app)
	if err := adapter.RegisterRoutes(identity); err != nil {
		log.Fatal().Err(err).Msg("registering identity routes")
	}
	if err := adapter.RegisterCatalog(catalog.New()); err != nil {
		log.Fatal().Err(err).Msg("registering catalog routes")
	}

	registerViews(app, identity)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("service stopped")
}

// registerViews mounts the role-gated dashboard endpoints and the public
// entry points the guard redirects to.
func registerViews(app *fiber.App, identity eticket.IdentityProvider) {
	app.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "home"})
	})
	app.Get("/login", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "login"})
	})

	dashboard := func(c fiber.Ctx) error {
		user := fiberadapter.UserFromContext(c)
		return c.JSON(fiber.Map{"page": "dashboard", "user": user})
	}

	app.Get("/admin/dashboard", dashboard,
		fiberadapter.RequireRoles(identity, eticket.RoleAdmin))
	app.Get("/operator/dashboard", dashboard,
		fiberadapter.RequireRoles(identity, eticket.RoleBusOperator))
	app.Get("/passenger/dashboard", dashboard,
		fiberadapter.RequireRoles(identity, eticket.RolePassenger))
}
