package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/confeitaria-api/internal/app"
	"github.com/jhoicas/confeitaria-api/internal/application/auth"
	"github.com/jhoicas/confeitaria-api/internal/infrastructure/archive"
	"github.com/jhoicas/confeitaria-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/confeitaria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/confeitaria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/confeitaria-api/internal/interfaces/http"
	"github.com/jhoicas/confeitaria-api/internal/observability/metrics"
	"github.com/jhoicas/confeitaria-api/pkg/config"
	"github.com/jhoicas/confeitaria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(cfg.App.Name, reg)

	ctx := context.Background()

	// Persistencia: PostgreSQL o memoria (solo desarrollo local)
	var repos app.Repositories
	switch cfg.DB.Driver {
	case "memory":
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		repos = app.MemoryRepositories(memory.NewStores())
	default:
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repos = app.PostgresRepositories(postgres.NewStores(pool))
	}

	// Archivo de exportaciones (opcional)
	store, err := archive.Open(ctx, cfg.Archive)
	if err != nil {
		log.Fatal().Err(err).Msg("archivo de exportaciones")
	}
	archiver := archive.NewArchiver(store, cfg.Archive.KeyPrefix, log, m)

	services := app.NewServices(repos, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log, m)

	fiberApp := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	fiberApp.Use(recover.New())
	fiberApp.Use(httpRouter.Observability(log, m, cfg.Metrics.Path))

	// Swagger UI en local: http://localhost:<port>/docs
	fiberApp.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Confeitaria API",
	}))

	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if cfg.Metrics.Enabled {
		fiberApp.Get(cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	deps := services.RouterDeps(cfg.JWT.Secret, infrapdf.NewReportGenerator(), archiver, m)
	deps.RequestTimeout = cfg.HTTP.RequestTimeout
	httpRouter.Router(fiberApp, deps)

	go func() {
		if err := fiberApp.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
