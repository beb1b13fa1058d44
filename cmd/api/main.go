package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/perishable-inventory/docs"
	"github.com/jhoicas/perishable-inventory/internal/application/inventory"
	"github.com/jhoicas/perishable-inventory/internal/application/usecase"
	domaininv "github.com/jhoicas/perishable-inventory/internal/domain/inventory"
	"github.com/jhoicas/perishable-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/perishable-inventory/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/perishable-inventory/internal/interfaces/http"
	"github.com/jhoicas/perishable-inventory/pkg/config"
	"github.com/jhoicas/perishable-inventory/pkg/logger"
)

// txRunner lo implementan los stores postgres y sqlite.
type txRunner interface {
	inventory.TxRunner
	usecase.ReadTxRunner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Int("shelf_life_days", cfg.Inventory.ShelfLifeDays).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var runner txRunner
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DB.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Msg("apertura de SQLite")
		}
		defer db.Close()
		runner = sqlite.NewTxRunner(db)
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migración del esquema")
		}
		runner = postgres.NewTxRunner(pool, cfg.DB.MaxRetries, log.Component("postgres"))
	}

	shelfLife, err := domaininv.NewShelfLife(cfg.Inventory.ShelfLifeDays)
	if err != nil {
		log.Fatal().Err(err).Msg("vida útil inválida")
	}
	pricing, err := domaininv.NewPricing(cfg.Inventory.UnitPrice, cfg.Inventory.UnitCost, cfg.Inventory.Currency)
	if err != nil {
		log.Fatal().Err(err).Msg("precios inválidos")
	}

	transactionUC := inventory.NewTransactionUseCase(runner, shelfLife, log.Component("transactions"))
	analyticsUC := usecase.NewAnalyticsUseCase(runner, shelfLife, pricing)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Perishable Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Transactions: transactionUC,
		Analytics:    analyticsUC,
		Log:          log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
