package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appstock "github.com/tu-usuario/inventario-lotes/internal/application/stock"
	"github.com/tu-usuario/inventario-lotes/internal/application/usecase"
	infracache "github.com/tu-usuario/inventario-lotes/internal/infrastructure/cache"
	"github.com/tu-usuario/inventario-lotes/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/inventario-lotes/internal/interfaces/http"
	"github.com/tu-usuario/inventario-lotes/pkg/config"
	"github.com/tu-usuario/inventario-lotes/pkg/logger"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Caché de resúmenes de stock. Sin REDIS_ADDR la app opera sin caché.
	var summaryCache appstock.SummaryCache
	if cfg.Redis.Addr != "" {
		redisCache, err := infracache.NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible; la app opera sin caché de stock")
		} else {
			defer redisCache.Close()
			summaryCache = redisCache
		}
	}

	batchRepo := postgres.NewBatchRepository(pool)
	itemRepo := postgres.NewBatchItemRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	aggregator := appstock.NewAggregator(
		stockRepo, itemRepo, locationRepo,
		summaryCache, time.Duration(cfg.Redis.StockTTLSec)*time.Second, log,
	)
	allocator := usecase.NewCodeAllocator(batchRepo, cfg.Codes.DefaultPrefix, log)
	batchUC := usecase.NewBatchUseCase(batchRepo, allocator, txRunner, log)
	itemUC := usecase.NewBatchItemUseCase(itemRepo, batchRepo, locationRepo, aggregator, log)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Lotes API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		BatchUC:    batchUC,
		ItemUC:     itemUC,
		CategoryUC: categoryUC,
		LocationUC: locationUC,
		Aggregator: aggregator,
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
