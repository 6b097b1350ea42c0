package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/inventario-lotes/internal/application/stock"
	"github.com/tu-usuario/inventario-lotes/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	BatchUC    *usecase.BatchUseCase
	ItemUC     *usecase.BatchItemUseCase
	CategoryUC *usecase.CategoryUseCase
	LocationUC *usecase.LocationUseCase
	Aggregator *stock.Aggregator
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Batches
	batches := api.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchUC, deps.Aggregator)
	batches.Post("/", batchHandler.Create)
	batches.Post("/bulk", batchHandler.CreateBulk)
	batches.Get("/", batchHandler.List)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Get("/:id/stock", batchHandler.GetStock)
	batches.Put("/:id", batchHandler.Update)
	batches.Delete("/:id", batchHandler.Delete)

	// Batch items
	items := api.Group("/batch-items")
	itemHandler := NewBatchItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Post("/bulk", itemHandler.CreateBulk)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Locations
	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)
}

// pageParams lee limit/offset con defaults y topes (limit <= 100).
func pageParams(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 20)
	offset = c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
