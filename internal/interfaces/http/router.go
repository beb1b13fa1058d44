package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/perishable-inventory/internal/application/inventory"
	"github.com/jhoicas/perishable-inventory/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Transactions *inventory.TransactionUseCase
	Analytics    *usecase.AnalyticsUseCase
	Log          zerolog.Logger
}

// Router registra las rutas de la API. Debe llamarse después de registrar /health y /docs,
// porque instala el manejador 404 al final de la cadena.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestLogger(deps.Log))

	inventoryHandler := NewInventoryHandler(deps.Transactions)
	api.Post("/purchase", inventoryHandler.Purchase)
	api.Post("/sell", inventoryHandler.Sell)

	analyticsHandler := NewAnalyticsHandler(deps.Analytics)
	api.Get("/analytics", analyticsHandler.GetAnalytics)

	invGroup := api.Group("/inventory")
	invGroup.Get("/store", inventoryHandler.GetStore)
	invGroup.Get("/records", analyticsHandler.GetRecords)

	app.Use(NotFound)
}
