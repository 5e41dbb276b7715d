package setup

import (
	"barcode-scanner/app"
	"barcode-scanner/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {
	fiberApp.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })
	fiberApp.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(application.Registry, promhttp.HandlerOpts{})))

	api := fiberApp.Group("/api")

	// Fixed paths before :id so they are not captured as IDs
	barcodes := api.Group("/barcodes")
	barcodes.Get("/", handlers.ListBarcodes(application))
	barcodes.Get("/today", handlers.ListTodayBarcodes(application))
	barcodes.Get("/favorites", handlers.ListFavoriteBarcodes(application))
	barcodes.Get("/export", handlers.ExportBarcodes(application))
	barcodes.Get("/:id", handlers.GetBarcode(application))
	barcodes.Post("/", handlers.RecordBarcode(application))
	barcodes.Put("/:id/favorite", handlers.SetFavorite(application))
	barcodes.Delete("/:id", handlers.DeleteBarcode(application))
	barcodes.Delete("/", handlers.DeleteAllBarcodes(application))

	api.Get("/token", handlers.CurrentToken(application))
	api.Post("/token", handlers.NextToken(application))
	api.Get("/token/today", handlers.TodayTokenCount(application))
}
