package setup

import (
	"barcode-scanner/config"
	"barcode-scanner/middleware"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// ApplyMiddleware applies all global middleware to the Fiber app
func ApplyMiddleware(app *fiber.App, cfg *config.Config, logger *slog.Logger) {
	app.Use(
		recover.New(),
		middleware.StructuredLogger(logger),
		middleware.Security(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders:     "Origin,Content-Type,Accept,X-Request-ID",
			ExposeHeaders:    middleware.RequestIDHeader,
			AllowCredentials: false,
			MaxAge:           86400,
		}),
		limiter.New(limiter.Config{
			Max:        200,
			Expiration: time.Minute,
			Next: func(c *fiber.Ctx) bool {
				return c.Path() == "/health" || c.Path() == "/metrics"
			},
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Rate limit exceeded",
				})
			},
		}),
	)
}
