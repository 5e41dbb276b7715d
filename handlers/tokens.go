package handlers

import (
	"barcode-scanner/app"

	"github.com/gofiber/fiber/v2"
)

// CurrentToken shows the token the next scan will receive
func CurrentToken(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := a.Barcodes.CurrentToken(c.UserContext())
		if err != nil {
			return serverErrorWithDetails(c, "Failed to read token", err)
		}
		return success(c, fiber.Map{"token": token})
	}
}

// NextToken consumes a token without recording a scan
func NextToken(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := a.Barcodes.NextToken(c.UserContext())
		if err != nil {
			return serverErrorWithDetails(c, "Failed to issue token", err)
		}
		return created(c, fiber.Map{"token": token})
	}
}

// TodayTokenCount returns how many barcodes were scanned today (UTC)
func TodayTokenCount(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, err := a.Barcodes.TodayCount(c.UserContext())
		if err != nil {
			return serverErrorWithDetails(c, "Failed to count today's scans", err)
		}
		return success(c, fiber.Map{"count": count})
	}
}
