package handlers

import (
	"barcode-scanner/app"
	"barcode-scanner/models"
	"barcode-scanner/services"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// RecordBarcode stores a scan and assigns it the next token
func RecordBarcode(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.RecordBarcodeRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		res, err := a.Barcodes.Record(c.UserContext(), req)
		if err != nil {
			var unknown *models.UnknownValueError
			if errors.As(err, &unknown) {
				return badRequest(c, err.Error())
			}
			if isValidation(err) {
				return validationFailed(c, err)
			}
			return serverErrorWithDetails(c, "Failed to save barcode", err)
		}

		if res.Duplicate {
			return success(c, fiber.Map{"barcode": res.Barcode, "duplicate": true})
		}
		return created(c, fiber.Map{"barcode": res.Barcode, "duplicate": false})
	}
}

// ListBarcodes returns one page of history
func ListBarcodes(a *app.App) fiber.Handler {
	return listHandler(a, services.ListAll)
}

// ListTodayBarcodes returns one page of today's scans
func ListTodayBarcodes(a *app.App) fiber.Handler {
	return listHandler(a, services.ListToday)
}

// ListFavoriteBarcodes returns one page of favorites
func ListFavoriteBarcodes(a *app.App) fiber.Handler {
	return listHandler(a, services.ListFavorites)
}

func listHandler(a *app.App, kind services.ListKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 0)
		if page < 0 {
			return badRequest(c, "page must not be negative")
		}

		result, err := a.Barcodes.List(c.UserContext(), kind, page)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to list barcodes", err)
		}

		return success(c, fiber.Map{
			"barcodes":  result.Barcodes,
			"page":      result.Page,
			"page_size": result.PageSize,
			"total":     result.Total,
		})
	}
}

// GetBarcode returns a single stored barcode
func GetBarcode(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := barcodeID(c)
		if !ok {
			return badRequest(c, "Invalid barcode id")
		}

		b, err := a.Barcodes.Get(c.UserContext(), id)
		if errors.Is(err, services.ErrBarcodeNotFound) {
			return notFound(c, "Barcode not found")
		}
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch barcode", err)
		}

		return success(c, fiber.Map{"barcode": b})
	}
}

// ExportBarcodes returns every barcode in export form, newest first
func ExportBarcodes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := a.Barcodes.Export(c.UserContext())
		if err != nil {
			return serverErrorWithDetails(c, "Failed to export barcodes", err)
		}
		return success(c, fiber.Map{"barcodes": rows, "count": len(rows)})
	}
}

// SetFavorite flags or unflags a barcode
func SetFavorite(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := barcodeID(c)
		if !ok {
			return badRequest(c, "Invalid barcode id")
		}

		var req models.SetFavoriteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		b, err := a.Barcodes.SetFavorite(c.UserContext(), id, req.Favorite)
		if errors.Is(err, services.ErrBarcodeNotFound) {
			return notFound(c, "Barcode not found")
		}
		if err != nil {
			return serverErrorWithDetails(c, "Failed to update barcode", err)
		}

		return success(c, fiber.Map{"barcode": b})
	}
}

// DeleteBarcode removes one barcode
func DeleteBarcode(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := barcodeID(c)
		if !ok {
			return badRequest(c, "Invalid barcode id")
		}

		if err := a.Barcodes.Delete(c.UserContext(), id); err != nil {
			return serverErrorWithDetails(c, "Failed to delete barcode", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteAllBarcodes clears the history. Tokens are not reset.
func DeleteAllBarcodes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Barcodes.DeleteAll(c.UserContext()); err != nil {
			return serverErrorWithDetails(c, "Failed to delete barcodes", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
