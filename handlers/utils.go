package handlers

import (
	"barcode-scanner/validator"
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func success(c *fiber.Ctx, data fiber.Map) error {
	return c.JSON(data)
}

func created(c *fiber.Ctx, data fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": message})
}

func isValidation(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

// validationFailed reports field errors with 422 and anything else with 400.
func validationFailed(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": verrs,
		})
	}
	return badRequest(c, err.Error())
}

func serverErrorWithDetails(c *fiber.Ctx, message string, err error) error {
	requestID := ""
	if id, ok := c.Locals("requestID").(string); ok {
		requestID = id
	}

	slog.Error("server error",
		"request_id", requestID,
		"method", c.Method(),
		"path", c.Path(),
		"message", message,
		"error", err,
	)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}

// barcodeID parses the :id route param.
func barcodeID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
