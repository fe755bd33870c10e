package api

import (
	"github.com/gofiber/fiber/v3"
)

// jsonSuccess wraps data in the {"status":"ok","data":...} envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonList is jsonSuccess for slices; a nil slice is sent as [] rather than null.
func jsonList[T any](c fiber.Ctx, items []T) error {
	if items == nil {
		items = []T{}
	}
	return jsonSuccess(c, items)
}

// jsonError sends {"status":"error","error":message} with the given status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}
