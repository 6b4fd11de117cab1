package handlers

import (
	"github.com/gofiber/fiber/v2"
)

func message(c *fiber.Ctx, status int, success bool, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": success,
		"message": msg,
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return message(c, fiber.StatusBadRequest, false, msg)
}

func internalError(c *fiber.Ctx) error {
	return message(c, fiber.StatusInternalServerError, false, "Something went wrong. Please try again.")
}

// notFoundOrInaccessible is the single answer for both a missing resource
// and one the requester may not touch, so responses never reveal whether
// an id exists.
func notFoundOrInaccessible(c *fiber.Ctx) error {
	return message(c, fiber.StatusNotFound, false, "Resource not found or not accessible")
}

func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}
