package utils

import "github.com/gofiber/fiber/v2"

// ResponseError answers with the {message} body every failure uses.
func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"message": msg,
	})
}

// ResponseSuccess writes data as the bare JSON body. A nil value encodes as
// null, which is how lookups that miss are answered.
func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(data)
}
