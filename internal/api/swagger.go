package api

import (
	"github.com/SundayYogurt/scholarship_service/docs"
	"github.com/gofiber/fiber/v2"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

// RegisterSwagger serves the API docs. Host and schemes are left empty so
// the UI targets whatever host served it.
func RegisterSwagger(app *fiber.App) {
	docs.SwaggerInfo.Host = ""
	docs.SwaggerInfo.Schemes = nil

	app.Get("/swagger/*", fiberSwagger.WrapHandler)
}
