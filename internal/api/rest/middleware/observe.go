package middleware

import (
	"log/slog"
	"time"

	"github.com/SundayYogurt/scholarship_service/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Observe logs one line per request and records the HTTP metrics. It runs
// after the error handler has written the response status.
func Observe(logger *slog.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if ctx.Path() == "/metrics" {
			return ctx.Next()
		}

		start := time.Now()
		metrics.InFlight(1)
		defer metrics.InFlight(-1)

		err := ctx.Next()
		if err != nil {
			// let the app's error handler set the status now
			if herr := ctx.App().ErrorHandler(ctx, err); herr != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := ctx.Response().StatusCode()
		elapsed := time.Since(start)
		route := ctx.Route().Path

		metrics.RecordHTTPRequest(ctx.Method(), route, status, elapsed)

		level := slog.LevelInfo
		if status >= fiber.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.LogAttrs(ctx.UserContext(), level, "request",
			slog.String("request_id", requestID(ctx)),
			slog.String("method", ctx.Method()),
			slog.String("path", ctx.Path()),
			slog.String("route", route),
			slog.Int("status", status),
			slog.Duration("duration", elapsed),
		)
		return nil
	}
}

func requestID(ctx *fiber.Ctx) string {
	if id, ok := ctx.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return ctx.GetRespHeader(fiber.HeaderXRequestID)
}
