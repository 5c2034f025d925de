package rest

import (
	"errors"
	"log/slog"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/SundayYogurt/scholarship_service/internal/helper/utils"
	"github.com/SundayYogurt/scholarship_service/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// ErrorHandler turns every error a handler returns into a {message} body.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		status, msg := classify(err)
		if status >= fiber.StatusInternalServerError {
			rid, _ := ctx.Locals(requestid.ConfigDefault.ContextKey).(string)
			logger.Error("request failed",
				slog.String("request_id", rid),
				slog.String("method", ctx.Method()),
				slog.String("path", ctx.Path()),
				slog.Any("error", err),
			)
		}
		return utils.ResponseError(ctx, status, msg)
	}
}

func classify(err error) (int, string) {
	var (
		verr  *domain.ValidationError
		perr  *domain.PaymentProviderError
		fiErr *fiber.Error
	)
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, domain.ErrUnauthorized.Error()
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, domain.ErrForbidden.Error()
	case errors.Is(err, domain.ErrInvalidID):
		return fiber.StatusBadRequest, "invalid id"
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, verr.Error()
	case errors.As(err, &perr):
		return fiber.StatusBadGateway, perr.Message
	case errors.Is(err, services.ErrPaymentsDisabled):
		return fiber.StatusServiceUnavailable, err.Error()
	case errors.As(err, &fiErr):
		return fiErr.Code, fiErr.Message
	default:
		return fiber.StatusInternalServerError, "internal server error"
	}
}
