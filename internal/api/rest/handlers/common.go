package handlers

import (
	"errors"
	"strconv"

	"github.com/SundayYogurt/scholarship_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/SundayYogurt/scholarship_service/internal/helper"
	"github.com/SundayYogurt/scholarship_service/internal/helper/utils"
	"github.com/SundayYogurt/scholarship_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

// callerOf builds the service-level caller from the guard's locals.
func callerOf(ctx *fiber.Ctx, roles middleware.RoleResolver) (services.Caller, error) {
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return services.Caller{}, err
	}
	role, err := middleware.CallerRole(ctx, roles)
	if err != nil {
		return services.Caller{}, err
	}
	return services.Caller{Email: user.Email, Role: role}, nil
}

// found answers a lookup. A miss is a 200 with a null body.
func found[T any](ctx *fiber.Ctx, v *T, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return utils.ResponseSuccess(ctx, fiber.StatusOK, nil)
	}
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, v)
}

func queryInt(ctx *fiber.Ctx, key string) (int, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &domain.ValidationError{Field: key, Message: "must be an integer"}
	}
	return n, nil
}
