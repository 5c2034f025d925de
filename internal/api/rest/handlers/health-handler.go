package handlers

import (
	"context"
	"time"

	"github.com/SundayYogurt/scholarship_service/internal/helper/utils"
	"github.com/gofiber/fiber/v2"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Root godoc
// @Summary Liveness
// @Tags health
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func (h *HealthHandler) Root(ctx *fiber.Ctx) error {
	return ctx.SendString("Scholarship management server is running")
}

// Ready godoc
// @Summary Readiness: the store answers a ping
// @Tags health
// @Success 200 {object} map[string]string
// @Failure 503 {object} dto.APIError
// @Router /health/ready [get]
func (h *HealthHandler) Ready(ctx *fiber.Ctx) error {
	c, cancel := context.WithTimeout(ctx.UserContext(), 2*time.Second)
	defer cancel()
	if err := h.store.Ping(c); err != nil {
		return utils.ResponseError(ctx, fiber.StatusServiceUnavailable, "database unavailable")
	}
	return ctx.JSON(fiber.Map{"status": "ok"})
}
