package handlers

import (
	"github.com/SundayYogurt/scholarship_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/scholarship_service/internal/dto"
	"github.com/SundayYogurt/scholarship_service/internal/helper"
	"github.com/SundayYogurt/scholarship_service/internal/helper/utils"
	"github.com/SundayYogurt/scholarship_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	svc   services.PaymentService
	roles middleware.RoleResolver
}

func NewPaymentHandler(svc services.PaymentService, roles middleware.RoleResolver) *PaymentHandler {
	return &PaymentHandler{svc: svc, roles: roles}
}

// CreateIntent godoc
// @Summary Start a card payment
// @Tags payments
// @Security BearerAuth
// @Accept json
// @Param body body dto.PaymentIntentRequest true "price in major units"
// @Success 200 {object} dto.PaymentIntentResponse
// @Failure 400 {object} dto.APIError
// @Failure 502 {object} dto.APIError
// @Router /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(ctx *fiber.Ctx) error {
	var req dto.PaymentIntentRequest
	if err := helper.ParseAndValidate(ctx, &req); err != nil {
		return err
	}
	secret, err := h.svc.CreateIntent(ctx.UserContext(), req.Price)
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.PaymentIntentResponse{ClientSecret: secret})
}

// Record godoc
// @Summary Record a confirmed payment
// @Description Stores the payment and deletes the submissions it covers in one transaction.
// @Tags payments
// @Security BearerAuth
// @Accept json
// @Param body body dto.PaymentCreateRequest true "payment"
// @Success 200 {object} domain.PaymentOutcome
// @Failure 403 {object} dto.APIError
// @Router /payments [post]
func (h *PaymentHandler) Record(ctx *fiber.Ctx) error {
	var req dto.PaymentCreateRequest
	if err := helper.ParseAndValidate(ctx, &req); err != nil {
		return err
	}
	caller, err := callerOf(ctx, h.roles)
	if err != nil {
		return err
	}
	email := req.Email
	if email == "" {
		email = caller.Email
	}
	out, err := h.svc.RecordPayment(ctx.UserContext(), caller, req.ToDomain(email))
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

// List godoc
// @Summary Payment history
// @Tags payments
// @Security BearerAuth
// @Param email query string false "payer email"
// @Success 200 {array} domain.Payment
// @Router /payments [get]
func (h *PaymentHandler) List(ctx *fiber.Ctx) error {
	list, err := h.svc.List(ctx.UserContext(), ctx.Query("email"))
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, list)
}
