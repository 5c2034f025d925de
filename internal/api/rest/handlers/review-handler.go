package handlers

import (
	"github.com/SundayYogurt/scholarship_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/scholarship_service/internal/dto"
	"github.com/SundayYogurt/scholarship_service/internal/helper"
	"github.com/SundayYogurt/scholarship_service/internal/helper/utils"
	"github.com/SundayYogurt/scholarship_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	svc   services.ReviewService
	roles middleware.RoleResolver
}

func NewReviewHandler(svc services.ReviewService, roles middleware.RoleResolver) *ReviewHandler {
	return &ReviewHandler{svc: svc, roles: roles}
}

// Create godoc
// @Summary Review a scholarship
// @Tags reviews
// @Security BearerAuth
// @Accept json
// @Param body body dto.ReviewCreateRequest true "review"
// @Success 200 {object} domain.InsertResult
// @Router /addReview [post]
func (h *ReviewHandler) Create(ctx *fiber.Ctx) error {
	var req dto.ReviewCreateRequest
	if err := helper.ParseAndValidate(ctx, &req); err != nil {
		return err
	}
	caller, err := callerOf(ctx, h.roles)
	if err != nil {
		return err
	}
	res, err := h.svc.Create(ctx.UserContext(), caller, req.ToDomain(caller.Email))
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

// List godoc
// @Summary Reviews
// @Tags reviews
// @Param scholarshipId query string false "only reviews of this scholarship"
// @Success 200 {array} domain.Review
// @Router /addReview [get]
func (h *ReviewHandler) List(ctx *fiber.Ctx) error {
	list, err := h.svc.List(ctx.UserContext(), ctx.Query("scholarshipId"))
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, list)
}

// Get godoc
// @Summary One review
// @Tags reviews
// @Param id path string true "review id"
// @Success 200 {object} domain.Review
// @Router /addReview/{id} [get]
func (h *ReviewHandler) Get(ctx *fiber.Ctx) error {
	rv, err := h.svc.Get(ctx.UserContext(), ctx.Params("id"))
	return found(ctx, rv, err)
}

// Update godoc
// @Summary Edit own review
// @Tags reviews
// @Security BearerAuth
// @Accept json
// @Param id path string true "review id"
// @Param body body dto.ReviewUpdateRequest true "editable fields"
// @Success 200 {object} domain.UpdateResult
// @Failure 403 {object} dto.APIError
// @Router /addReview/{id} [patch]
func (h *ReviewHandler) Update(ctx *fiber.Ctx) error {
	var req dto.ReviewUpdateRequest
	if err := helper.ParseAndValidate(ctx, &req); err != nil {
		return err
	}
	caller, err := callerOf(ctx, h.roles)
	if err != nil {
		return err
	}
	res, err := h.svc.Update(ctx.UserContext(), caller, ctx.Params("id"), req.Fields())
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

// Delete godoc
// @Summary Delete a review
// @Tags reviews
// @Security BearerAuth
// @Param id path string true "review id"
// @Success 200 {object} domain.DeleteResult
// @Router /addReview/{id} [delete]
func (h *ReviewHandler) Delete(ctx *fiber.Ctx) error {
	caller, err := callerOf(ctx, h.roles)
	if err != nil {
		return err
	}
	res, err := h.svc.Delete(ctx.UserContext(), caller, ctx.Params("id"))
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}
