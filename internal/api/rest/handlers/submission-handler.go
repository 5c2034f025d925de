package handlers

import (
	"github.com/SundayYogurt/scholarship_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/SundayYogurt/scholarship_service/internal/dto"
	"github.com/SundayYogurt/scholarship_service/internal/helper"
	"github.com/SundayYogurt/scholarship_service/internal/helper/utils"
	"github.com/SundayYogurt/scholarship_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SubmissionHandler struct {
	svc   services.SubmissionService
	roles middleware.RoleResolver
}

func NewSubmissionHandler(svc services.SubmissionService, roles middleware.RoleResolver) *SubmissionHandler {
	return &SubmissionHandler{svc: svc, roles: roles}
}

// List godoc
// @Summary Submissions of one applicant
// @Description Staff may omit email to list every submission.
// @Tags submissions
// @Security BearerAuth
// @Param email query string false "owner email"
// @Success 200 {array} domain.Submission
// @Router /submits [get]
func (h *SubmissionHandler) List(ctx *fiber.Ctx) error {
	list, err := h.svc.List(ctx.UserContext(), ctx.Query("email"))
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, list)
}

// Get godoc
// @Summary One submission
// @Tags submissions
// @Security BearerAuth
// @Param id path string true "submission id"
// @Success 200 {object} domain.Submission
// @Router /submits/{id} [get]
func (h *SubmissionHandler) Get(ctx *fiber.Ctx) error {
	caller, err := callerOf(ctx, h.roles)
	if err != nil {
		return err
	}
	sub, err := h.svc.Get(ctx.UserContext(), caller, ctx.Params("id"))
	return found(ctx, sub, err)
}

// Create godoc
// @Summary Apply for a scholarship
// @Tags submissions
// @Security BearerAuth
// @Accept json
// @Param body body dto.SubmissionCreateRequest true "application"
// @Success 200 {object} domain.InsertResult
// @Router /submits [post]
func (h *SubmissionHandler) Create(ctx *fiber.Ctx) error {
	var req dto.SubmissionCreateRequest
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

// SetStatus godoc
// @Summary Move a submission through review
// @Tags submissions
// @Security BearerAuth
// @Accept json
// @Param id path string true "submission id"
// @Param body body dto.SetStatusRequest true "status"
// @Success 200 {object} domain.UpdateResult
// @Router /submits/{id}/status [patch]
func (h *SubmissionHandler) SetStatus(ctx *fiber.Ctx) error {
	var req dto.SetStatusRequest
	if err := helper.ParseAndValidate(ctx, &req); err != nil {
		return err
	}
	res, err := h.svc.SetStatus(ctx.UserContext(), ctx.Params("id"), domain.SubmissionStatus(req.Status))
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

// Delete godoc
// @Summary Remove one submission
// @Tags submissions
// @Security BearerAuth
// @Param id path string true "submission id"
// @Success 200 {object} domain.DeleteResult
// @Router /submits/{id} [delete]
func (h *SubmissionHandler) Delete(ctx *fiber.Ctx) error {
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

// DeleteMany godoc
// @Summary Remove several submissions
// @Description Ids that match nothing are ignored.
// @Tags submissions
// @Security BearerAuth
// @Accept json
// @Param body body dto.DeleteManyRequest true "ids"
// @Success 200 {object} domain.DeleteResult
// @Router /submits [delete]
func (h *SubmissionHandler) DeleteMany(ctx *fiber.Ctx) error {
	var req dto.DeleteManyRequest
	if err := helper.ParseAndValidate(ctx, &req); err != nil {
		return err
	}
	caller, err := callerOf(ctx, h.roles)
	if err != nil {
		return err
	}
	res, err := h.svc.DeleteMany(ctx.UserContext(), caller, req.IDs)
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}
