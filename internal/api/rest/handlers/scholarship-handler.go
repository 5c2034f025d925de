package handlers

import (
	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/SundayYogurt/scholarship_service/internal/dto"
	"github.com/SundayYogurt/scholarship_service/internal/helper"
	"github.com/SundayYogurt/scholarship_service/internal/helper/utils"
	"github.com/SundayYogurt/scholarship_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ScholarshipHandler struct {
	svc services.ScholarshipService
}

func NewScholarshipHandler(svc services.ScholarshipService) *ScholarshipHandler {
	return &ScholarshipHandler{svc: svc}
}

// List godoc
// @Summary Page through the catalog
// @Tags scholarships
// @Produce json
// @Param page query int false "zero-based page"
// @Param size query int false "page size (default 10, max 100)"
// @Param search query string false "case-insensitive university name substring"
// @Success 200 {array} domain.Scholarship
// @Failure 400 {object} dto.APIError
// @Router /topScholarship [get]
func (h *ScholarshipHandler) List(ctx *fiber.Ctx) error {
	page, err := queryInt(ctx, "page")
	if err != nil {
		return err
	}
	size, err := queryInt(ctx, "size")
	if err != nil {
		return err
	}
	list, err := h.svc.List(ctx.UserContext(), domain.ListQuery{Page: page, Size: size, Search: ctx.Query("search")})
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, list)
}

// Count godoc
// @Summary Estimated catalog size
// @Tags scholarships
// @Success 200 {object} dto.CountResponse
// @Router /topScholarshipCount [get]
func (h *ScholarshipHandler) Count(ctx *fiber.Ctx) error {
	n, err := h.svc.Count(ctx.UserContext())
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.CountResponse{Count: n})
}

// Detail godoc
// @Summary Catalog entry detail
// @Tags scholarships
// @Param id path string true "scholarship id"
// @Success 200 {object} dto.ScholarshipDetail
// @Failure 400 {object} dto.APIError
// @Router /topScholarship/{id} [get]
func (h *ScholarshipHandler) Detail(ctx *fiber.Ctx) error {
	s, err := h.svc.Detail(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return found[dto.ScholarshipDetail](ctx, nil, err)
	}
	d := dto.NewScholarshipDetail(*s)
	return found(ctx, &d, nil)
}

// Update godoc
// @Summary Edit a catalog entry
// @Tags scholarships
// @Security BearerAuth
// @Accept json
// @Param id path string true "scholarship id"
// @Param body body dto.ScholarshipUpdateRequest true "editable fields"
// @Success 200 {object} domain.UpdateResult
// @Router /topScholarship/{id} [patch]
func (h *ScholarshipHandler) Update(ctx *fiber.Ctx) error {
	var req dto.ScholarshipUpdateRequest
	if err := helper.ParseAndValidate(ctx, &req); err != nil {
		return err
	}
	res, err := h.svc.Update(ctx.UserContext(), ctx.Params("id"), req.Fields())
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

// Delete godoc
// @Summary Delete a catalog entry
// @Tags scholarships
// @Security BearerAuth
// @Param id path string true "scholarship id"
// @Success 200 {object} domain.DeleteResult
// @Router /topScholarship/{id} [delete]
func (h *ScholarshipHandler) Delete(ctx *fiber.Ctx) error {
	res, err := h.svc.Delete(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

// Create godoc
// @Summary Add a catalog entry
// @Tags scholarships
// @Security BearerAuth
// @Accept json
// @Param body body dto.ScholarshipCreateRequest true "scholarship"
// @Success 200 {object} domain.InsertResult
// @Router /addScholarship [post]
func (h *ScholarshipHandler) Create(ctx *fiber.Ctx) error {
	var req dto.ScholarshipCreateRequest
	if err := helper.ParseAndValidate(ctx, &req); err != nil {
		return err
	}
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return err
	}
	res, err := h.svc.Create(ctx.UserContext(), req.ToDomain(user.Email), user.Email)
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

// All godoc
// @Summary The full catalog
// @Tags scholarships
// @Success 200 {array} domain.Scholarship
// @Router /addScholarship [get]
func (h *ScholarshipHandler) All(ctx *fiber.Ctx) error {
	list, err := h.svc.All(ctx.UserContext())
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, list)
}
