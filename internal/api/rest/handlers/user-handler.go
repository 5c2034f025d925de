package handlers

import (
	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/SundayYogurt/scholarship_service/internal/dto"
	"github.com/SundayYogurt/scholarship_service/internal/helper"
	"github.com/SundayYogurt/scholarship_service/internal/helper/utils"
	"github.com/SundayYogurt/scholarship_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	svc  services.UserService
	auth helper.Auth
}

func NewUserHandler(svc services.UserService, auth helper.Auth) *UserHandler {
	return &UserHandler{svc: svc, auth: auth}
}

// IssueToken godoc
// @Summary Issue an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.TokenRequest true "identity claim"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.APIError
// @Router /jwt [post]
func (h *UserHandler) IssueToken(ctx *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := helper.ParseAndValidate(ctx, &req); err != nil {
		return err
	}
	token, err := h.auth.IssueToken(req.Email, req.Name)
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.TokenResponse{Token: token})
}

// List godoc
// @Summary List users
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.User
// @Failure 401 {object} dto.APIError
// @Failure 403 {object} dto.APIError
// @Router /users [get]
func (h *UserHandler) List(ctx *fiber.Ctx) error {
	users, err := h.svc.List(ctx.UserContext())
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, users)
}

// IsAdmin godoc
// @Summary Whether the caller is an admin
// @Tags users
// @Security BearerAuth
// @Param email path string true "caller email"
// @Success 200 {object} dto.AdminStatusResponse
// @Router /users/admin/{email} [get]
func (h *UserHandler) IsAdmin(ctx *fiber.Ctx) error {
	role, err := h.svc.ResolveRole(ctx.UserContext(), ctx.Params("email"))
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.AdminStatusResponse{Admin: role == domain.RoleAdmin})
}

// IsModerator godoc
// @Summary Whether the caller is a moderator
// @Tags users
// @Security BearerAuth
// @Param email path string true "caller email"
// @Success 200 {object} dto.ModeratorStatusResponse
// @Router /users/moderator/{email} [get]
func (h *UserHandler) IsModerator(ctx *fiber.Ctx) error {
	role, err := h.svc.ResolveRole(ctx.UserContext(), ctx.Params("email"))
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.ModeratorStatusResponse{Moderator: role == domain.RoleModerator})
}

// Role godoc
// @Summary The caller's role
// @Tags users
// @Security BearerAuth
// @Param email path string true "caller email"
// @Success 200 {object} dto.RoleResponse
// @Router /users/role/{email} [get]
func (h *UserHandler) Role(ctx *fiber.Ctx) error {
	email := ctx.Params("email")
	role, err := h.svc.ResolveRole(ctx.UserContext(), email)
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.RoleResponse{Email: helper.NormalizeEmail(email), Role: role.String()})
}

// Create godoc
// @Summary Register a user on first sign-in
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.CreateUserRequest true "user"
// @Success 200 {object} domain.InsertResult
// @Router /users [post]
func (h *UserHandler) Create(ctx *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := helper.ParseAndValidate(ctx, &req); err != nil {
		return err
	}
	res, created, err := h.svc.CreateIfAbsent(ctx.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}
	if !created {
		return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.UserExistsResponse{Message: "User already exists"})
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

// PromoteAdmin godoc
// @Summary Grant the admin role
// @Tags users
// @Security BearerAuth
// @Param id path string true "user id"
// @Success 200 {object} domain.UpdateResult
// @Router /users/admin/{id} [patch]
func (h *UserHandler) PromoteAdmin(ctx *fiber.Ctx) error {
	return h.promote(ctx, domain.RoleAdmin)
}

// PromoteModerator godoc
// @Summary Grant the moderator role
// @Tags users
// @Security BearerAuth
// @Param id path string true "user id"
// @Success 200 {object} domain.UpdateResult
// @Router /users/moderator/{id} [patch]
func (h *UserHandler) PromoteModerator(ctx *fiber.Ctx) error {
	return h.promote(ctx, domain.RoleModerator)
}

func (h *UserHandler) promote(ctx *fiber.Ctx, role domain.Role) error {
	res, err := h.svc.Promote(ctx.UserContext(), ctx.Params("id"), role)
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

// Delete godoc
// @Summary Delete a user
// @Tags users
// @Security BearerAuth
// @Param id path string true "user id"
// @Success 200 {object} domain.DeleteResult
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(ctx *fiber.Ctx) error {
	res, err := h.svc.Delete(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}
