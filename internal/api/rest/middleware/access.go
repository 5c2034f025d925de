package middleware

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/SundayYogurt/scholarship_service/internal/helper"
	"github.com/SundayYogurt/scholarship_service/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

const localsRole = "role"

// RoleResolver looks a caller's role up in the store.
type RoleResolver interface {
	ResolveRole(ctx context.Context, email string) (domain.Role, error)
}

// Access declares who may call a route.
type Access struct {
	// Authenticated demands a valid bearer token.
	Authenticated bool
	// Roles, when set, demands one of these roles.
	Roles []domain.Role
	// SelfParam names a path parameter, or "?name" for a query parameter,
	// that must equal the caller's email.
	SelfParam string
	// OverrideRoles may bypass the SelfParam check.
	OverrideRoles []domain.Role
}

func Public() Access { return Access{} }

func Authenticated() Access { return Access{Authenticated: true} }

func RequireRole(roles ...domain.Role) Access {
	return Access{Authenticated: true, Roles: roles}
}

// Self restricts a route to the caller named by param, unless the caller
// holds one of override.
func Self(param string, override ...domain.Role) Access {
	return Access{Authenticated: true, SelfParam: param, OverrideRoles: override}
}

func (a Access) needsRole() bool {
	return len(a.Roles) > 0 || len(a.OverrideRoles) > 0
}

func (a Access) selfValue(ctx *fiber.Ctx) string {
	if name, ok := strings.CutPrefix(a.SelfParam, "?"); ok {
		return ctx.Query(name)
	}
	return ctx.Params(a.SelfParam)
}

// Guard enforces access in order: token, role, self. The role is read from
// the store on every request.
func Guard(auth helper.Auth, roles RoleResolver, access Access) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !access.Authenticated {
			return ctx.Next()
		}

		user, err := auth.VerifyToken(ctx.Get(fiber.HeaderAuthorization))
		if err != nil {
			metrics.RecordAccessDenied("token")
			slog.Debug("token rejected", slog.Any("error", err), slog.String("path", ctx.Path()))
			return domain.ErrUnauthorized
		}
		helper.SetCurrentUser(ctx, user)

		role := domain.RoleNone
		if access.needsRole() {
			role, err = roles.ResolveRole(ctx.UserContext(), user.Email)
			if err != nil {
				return err
			}
			ctx.Locals(localsRole, role)
		}

		if len(access.Roles) > 0 && !role.In(access.Roles...) {
			metrics.RecordAccessDenied("role")
			return domain.ErrForbidden
		}

		if access.SelfParam != "" && !role.In(access.OverrideRoles...) {
			if !helper.SameEmail(access.selfValue(ctx), user.Email) {
				metrics.RecordAccessDenied("self")
				return domain.ErrForbidden
			}
		}

		return ctx.Next()
	}
}

// CallerRole returns the role the guard resolved, looking it up when the
// route's descriptor did not need it.
func CallerRole(ctx *fiber.Ctx, roles RoleResolver) (domain.Role, error) {
	if role, ok := ctx.Locals(localsRole).(domain.Role); ok {
		return role, nil
	}
	user, err := helper.GetCurrentUser(ctx)
	if err != nil {
		return domain.RoleNone, err
	}
	role, err := roles.ResolveRole(ctx.UserContext(), user.Email)
	if err != nil {
		return domain.RoleNone, err
	}
	ctx.Locals(localsRole, role)
	return role, nil
}
