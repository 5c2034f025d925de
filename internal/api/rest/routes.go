package rest

import (
	"github.com/SundayYogurt/scholarship_service/internal/api/rest/handlers"
	"github.com/SundayYogurt/scholarship_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/SundayYogurt/scholarship_service/internal/helper"
	"github.com/gofiber/fiber/v2"
)

// Route binds a method and path to a handler behind an access descriptor.
type Route struct {
	Method  string
	Path    string
	Access  middleware.Access
	Handler fiber.Handler
}

type Handlers struct {
	Health      *handlers.HealthHandler
	User        *handlers.UserHandler
	Scholarship *handlers.ScholarshipHandler
	Submission  *handlers.SubmissionHandler
	Payment     *handlers.PaymentHandler
	Review      *handlers.ReviewHandler
	Upload      *handlers.UploadHandler
}

var staff = []domain.Role{domain.RoleAdmin, domain.RoleModerator}

// Routes is the whole API surface.
func Routes(h Handlers) []Route {
	public := middleware.Public()
	auth := middleware.Authenticated()
	admin := middleware.RequireRole(domain.RoleAdmin)
	adminOrModerator := middleware.RequireRole(staff...)

	return []Route{
		{fiber.MethodGet, "/", public, h.Health.Root},
		{fiber.MethodGet, "/health/ready", public, h.Health.Ready},

		{fiber.MethodPost, "/jwt", public, h.User.IssueToken},

		{fiber.MethodGet, "/users", admin, h.User.List},
		{fiber.MethodGet, "/users/admin/:email", middleware.Self("email"), h.User.IsAdmin},
		{fiber.MethodGet, "/users/moderator/:email", middleware.Self("email"), h.User.IsModerator},
		{fiber.MethodGet, "/users/role/:email", middleware.Self("email"), h.User.Role},
		{fiber.MethodPost, "/users", public, h.User.Create},
		{fiber.MethodPatch, "/users/admin/:id", admin, h.User.PromoteAdmin},
		{fiber.MethodPatch, "/users/moderator/:id", adminOrModerator, h.User.PromoteModerator},
		{fiber.MethodDelete, "/users/:id", admin, h.User.Delete},

		{fiber.MethodGet, "/topScholarship", public, h.Scholarship.List},
		{fiber.MethodGet, "/topScholarshipCount", public, h.Scholarship.Count},
		{fiber.MethodGet, "/topScholarship/:id", public, h.Scholarship.Detail},
		{fiber.MethodPatch, "/topScholarship/:id", adminOrModerator, h.Scholarship.Update},
		{fiber.MethodDelete, "/topScholarship/:id", admin, h.Scholarship.Delete},
		{fiber.MethodPost, "/addScholarship", admin, h.Scholarship.Create},
		{fiber.MethodGet, "/addScholarship", public, h.Scholarship.All},

		{fiber.MethodGet, "/submits", middleware.Self("?email", staff...), h.Submission.List},
		{fiber.MethodGet, "/submits/:id", auth, h.Submission.Get},
		{fiber.MethodPost, "/submits", auth, h.Submission.Create},
		{fiber.MethodPatch, "/submits/:id/status", adminOrModerator, h.Submission.SetStatus},
		{fiber.MethodDelete, "/submits/:id", auth, h.Submission.Delete},
		{fiber.MethodDelete, "/submits", auth, h.Submission.DeleteMany},

		{fiber.MethodPost, "/create-payment-intent", auth, h.Payment.CreateIntent},
		{fiber.MethodPost, "/payments", auth, h.Payment.Record},
		{fiber.MethodGet, "/payments", middleware.Self("?email", domain.RoleAdmin), h.Payment.List},

		{fiber.MethodPost, "/addReview", auth, h.Review.Create},
		{fiber.MethodGet, "/addReview", public, h.Review.List},
		{fiber.MethodGet, "/addReview/:id", public, h.Review.Get},
		{fiber.MethodPatch, "/addReview/:id", auth, h.Review.Update},
		{fiber.MethodDelete, "/addReview/:id", auth, h.Review.Delete},

		{fiber.MethodPost, "/uploads/image", auth, h.Upload.UploadImage},
	}
}

// Register mounts every route with its guard in front.
func Register(router fiber.Router, auth helper.Auth, roles middleware.RoleResolver, routes []Route) {
	for _, r := range routes {
		router.Add(r.Method, r.Path, middleware.Guard(auth, roles, r.Access), r.Handler)
	}
}
