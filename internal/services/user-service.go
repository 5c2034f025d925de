package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/SundayYogurt/scholarship_service/internal/helper"
	"github.com/SundayYogurt/scholarship_service/internal/interfaces"
	"github.com/SundayYogurt/scholarship_service/internal/repository"
)

type UserService interface {
	// ResolveRole reads the caller's role fresh from the store. Unknown
	// emails hold RoleNone.
	ResolveRole(ctx context.Context, email string) (domain.Role, error)

	List(ctx context.Context) ([]domain.User, error)
	// CreateIfAbsent inserts user unless the email is registered already,
	// in which case created is false and nothing is written.
	CreateIfAbsent(ctx context.Context, user domain.User) (res domain.InsertResult, created bool, err error)
	Promote(ctx context.Context, id string, role domain.Role) (domain.UpdateResult, error)
	Delete(ctx context.Context, id string) (domain.DeleteResult, error)
}

type userService struct {
	repo   repository.UserRepository
	events eventPublisher
}

func NewUserService(repo repository.UserRepository, producer interfaces.ProducerHandler, logger *slog.Logger) UserService {
	return &userService{
		repo:   repo,
		events: newEventPublisher(producer, logger),
	}
}

func (u *userService) ResolveRole(ctx context.Context, email string) (domain.Role, error) {
	email = helper.NormalizeEmail(email)
	if email == "" {
		return domain.RoleNone, nil
	}
	user, err := u.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.RoleNone, nil
	}
	if err != nil {
		return domain.RoleNone, err
	}
	return user.EffectiveRole(), nil
}

func (u *userService) List(ctx context.Context) ([]domain.User, error) {
	return u.repo.List(ctx)
}

func (u *userService) CreateIfAbsent(ctx context.Context, user domain.User) (domain.InsertResult, bool, error) {
	user.Email = helper.NormalizeEmail(user.Email)
	if user.Email == "" {
		return domain.InsertResult{}, false, &domain.ValidationError{Field: "email", Message: "is required"}
	}
	// role is granted only through promotion
	user.ID = ""
	user.Role = domain.RoleNone

	existing, err := u.repo.FindByEmail(ctx, user.Email)
	if err == nil && existing != nil {
		return domain.InsertResult{}, false, nil
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.InsertResult{}, false, err
	}

	res, err := u.repo.Create(ctx, &user)
	if errors.Is(err, domain.ErrUserExists) {
		// lost a race with a concurrent sign-in
		return domain.InsertResult{}, false, nil
	}
	if err != nil {
		return domain.InsertResult{}, false, err
	}

	u.events.publish(ctx, domain.EventUserCreated, user.Email, map[string]string{
		"userId": user.ID,
		"email":  user.Email,
		"name":   user.Name,
	})
	return res, true, nil
}

func (u *userService) Promote(ctx context.Context, id string, role domain.Role) (domain.UpdateResult, error) {
	if !role.In(domain.RoleAdmin, domain.RoleModerator) {
		return domain.UpdateResult{}, &domain.ValidationError{Field: "role", Message: "must be admin or moderator"}
	}
	return u.repo.SetRole(ctx, id, role)
}

func (u *userService) Delete(ctx context.Context, id string) (domain.DeleteResult, error) {
	return u.repo.Delete(ctx, id)
}
