package services

import (
	"context"
	"log/slog"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/SundayYogurt/scholarship_service/internal/helper"
	"github.com/SundayYogurt/scholarship_service/internal/interfaces"
	"github.com/SundayYogurt/scholarship_service/internal/repository"
)

// Caller is the verified identity of a request together with its role.
type Caller struct {
	Email string
	Role  domain.Role
}

// Staff reports whether the caller may act on other users' records.
func (c Caller) Staff() bool {
	return c.Role.In(domain.RoleAdmin, domain.RoleModerator)
}

// ownerScope is the owner restriction for writes: none for staff.
func (c Caller) ownerScope() string {
	if c.Staff() {
		return ""
	}
	return helper.NormalizeEmail(c.Email)
}

type SubmissionService interface {
	List(ctx context.Context, email string) ([]domain.Submission, error)
	Get(ctx context.Context, caller Caller, id string) (*domain.Submission, error)
	Create(ctx context.Context, caller Caller, s domain.Submission) (domain.InsertResult, error)
	SetStatus(ctx context.Context, id string, status domain.SubmissionStatus) (domain.UpdateResult, error)
	Delete(ctx context.Context, caller Caller, id string) (domain.DeleteResult, error)
	DeleteMany(ctx context.Context, caller Caller, ids []string) (domain.DeleteResult, error)
}

type submissionService struct {
	repo   repository.SubmissionRepository
	events eventPublisher
}

func NewSubmissionService(repo repository.SubmissionRepository, producer interfaces.ProducerHandler, logger *slog.Logger) SubmissionService {
	return &submissionService{repo: repo, events: newEventPublisher(producer, logger)}
}

func (s *submissionService) List(ctx context.Context, email string) ([]domain.Submission, error) {
	return s.repo.List(ctx, helper.NormalizeEmail(email))
}

func (s *submissionService) Get(ctx context.Context, caller Caller, id string) (*domain.Submission, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.Staff() && !helper.SameEmail(caller.Email, sub.Email) {
		return nil, domain.ErrForbidden
	}
	return sub, nil
}

func (s *submissionService) Create(ctx context.Context, caller Caller, sub domain.Submission) (domain.InsertResult, error) {
	sub.ID = ""
	sub.Email = helper.NormalizeEmail(caller.Email)
	sub.Status = domain.SubmissionPending

	res, err := s.repo.Create(ctx, &sub)
	if err != nil {
		return res, err
	}
	s.events.publish(ctx, domain.EventSubmissionCreated, sub.Email, map[string]string{
		"submissionId":  sub.ID,
		"email":         sub.Email,
		"scholarshipId": sub.ScholarshipID,
	})
	return res, nil
}

func (s *submissionService) SetStatus(ctx context.Context, id string, status domain.SubmissionStatus) (domain.UpdateResult, error) {
	if !status.Valid() {
		return domain.UpdateResult{}, &domain.ValidationError{Field: "status", Message: "unknown status"}
	}
	return s.repo.SetStatus(ctx, id, status)
}

func (s *submissionService) Delete(ctx context.Context, caller Caller, id string) (domain.DeleteResult, error) {
	return s.repo.Delete(ctx, id, caller.ownerScope())
}

func (s *submissionService) DeleteMany(ctx context.Context, caller Caller, ids []string) (domain.DeleteResult, error) {
	return s.repo.DeleteMany(ctx, ids, caller.ownerScope())
}
