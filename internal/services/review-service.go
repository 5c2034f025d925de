package services

import (
	"context"
	"errors"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/SundayYogurt/scholarship_service/internal/helper"
	"github.com/SundayYogurt/scholarship_service/internal/repository"
)

type ReviewService interface {
	List(ctx context.Context, scholarshipID string) ([]domain.Review, error)
	Get(ctx context.Context, id string) (*domain.Review, error)
	Create(ctx context.Context, caller Caller, rv domain.Review) (domain.InsertResult, error)
	// Update is reserved to the review's author.
	Update(ctx context.Context, caller Caller, id string, fields domain.Fields) (domain.UpdateResult, error)
	Delete(ctx context.Context, caller Caller, id string) (domain.DeleteResult, error)
}

type reviewService struct {
	repo repository.ReviewRepository
}

func NewReviewService(repo repository.ReviewRepository) ReviewService {
	return &reviewService{repo: repo}
}

func (s *reviewService) List(ctx context.Context, scholarshipID string) ([]domain.Review, error) {
	return s.repo.List(ctx, scholarshipID)
}

func (s *reviewService) Get(ctx context.Context, id string) (*domain.Review, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *reviewService) Create(ctx context.Context, caller Caller, rv domain.Review) (domain.InsertResult, error) {
	rv.ID = ""
	rv.Email = helper.NormalizeEmail(caller.Email)
	return s.repo.Create(ctx, &rv)
}

func (s *reviewService) Update(ctx context.Context, caller Caller, id string, fields domain.Fields) (domain.UpdateResult, error) {
	fields = fields.Only(domain.ReviewEditableFields)
	if len(fields) == 0 {
		return domain.UpdateResult{}, &domain.ValidationError{Message: "no editable fields in request"}
	}

	current, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.UpdateResult{Acknowledged: true}, nil
	}
	if err != nil {
		return domain.UpdateResult{}, err
	}
	if !helper.SameEmail(current.Email, caller.Email) {
		return domain.UpdateResult{}, domain.ErrForbidden
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *reviewService) Delete(ctx context.Context, caller Caller, id string) (domain.DeleteResult, error) {
	return s.repo.Delete(ctx, id, caller.ownerScope())
}
