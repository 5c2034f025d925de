package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/SundayYogurt/scholarship_service/internal/helper"
	"github.com/SundayYogurt/scholarship_service/internal/repository"
)

type ScholarshipService interface {
	List(ctx context.Context, q domain.ListQuery) ([]domain.Scholarship, error)
	All(ctx context.Context) ([]domain.Scholarship, error)
	Count(ctx context.Context) (int64, error)
	Detail(ctx context.Context, id string) (*domain.Scholarship, error)
	Create(ctx context.Context, s domain.Scholarship, postedBy string) (domain.InsertResult, error)
	Update(ctx context.Context, id string, fields domain.Fields) (domain.UpdateResult, error)
	Delete(ctx context.Context, id string) (domain.DeleteResult, error)
}

type scholarshipService struct {
	repo repository.ScholarshipRepository
}

func NewScholarshipService(repo repository.ScholarshipRepository) ScholarshipService {
	return &scholarshipService{repo: repo}
}

// NormalizeListQuery applies the default page size and the upper bound.
// Negative values and pages past MaxPage are rejected.
func NormalizeListQuery(q domain.ListQuery) (domain.ListQuery, error) {
	if q.Page < 0 {
		return q, &domain.ValidationError{Field: "page", Message: "must be at least 0"}
	}
	if q.Page > domain.MaxPage {
		return q, &domain.ValidationError{Field: "page", Message: fmt.Sprintf("must be at most %d", domain.MaxPage)}
	}
	if q.Size < 0 {
		return q, &domain.ValidationError{Field: "size", Message: "must be at least 0"}
	}
	if q.Size == 0 {
		q.Size = domain.DefaultPageSize
	}
	if q.Size > domain.MaxPageSize {
		q.Size = domain.MaxPageSize
	}
	q.Search = strings.TrimSpace(q.Search)
	return q, nil
}

func (s *scholarshipService) List(ctx context.Context, q domain.ListQuery) ([]domain.Scholarship, error) {
	q, err := NormalizeListQuery(q)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, q)
}

func (s *scholarshipService) All(ctx context.Context) ([]domain.Scholarship, error) {
	return s.repo.All(ctx)
}

func (s *scholarshipService) Count(ctx context.Context) (int64, error) {
	return s.repo.EstimatedCount(ctx)
}

func (s *scholarshipService) Detail(ctx context.Context, id string) (*domain.Scholarship, error) {
	return s.repo.FindByID(ctx, id, domain.ScholarshipDetailFields)
}

func (s *scholarshipService) Create(ctx context.Context, sc domain.Scholarship, postedBy string) (domain.InsertResult, error) {
	sc.ID = ""
	sc.PostedUserEmail = helper.NormalizeEmail(postedBy)
	return s.repo.Create(ctx, &sc)
}

func (s *scholarshipService) Update(ctx context.Context, id string, fields domain.Fields) (domain.UpdateResult, error) {
	fields = fields.Only(domain.ScholarshipEditableFields)
	if len(fields) == 0 {
		return domain.UpdateResult{}, &domain.ValidationError{Message: "no editable fields in request"}
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *scholarshipService) Delete(ctx context.Context, id string) (domain.DeleteResult, error) {
	return s.repo.Delete(ctx, id)
}
