package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"gorm.io/gorm"
)

// Owner arguments restrict a write to rows owned by that email; an empty
// owner means unrestricted.
type SubmissionRepository interface {
	List(ctx context.Context, email string) ([]domain.Submission, error)
	FindByID(ctx context.Context, id string) (*domain.Submission, error)
	Create(ctx context.Context, s *domain.Submission) (domain.InsertResult, error)
	SetStatus(ctx context.Context, id string, status domain.SubmissionStatus) (domain.UpdateResult, error)
	Delete(ctx context.Context, id, owner string) (domain.DeleteResult, error)
	DeleteMany(ctx context.Context, ids []string, owner string) (domain.DeleteResult, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

// List returns the submissions of email, or every submission when email is empty.
func (r *submissionRepository) List(ctx context.Context, email string) ([]domain.Submission, error) {
	out := []domain.Submission{}
	tx := r.db.WithContext(ctx).Order("created_at ASC")
	if email != "" {
		tx = tx.Where("email = ?", email)
	}
	if err := tx.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return out, nil
}

func (r *submissionRepository) FindByID(ctx context.Context, id string) (*domain.Submission, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	s := &domain.Submission{}
	err = r.db.WithContext(ctx).First(s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find submission: %w", err)
	}
	return s, nil
}

func (r *submissionRepository) Create(ctx context.Context, s *domain.Submission) (domain.InsertResult, error) {
	if s == nil {
		return domain.InsertResult{}, errors.New("nil submission")
	}
	if s.ID == "" {
		s.ID = newID()
	}
	if s.Status == "" {
		s.Status = domain.SubmissionPending
	}
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return domain.InsertResult{}, fmt.Errorf("create submission: %w", err)
	}
	return domain.Inserted(s.ID), nil
}

func (r *submissionRepository) SetStatus(ctx context.Context, id string, status domain.SubmissionStatus) (domain.UpdateResult, error) {
	id, err := parseID(id)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	return updateByID(ctx, r.db, &domain.Submission{}, id, map[string]any{"status": status})
}

func (r *submissionRepository) Delete(ctx context.Context, id, owner string) (domain.DeleteResult, error) {
	return r.DeleteMany(ctx, []string{id}, owner)
}

// DeleteMany removes the listed rows; ids that match nothing are ignored.
func (r *submissionRepository) DeleteMany(ctx context.Context, ids []string, owner string) (domain.DeleteResult, error) {
	parsed, err := parseIDs(ids)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	if len(parsed) == 0 {
		return deleted(0), nil
	}

	tx := r.db.WithContext(ctx).Where("id IN ?", parsed)
	if owner != "" {
		tx = tx.Where("email = ?", owner)
	}
	res := tx.Delete(&domain.Submission{})
	if res.Error != nil {
		return domain.DeleteResult{}, fmt.Errorf("delete submissions: %w", res.Error)
	}
	return deleted(res.RowsAffected), nil
}
