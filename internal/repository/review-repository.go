package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	List(ctx context.Context, scholarshipID string) ([]domain.Review, error)
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	Create(ctx context.Context, rv *domain.Review) (domain.InsertResult, error)
	Update(ctx context.Context, id string, fields domain.Fields) (domain.UpdateResult, error)
	Delete(ctx context.Context, id, owner string) (domain.DeleteResult, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) List(ctx context.Context, scholarshipID string) ([]domain.Review, error) {
	out := []domain.Review{}
	tx := r.db.WithContext(ctx).Order("created_at ASC")
	if scholarshipID != "" {
		tx = tx.Where("scholarship_id = ?", scholarshipID)
	}
	if err := tx.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return out, nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	rv := &domain.Review{}
	err = r.db.WithContext(ctx).First(rv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	return rv, nil
}

func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) (domain.InsertResult, error) {
	if rv == nil {
		return domain.InsertResult{}, errors.New("nil review")
	}
	if rv.ID == "" {
		rv.ID = newID()
	}
	if err := r.db.WithContext(ctx).Create(rv).Error; err != nil {
		return domain.InsertResult{}, fmt.Errorf("create review: %w", err)
	}
	return domain.Inserted(rv.ID), nil
}

func (r *reviewRepository) Update(ctx context.Context, id string, fields domain.Fields) (domain.UpdateResult, error) {
	id, err := parseID(id)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	cols, err := updateColumns(r.db, &domain.Review{}, fields)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	return updateByID(ctx, r.db, &domain.Review{}, id, cols)
}

func (r *reviewRepository) Delete(ctx context.Context, id, owner string) (domain.DeleteResult, error) {
	id, err := parseID(id)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	tx := r.db.WithContext(ctx).Where("id = ?", id)
	if owner != "" {
		tx = tx.Where("email = ?", owner)
	}
	res := tx.Delete(&domain.Review{})
	if res.Error != nil {
		return domain.DeleteResult{}, fmt.Errorf("delete review: %w", res.Error)
	}
	return deleted(res.RowsAffected), nil
}
