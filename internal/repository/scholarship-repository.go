package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"gorm.io/gorm"
)

type ScholarshipRepository interface {
	List(ctx context.Context, q domain.ListQuery) ([]domain.Scholarship, error)
	All(ctx context.Context) ([]domain.Scholarship, error)
	EstimatedCount(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id string, fields []string) (*domain.Scholarship, error)
	Create(ctx context.Context, s *domain.Scholarship) (domain.InsertResult, error)
	Update(ctx context.Context, id string, fields domain.Fields) (domain.UpdateResult, error)
	Delete(ctx context.Context, id string) (domain.DeleteResult, error)
}

type scholarshipRepository struct {
	db *gorm.DB
}

func NewScholarshipRepository(db *gorm.DB) ScholarshipRepository {
	return &scholarshipRepository{db: db}
}

func (r *scholarshipRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.Scholarship, error) {
	out := []domain.Scholarship{}
	tx := r.db.WithContext(ctx).Model(&domain.Scholarship{})
	if q.Search != "" {
		tx = tx.Where(`university_name_fold LIKE ? ESCAPE '\'`, containsPattern(q.Search))
	}
	err := tx.Order("created_at ASC").Order("id ASC").
		Offset(q.Offset()).
		Limit(q.Size).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list scholarships: %w", err)
	}
	return out, nil
}

func (r *scholarshipRepository) All(ctx context.Context) ([]domain.Scholarship, error) {
	out := []domain.Scholarship{}
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list scholarships: %w", err)
	}
	return out, nil
}

// EstimatedCount reads the planner statistics on postgres and falls back to
// an exact count elsewhere or before the table was ever analysed.
func (r *scholarshipRepository) EstimatedCount(ctx context.Context) (int64, error) {
	db := r.db.WithContext(ctx)
	if db.Dialector.Name() == "postgres" {
		var estimate int64 = -1
		err := db.Raw("SELECT reltuples::bigint FROM pg_class WHERE relname = ?", "scholarships").Scan(&estimate).Error
		if err == nil && estimate >= 0 {
			return estimate, nil
		}
	}

	var n int64
	if err := db.Model(&domain.Scholarship{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count scholarships: %w", err)
	}
	return n, nil
}

// FindByID loads only the named fields when fields is non-empty.
func (r *scholarshipRepository) FindByID(ctx context.Context, id string, fields []string) (*domain.Scholarship, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx)
	if len(fields) > 0 {
		cols, err := selectColumns(r.db, &domain.Scholarship{}, fields)
		if err != nil {
			return nil, err
		}
		tx = tx.Select(cols)
	}

	s := &domain.Scholarship{}
	err = tx.First(s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find scholarship: %w", err)
	}
	return s, nil
}

func (r *scholarshipRepository) Create(ctx context.Context, s *domain.Scholarship) (domain.InsertResult, error) {
	if s == nil {
		return domain.InsertResult{}, errors.New("nil scholarship")
	}
	if s.ID == "" {
		s.ID = newID()
	}
	s.UniversityNameFold = fold(s.UniversityName)
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return domain.InsertResult{}, fmt.Errorf("create scholarship: %w", err)
	}
	return domain.Inserted(s.ID), nil
}

func (r *scholarshipRepository) Update(ctx context.Context, id string, fields domain.Fields) (domain.UpdateResult, error) {
	id, err := parseID(id)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	cols, err := updateColumns(r.db, &domain.Scholarship{}, fields)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	if name, ok := cols["university_name"].(string); ok {
		cols["university_name_fold"] = fold(name)
	}
	return updateByID(ctx, r.db, &domain.Scholarship{}, id, cols)
}

func (r *scholarshipRepository) Delete(ctx context.Context, id string) (domain.DeleteResult, error) {
	id, err := parseID(id)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Scholarship{})
	if res.Error != nil {
		return domain.DeleteResult{}, fmt.Errorf("delete scholarship: %w", res.Error)
	}
	return deleted(res.RowsAffected), nil
}

// updateByID applies cols to one row. Matched comes from an existence check
// in the same transaction since drivers disagree on what RowsAffected counts.
func updateByID(ctx context.Context, db *gorm.DB, model any, id string, cols map[string]any) (domain.UpdateResult, error) {
	var matched, modified int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(model).Where("id = ?", id).Count(&matched).Error; err != nil {
			return err
		}
		if matched == 0 || len(cols) == 0 {
			return nil
		}
		res := tx.Model(model).Where("id = ?", id).Updates(cols)
		modified = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return domain.UpdateResult{}, fmt.Errorf("update %T: %w", model, err)
	}
	return updated(matched, modified), nil
}
