package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	List(ctx context.Context, email string) ([]domain.Payment, error)
	// Record stores the payment and releases the submissions it covers in
	// one transaction. Covered submissions owned by someone else abort it
	// with domain.ErrForbidden.
	Record(ctx context.Context, p *domain.Payment) (domain.PaymentOutcome, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) List(ctx context.Context, email string) ([]domain.Payment, error) {
	out := []domain.Payment{}
	tx := r.db.WithContext(ctx).Order("created_at ASC")
	if email != "" {
		tx = tx.Where("email = ?", email)
	}
	if err := tx.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return out, nil
}

func (r *paymentRepository) Record(ctx context.Context, p *domain.Payment) (domain.PaymentOutcome, error) {
	if p == nil {
		return domain.PaymentOutcome{}, errors.New("nil payment")
	}
	ids, err := parseIDs(p.SubmitIDs)
	if err != nil {
		return domain.PaymentOutcome{}, err
	}
	p.SubmitIDs = ids
	if p.ID == "" {
		p.ID = newID()
	}

	var released int64
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(ids) > 0 {
			var foreign int64
			err := tx.Model(&domain.Submission{}).
				Where("id IN ? AND email <> ?", ids, p.Email).
				Count(&foreign).Error
			if err != nil {
				return err
			}
			if foreign > 0 {
				return domain.ErrForbidden
			}
		}

		if err := tx.Create(p).Error; err != nil {
			return err
		}

		if len(ids) == 0 {
			return nil
		}
		res := tx.Where("id IN ?", ids).Delete(&domain.Submission{})
		released = res.RowsAffected
		return res.Error
	})
	if errors.Is(err, domain.ErrForbidden) {
		return domain.PaymentOutcome{}, err
	}
	if err != nil {
		return domain.PaymentOutcome{}, fmt.Errorf("record payment: %w", err)
	}

	return domain.PaymentOutcome{
		PaymentResult: domain.Inserted(p.ID),
		DeleteResult:  deleted(released),
	}, nil
}
