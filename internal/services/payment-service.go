package services

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/SundayYogurt/scholarship_service/internal/helper"
	"github.com/SundayYogurt/scholarship_service/internal/interfaces"
	"github.com/SundayYogurt/scholarship_service/internal/metrics"
	"github.com/SundayYogurt/scholarship_service/internal/repository"
)

var ErrPaymentsDisabled = errors.New("payment provider is not configured")

type PaymentService interface {
	CreateIntent(ctx context.Context, price float64) (string, error)
	RecordPayment(ctx context.Context, caller Caller, p domain.Payment) (domain.PaymentOutcome, error)
	List(ctx context.Context, email string) ([]domain.Payment, error)
}

type paymentService struct {
	repo     repository.PaymentRepository
	provider interfaces.PaymentProvider
	currency string
	events   eventPublisher
	logger   *slog.Logger
}

func NewPaymentService(
	repo repository.PaymentRepository,
	provider interfaces.PaymentProvider,
	currency string,
	producer interfaces.ProducerHandler,
	logger *slog.Logger,
) PaymentService {
	if currency == "" {
		currency = "usd"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &paymentService{
		repo:     repo,
		provider: provider,
		currency: strings.ToLower(currency),
		events:   newEventPublisher(producer, logger),
		logger:   logger,
	}
}

// MinorUnits converts a decimal price to the smallest currency unit,
// truncating sub-cent digits. The epsilon absorbs binary rounding such as
// 19.99*100 = 1998.9999999999998.
func MinorUnits(price float64) int64 {
	return int64(math.Floor(price*100 + 1e-9))
}

func (s *paymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return "", &domain.ValidationError{Field: "price", Message: "must be greater than 0"}
	}
	amount := MinorUnits(price)
	if amount < 1 {
		return "", &domain.ValidationError{Field: "price", Message: "must be at least 0.01"}
	}
	if s.provider == nil {
		return "", ErrPaymentsDisabled
	}

	intent, err := s.provider.CreatePaymentIntent(ctx, amount, s.currency)
	metrics.RecordPaymentIntent(err)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}

func (s *paymentService) RecordPayment(ctx context.Context, caller Caller, p domain.Payment) (domain.PaymentOutcome, error) {
	payer := helper.NormalizeEmail(caller.Email)
	if p.Email != "" && !helper.SameEmail(p.Email, payer) && !caller.Staff() {
		return domain.PaymentOutcome{}, domain.ErrForbidden
	}
	if p.Email == "" || !caller.Staff() {
		p.Email = payer
	}
	p.Email = helper.NormalizeEmail(p.Email)
	p.ID = ""

	out, err := s.repo.Record(ctx, &p)
	metrics.RecordPayment(err, out.DeleteResult.DeletedCount)
	if err != nil {
		return domain.PaymentOutcome{}, err
	}

	s.logger.Info("payment recorded",
		slog.String("paymentId", p.ID),
		slog.Int("submissions", len(p.SubmitIDs)),
		slog.Int64("released", out.DeleteResult.DeletedCount),
	)
	s.events.publish(ctx, domain.EventPaymentRecorded, p.Email, domain.PaymentRecordedEvent{
		PaymentID:     p.ID,
		Email:         p.Email,
		TransactionID: p.TransactionID,
		Price:         p.Price,
		SubmitIDs:     p.SubmitIDs,
		Released:      out.DeleteResult.DeletedCount,
	})
	return out, nil
}

func (s *paymentService) List(ctx context.Context, email string) ([]domain.Payment, error) {
	return s.repo.List(ctx, helper.NormalizeEmail(email))
}
