package dto

import "github.com/SundayYogurt/scholarship_service/internal/domain"

type PaymentIntentRequest struct {
	Price float64 `json:"price" validate:"gt=0,lte=1000000" example:"25.5"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type PaymentCreateRequest struct {
	Email         string   `json:"email,omitempty" validate:"omitempty,email"`
	TransactionID string   `json:"transactionId" validate:"required,max=255" example:"pi_3PqXyZ"`
	Price         float64  `json:"price" validate:"gt=0" example:"25.5"`
	Date          string   `json:"date,omitempty" validate:"max=64"`
	SubmitIDs     []string `json:"submitIds" validate:"required,min=1,max=500,dive,required"`
	Status        string   `json:"status,omitempty" validate:"max=20" example:"succeeded"`
}

func (r PaymentCreateRequest) ToDomain(email string) domain.Payment {
	status := r.Status
	if status == "" {
		status = "succeeded"
	}
	ids := make([]string, len(r.SubmitIDs))
	copy(ids, r.SubmitIDs)
	return domain.Payment{
		Email:         email,
		TransactionID: r.TransactionID,
		Price:         r.Price,
		Date:          r.Date,
		SubmitIDs:     ids,
		Status:        status,
	}
}
