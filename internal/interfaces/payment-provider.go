package interfaces

import "context"

// PaymentIntent is what a client needs to confirm a card payment.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

type PaymentProvider interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (PaymentIntent, error)
}
