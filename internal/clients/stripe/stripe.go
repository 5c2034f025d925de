package stripe

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/SundayYogurt/scholarship_service/internal/interfaces"
	stripego "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

var _ interfaces.PaymentProvider = (*Client)(nil)

type Client struct {
	api *client.API
}

// New returns nil for an empty key so the payment routes answer 503.
func New(secretKey string) *Client {
	if secretKey == "" {
		return nil
	}
	httpClient := &http.Client{
		Timeout: 20 * time.Second,
	}
	return &Client{api: client.New(secretKey, stripego.NewBackends(httpClient))}
}

// CreatePaymentIntent asks for a card intent of amount minor units.
func (c *Client) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (interfaces.PaymentIntent, error) {
	if c == nil || c.api == nil {
		return interfaces.PaymentIntent{}, &domain.PaymentProviderError{StatusCode: http.StatusServiceUnavailable, Message: "missing stripe secret key"}
	}

	params := &stripego.PaymentIntentParams{
		Amount:             stripego.Int64(amount),
		Currency:           stripego.String(currency),
		PaymentMethodTypes: stripego.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return interfaces.PaymentIntent{}, providerError(err)
	}
	return interfaces.PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func providerError(err error) error {
	var se *stripego.Error
	if errors.As(err, &se) {
		msg := se.Msg
		if msg == "" {
			msg = string(se.Code)
		}
		return &domain.PaymentProviderError{StatusCode: se.HTTPStatusCode, Message: msg, Err: err}
	}
	return &domain.PaymentProviderError{StatusCode: http.StatusBadGateway, Message: "request failed", Err: err}
}
