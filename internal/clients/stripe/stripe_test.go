package stripe

import (
	"context"
	"errors"
	"net/http"
	"testing"

	stripego "github.com/stripe/stripe-go/v81"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
)

func TestNew_EmptyKey(t *testing.T) {
	assert.Nil(t, New(""))
	assert.NotNil(t, New("sk_test_123"))
}

func TestCreatePaymentIntent_NilClient(t *testing.T) {
	var c *Client
	_, err := c.CreatePaymentIntent(context.Background(), 100, "usd")

	var perr *domain.PaymentProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusServiceUnavailable, perr.StatusCode)
}

func TestProviderError(t *testing.T) {
	err := providerError(&stripego.Error{HTTPStatusCode: 402, Msg: "Your card was declined."})
	var perr *domain.PaymentProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 402, perr.StatusCode)
	assert.Equal(t, "Your card was declined.", perr.Message)

	err = providerError(errors.New("dial tcp: timeout"))
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusBadGateway, perr.StatusCode)
}
