package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
)

type sample struct {
	Email string   `json:"email" validate:"required,email"`
	Price float64  `json:"price" validate:"gt=0"`
	IDs   []string `json:"submitIds" validate:"required,min=1"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		in        sample
		wantField string
	}{
		{"valid", sample{Email: "a@b.co", Price: 1, IDs: []string{"x"}}, ""},
		{"missing email", sample{Price: 1, IDs: []string{"x"}}, "email"},
		{"bad email", sample{Email: "nope", Price: 1, IDs: []string{"x"}}, "email"},
		{"zero price", sample{Email: "a@b.co", IDs: []string{"x"}}, "price"},
		{"empty ids", sample{Email: "a@b.co", Price: 1, IDs: []string{}}, "submitIds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.in)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestEmailHelpers(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
	assert.True(t, SameEmail("ALICE@example.com", "alice@example.com"))
	assert.False(t, SameEmail("", ""))
	assert.False(t, SameEmail("a@example.com", "b@example.com"))
}
