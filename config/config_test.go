package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("DATABASE_URL", "sqlite://:memory:")
	t.Setenv("ACCESS_TOKEN_SECRET", "secret")
}

func TestFromEnviron_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := FromEnviron()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "scholarshipDb", cfg.DatabaseName)
	assert.Equal(t, "usd", cfg.PaymentCurrency)
	assert.Equal(t, "0.0.0.0:5000", cfg.Addr())
	assert.False(t, cfg.IsProd())

	kind, err := cfg.Store()
	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, kind)
	assert.Equal(t, ":memory:", cfg.SQLitePath())
}

func TestStoreKind(t *testing.T) {
	tests := []struct {
		url     string
		want    StoreKind
		wantErr bool
	}{
		{"mongodb://localhost:27017", StoreMongo, false},
		{"mongodb+srv://user:pw@cluster.example.net", StoreMongo, false},
		{"postgres://u:p@localhost:5432/db", StorePostgres, false},
		{"postgresql://localhost/db", StorePostgres, false},
		{"sqlite://data/app.db", StoreSQLite, false},
		{"mysql://localhost/db", "", true},
		{"localhost:27017", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := (&Config{DatabaseURL: tt.url}).Store()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromEnviron_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad port", "PORT", "70000"},
		{"bad environment", "ENVIRONMENT", "qa"},
		{"unsupported scheme", "DATABASE_URL", "redis://localhost"},
		{"blank secret", "ACCESS_TOKEN_SECRET", "   "},
		{"negative rate", "RATE_LIMIT_RPS", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := FromEnviron()
			assert.Error(t, err)
		})
	}
}
