package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "Dev")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 14, cfg.RecurringHorizonDays)
	assert.False(t, cfg.PaymentsEnabled())
	assert.False(t, cfg.CloudinaryEnabled())
}

func TestLoad_ProdRejectsDefaultSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ProdRequiresWebhookSecretWithPayments(t *testing.T) {
	t.Setenv("APP_ENV", "release")
	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_live_x")
	t.Setenv("RAZORPAY_KEY_SECRET", "secret")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("RAZORPAY_WEBHOOK_SECRET", "whsec")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.PaymentsEnabled())
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"JWT_TTL":                "0s",
		"LOG_FORMAT":             "xml",
		"RECURRING_HORIZON_DAYS": "0",
		"RATE_LIMIT_BURST":       "0",
		"CACHE_MAX_ENTRIES":      "0",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_TrustedProxies(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", "10.0.0.1,10.0.1.0/24")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "10.0.1.0/24"}, cfg.TrustedProxies)
}

func TestLoad_CORSOriginsList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://fitzone.in,https://admin.fitzone.in")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://fitzone.in", "https://admin.fitzone.in"}, cfg.CORSAllowedOrigins)
}
