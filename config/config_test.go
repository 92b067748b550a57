package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_URL", "postgres://localhost/hub")
	t.Setenv("PAYMENT_PROVIDER", "ghl")
	t.Setenv("GHL_LOCATION_ID", "loc")
	t.Setenv("GHL_FORM_ID", "form")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 72*time.Hour, cfg.ClaimTTL)
	assert.Equal(t, time.Minute, cfg.AdminRefresh)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.False(t, cfg.GoogleEnabled())
}

func TestLoad_MissingSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoad_UnsupportedDriver(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_DRIVER", "mongo")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_DRIVER")
}

func TestLoad_ListsAndPairs(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ADMIN_EMAILS", " a@x.com, ,b@x.com")
	t.Setenv("STRIPE_PRICE_IDS", "premium:monthly=price_1, elite:yearly=price_2,broken")
	t.Setenv("CLAIM_TTL", "24h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, cfg.AdminEmails)
	assert.Equal(t, map[string]string{"premium:monthly": "price_1", "elite:yearly": "price_2"}, cfg.Stripe.PriceIDs)
	assert.Equal(t, 24*time.Hour, cfg.ClaimTTL)
}

func TestLoad_BadDuration(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CLAIM_TTL", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "CLAIM_TTL")
}
