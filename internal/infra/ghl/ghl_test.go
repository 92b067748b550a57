package ghl

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pridenomad-hub/internal/domain/billing"
	"pridenomad-hub/internal/domain/plans"
)

func TestCheckoutURL(t *testing.T) {
	g := New(Config{
		PaymentURL:  "https://link.pridenomad.com/payment?ref=hub",
		LocationID:  "loc-1",
		FormID:      "form-9",
		RedirectURL: "https://pridenomad.com/payment-success",
	})
	plan, ok := plans.Lookup("premium")
	require.True(t, ok)

	tests := []struct {
		name   string
		yearly bool
		amount string
	}{
		{"monthly", false, "149.00"},
		{"yearly", true, "1490.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim := &billing.PendingClaim{ID: "claim-1", UserEmail: "owner+test@example.com", IsYearly: tt.yearly}

			raw, err := g.CheckoutURL(context.Background(), claim, plan)
			require.NoError(t, err)

			u, err := url.Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, "link.pridenomad.com", u.Host)

			q := u.Query()
			assert.Equal(t, "hub", q.Get("ref"))
			assert.Equal(t, "loc-1", q.Get("location"))
			assert.Equal(t, "form-9", q.Get("form"))
			assert.Equal(t, "owner+test@example.com", q.Get("email"))
			assert.Equal(t, tt.amount, q.Get("amount"))
			assert.Equal(t, "claim-1", q.Get("order_id"))
			assert.Equal(t, "premium", q.Get("plan"))
			assert.Equal(t, "https://pridenomad.com/payment-success", q.Get("redirect"))
		})
	}
}

func TestCheckoutURL_BadBase(t *testing.T) {
	g := New(Config{PaymentURL: "://broken"})
	_, err := g.CheckoutURL(context.Background(), &billing.PendingClaim{}, plans.Plan{})
	assert.Error(t, err)
}
