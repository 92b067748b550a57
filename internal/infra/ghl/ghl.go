// Package ghl builds GoHighLevel payment links. GHL reports the outcome
// through the payment webhook with the payer's email.
package ghl

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"pridenomad-hub/internal/domain/billing"
	"pridenomad-hub/internal/domain/plans"
)

type Config struct {
	PaymentURL  string
	LocationID  string
	FormID      string
	RedirectURL string
}

type Gateway struct {
	cfg Config
}

func New(cfg Config) *Gateway {
	return &Gateway{cfg: cfg}
}

// CheckoutURL returns the hosted payment page for claim. The claim id is
// passed as order_id so payments can be traced back.
func (g *Gateway) CheckoutURL(_ context.Context, claim *billing.PendingClaim, plan plans.Plan) (string, error) {
	u, err := url.Parse(g.cfg.PaymentURL)
	if err != nil {
		return "", fmt.Errorf("parse GHL payment url: %w", err)
	}

	q := u.Query()
	q.Set("location", g.cfg.LocationID)
	q.Set("form", g.cfg.FormID)
	q.Set("email", claim.UserEmail)
	q.Set("amount", strconv.FormatFloat(plan.Price(claim.IsYearly), 'f', 2, 64))
	q.Set("order_id", claim.ID)
	q.Set("plan", plan.ID)
	q.Set("redirect", g.cfg.RedirectURL)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
