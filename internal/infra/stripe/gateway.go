// Package stripe is the Stripe Checkout payment provider.
package stripe

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/client"

	"pridenomad-hub/internal/domain/billing"
	"pridenomad-hub/internal/domain/plans"
)

type Config struct {
	SecretKey  string
	PriceIDs   map[string]string // "<plan>:<monthly|yearly>"
	SuccessURL string
	CancelURL  string
	Currency   string
}

// sessionCreator is the slice of the Stripe API the gateway needs.
type sessionCreator interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type Gateway struct {
	cfg      Config
	sessions sessionCreator
}

func New(cfg Config) *Gateway {
	sc := &client.API{}
	sc.Init(cfg.SecretKey, nil)
	if cfg.Currency == "" {
		cfg.Currency = string(stripe.CurrencyUSD)
	}
	return &Gateway{cfg: cfg, sessions: sc.CheckoutSessions}
}

// CheckoutURL opens a one-off Checkout session for the claim. Configured
// price ids win; otherwise the catalog price is sent inline.
func (g *Gateway) CheckoutURL(ctx context.Context, claim *billing.PendingClaim, plan plans.Plan) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(g.cfg.SuccessURL),
		CancelURL:         stripe.String(g.cfg.CancelURL),
		CustomerEmail:     stripe.String(claim.UserEmail),
		ClientReferenceID: stripe.String(claim.ID),
		LineItems:         []*stripe.CheckoutSessionLineItemParams{g.lineItem(claim, plan)},
		Metadata: map[string]string{
			"claim_id":   claim.ID,
			"plan":       plan.ID,
			"user_email": claim.UserEmail,
		},
	}
	params.Context = ctx

	s, err := g.sessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return s.URL, nil
}

func (g *Gateway) lineItem(claim *billing.PendingClaim, plan plans.Plan) *stripe.CheckoutSessionLineItemParams {
	period := "monthly"
	if claim.IsYearly {
		period = "yearly"
	}
	if priceID := g.cfg.PriceIDs[plan.ID+":"+period]; priceID != "" {
		return &stripe.CheckoutSessionLineItemParams{Price: stripe.String(priceID), Quantity: stripe.Int64(1)}
	}

	return &stripe.CheckoutSessionLineItemParams{
		Quantity: stripe.Int64(1),
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(g.cfg.Currency),
			UnitAmount: stripe.Int64(int64(math.Round(plan.Price(claim.IsYearly) * 100))),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(fmt.Sprintf("PrideNomad %s (%s)", plan.Name, period)),
			},
		},
	}
}
