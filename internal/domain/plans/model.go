package plans

import "strings"

// Plan is a purchasable subscription; its ID equals the tier it unlocks.
type Plan struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Tier         Tier    `json:"tier"`
	MonthlyPrice float64 `json:"monthlyPrice"`
	YearlyPrice  float64 `json:"yearlyPrice"`
	Limits       Limits  `json:"limits"`
}

var catalog = []Plan{
	{ID: "essentials", Name: "Essentials", Tier: TierEssentials},
	{ID: "enhanced", Name: "Enhanced", Tier: TierEnhanced, MonthlyPrice: 49, YearlyPrice: 490},
	{ID: "premium", Name: "Premium", Tier: TierPremium, MonthlyPrice: 149, YearlyPrice: 1490},
	{ID: "elite", Name: "Elite", Tier: TierElite, MonthlyPrice: 399, YearlyPrice: 3990},
}

// Catalog returns all plans, cheapest first.
func Catalog() []Plan {
	out := make([]Plan, len(catalog))
	for i, p := range catalog {
		p.Limits = LimitsFor(p.Tier)
		out[i] = p
	}
	return out
}

// Lookup finds a plan by id. Unlike tiers, unknown plan ids are not normalised.
func Lookup(planID string) (Plan, bool) {
	id := strings.ToLower(strings.TrimSpace(planID))
	for _, p := range catalog {
		if p.ID == id {
			p.Limits = LimitsFor(p.Tier)
			return p, true
		}
	}
	return Plan{}, false
}

// Price is what the provider should charge for one billing period.
func (p Plan) Price(yearly bool) float64 {
	if yearly {
		return p.YearlyPrice
	}
	return p.MonthlyPrice
}

// IsFree plans skip the payment flow entirely.
func (p Plan) IsFree() bool {
	return p.MonthlyPrice == 0 && p.YearlyPrice == 0
}
