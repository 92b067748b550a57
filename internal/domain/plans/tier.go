package plans

import "strings"

type Tier string

// Tier constants (single source of truth)
const (
	TierEssentials Tier = "essentials"
	TierEnhanced   Tier = "enhanced"
	TierPremium    Tier = "premium"
	TierElite      Tier = "elite"
)

// Unlimited marks a numeric limit with no ceiling.
const Unlimited = -1

// Limits bound what a listing on a tier may carry.
type Limits struct {
	MaxCategories        int  `json:"maxCategories"`
	MaxImages            int  `json:"maxImages"`
	MaxDescriptionLength int  `json:"maxDescriptionLength"`
	AllowsVideo          bool `json:"allowsVideo"`
	AllowsSubCategories  bool `json:"allowsSubCategories"`
}

var tierLimits = map[Tier]Limits{
	TierEssentials: {MaxCategories: 1, MaxImages: 1, MaxDescriptionLength: 250},
	TierEnhanced:   {MaxCategories: 3, MaxImages: 5, MaxDescriptionLength: 500, AllowsSubCategories: true},
	TierPremium:    {MaxCategories: 5, MaxImages: 15, MaxDescriptionLength: 1000, AllowsVideo: true, AllowsSubCategories: true},
	TierElite:      {MaxCategories: Unlimited, MaxImages: 50, MaxDescriptionLength: 2500, AllowsVideo: true, AllowsSubCategories: true},
}

// Tiers lists tiers from lowest to highest.
func Tiers() []Tier {
	return []Tier{TierEssentials, TierEnhanced, TierPremium, TierElite}
}

// ParseTier accepts any casing and surrounding whitespace.
func ParseTier(s string) (Tier, bool) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	_, ok := tierLimits[t]
	return t, ok
}

// NormalizeTier falls back to essentials for anything unrecognised.
func NormalizeTier(s string) Tier {
	if t, ok := ParseTier(s); ok {
		return t
	}
	return TierEssentials
}

// LimitsFor returns the limits of a tier; unknown tiers get essentials limits.
func LimitsFor(t Tier) Limits {
	return tierLimits[NormalizeTier(string(t))]
}

// Rank orders tiers; essentials is 0.
func (t Tier) Rank() int {
	for i, v := range Tiers() {
		if v == t {
			return i
		}
	}
	return 0
}

// Exceeds reports whether n is over limit, honouring Unlimited.
func Exceeds(n, limit int) bool {
	return limit != Unlimited && n > limit
}
