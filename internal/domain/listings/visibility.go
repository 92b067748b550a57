package listings

import (
	"time"

	"pridenomad-hub/internal/domain/plans"
)

// PublicBusiness is what anonymous visitors see. Fields a tier does not
// unlock are left empty and omitted from JSON.
type PublicBusiness struct {
	ID            string                 `json:"id"`
	BusinessName  string                 `json:"businessName"`
	Slug          string                 `json:"slug"`
	Description   string                 `json:"description"`
	Categories    []string               `json:"categories"`
	SubCategories []string               `json:"subCategories,omitempty"`
	Photos        []string               `json:"photos,omitempty"`
	VideoURL      string                 `json:"videoUrl,omitempty"`
	Tier          plans.Tier             `json:"tier"`
	Verified      bool                   `json:"verified"`
	Featured      bool                   `json:"featured"`
	Phone         string                 `json:"phone,omitempty"`
	Email         string                 `json:"email,omitempty"`
	Website       string                 `json:"website,omitempty"`
	Address       string                 `json:"address,omitempty"`
	City          string                 `json:"city"`
	State         string                 `json:"state"`
	Country       string                 `json:"country"`
	Attributes    map[string]interface{} `json:"attributes,omitempty"`
	RatingCount   int                    `json:"ratingCount"`
	RatingAverage float64                `json:"ratingAverage"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// PublicView projects b through the visibility rules of its tier.
func PublicView(b *Business) PublicBusiness {
	tier := plans.NormalizeTier(string(b.Tier))
	rank := tier.Rank()

	out := PublicBusiness{
		ID:            b.ID,
		BusinessName:  b.BusinessName,
		Slug:          b.Slug,
		Description:   b.Description,
		Categories:    b.Categories,
		Tier:          tier,
		Verified:      b.Verified,
		City:          b.City,
		State:         b.State,
		Country:       b.Country,
		RatingCount:   b.RatingCount,
		RatingAverage: b.RatingAverage,
		UpdatedAt:     b.UpdatedAt,
	}
	if out.Categories == nil {
		out.Categories = []string{}
	}

	if rank >= plans.TierEnhanced.Rank() {
		out.Phone = b.Phone
		out.Email = b.Email
		out.Website = b.Website
		out.Photos = b.Photos
		out.SubCategories = b.SubCategories
	} else if len(b.Photos) > 0 {
		out.Photos = b.Photos[:1]
	}
	if rank >= plans.TierPremium.Rank() {
		out.Address = b.Address
		out.VideoURL = b.VideoURL
	}
	if rank >= plans.TierElite.Rank() {
		out.Attributes = b.Attributes
		out.Featured = true
	}
	return out
}
